package scoring

import (
	"fmt"
	"math"
	"time"

	"MarketPulse/internal/domain/models"
)

// DefaultVIX stands in for an unknown volatility level.
const DefaultVIX = 20

var gradeTable = []struct {
	min   float64
	grade string
}{
	{95, "A+"}, {90, "A"}, {85, "A-"},
	{80, "B+"}, {75, "B"}, {70, "B-"},
	{65, "C+"}, {60, "C"}, {55, "C-"},
	{50, "D+"}, {45, "D"}, {40, "D-"},
}

// Clamp bounds v to [0, 100]. NaN maps to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(100, math.Max(0, v))
}

// Grade maps a score to its letter. Thresholds are inclusive lower bounds.
func Grade(score float64) string {
	for _, g := range gradeTable {
		if score >= g.min {
			return g.grade
		}
	}
	return "F"
}

// Technical weights SPY 60% and QQQ 40%, each 50 plus 5 points per percent.
func Technical(spyPct, qqqPct float64) float64 {
	return Clamp(0.6*(50+5*spyPct) + 0.4*(50+5*qqqPct))
}

// Volatility steps down as the VIX rises.
func Volatility(vix float64) float64 {
	v := vixLevel(vix)
	switch {
	case v <= 15:
		return 90
	case v <= 20:
		return 75
	case v <= 25:
		return 60
	case v <= 30:
		return 45
	case v <= 35:
		return 30
	default:
		return 15
	}
}

// Momentum scales each index move by its volume ratio.
func Momentum(spy, qqq models.ScoreLeg) float64 {
	m := spy.ChangePercent*VolumeRatio(spy) + qqq.ChangePercent*VolumeRatio(qqq)
	return Clamp(50 + 2.5*m)
}

// VolumeRatio is volume over average volume, or 1 when the average is unknown.
func VolumeRatio(l models.ScoreLeg) float64 {
	if l.AvgVolume <= 0 {
		return 1
	}
	r := l.Volume / l.AvgVolume
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 1
	}
	return r
}

// Overall is round(0.4 technical + 0.3 volatility + 0.3 momentum).
func Overall(technical, volatility, momentum float64) int {
	return int(math.Round(Clamp(0.4*technical + 0.3*volatility + 0.3*momentum)))
}

// Compute builds the full market score at time now.
func Compute(in models.ScoreInputs, now time.Time) models.MarketScore {
	technical := Technical(in.SPY.ChangePercent, in.QQQ.ChangePercent)
	volatility := Volatility(in.VIX)
	momentum := Momentum(in.SPY, in.QQQ)
	overall := Overall(technical, volatility, momentum)

	return models.MarketScore{
		Overall: models.ScoreOverall{
			Score:     overall,
			Grade:     Grade(float64(overall)),
			Timestamp: now.UTC(),
		},
		Components: models.ScoreComponents{
			Technical: models.ScoreComponent{
				Score: technical,
				Grade: Grade(technical),
				Metrics: map[string]string{
					"spyChange": fmt.Sprintf("%.2f", in.SPY.ChangePercent),
					"qqqChange": fmt.Sprintf("%.2f", in.QQQ.ChangePercent),
				},
			},
			Volatility: models.ScoreComponent{
				Score: volatility,
				Grade: Grade(volatility),
				Metrics: map[string]string{
					"vixLevel": vixMetric(in.VIX),
				},
			},
			Momentum: models.ScoreComponent{
				Score: momentum,
				Grade: Grade(momentum),
				Metrics: map[string]string{
					"spyVolume": volumeLabel(in.SPY),
					"qqqVolume": volumeLabel(in.QQQ),
				},
			},
		},
		Analysis: models.ScoreAnalysis{
			Summary:   Summary(overall, in.SPY, in.VIX),
			Technical: TechnicalAnalysis(in.SPY.ChangePercent, in.QQQ.ChangePercent),
			Risk:      RiskAnalysis(in.VIX),
		},
	}
}

func vixLevel(vix float64) float64 {
	if vix <= 0 || math.IsNaN(vix) {
		return DefaultVIX
	}
	return vix
}

func vixMetric(vix float64) string {
	if vix <= 0 || math.IsNaN(vix) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", vix)
}

func aboveAverage(l models.ScoreLeg) bool {
	return l.AvgVolume > 0 && l.Volume > l.AvgVolume
}

func volumeLabel(l models.ScoreLeg) string {
	if aboveAverage(l) {
		return "Above Average"
	}
	return "Normal"
}
