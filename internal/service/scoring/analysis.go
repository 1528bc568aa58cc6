package scoring

import (
	"fmt"
	"math"

	"MarketPulse/internal/domain/models"
)

// Summary is the one-paragraph market description.
func Summary(score int, spy models.ScoreLeg, vix float64) string {
	state := "Bearish"
	switch {
	case score >= 70:
		state = "Bullish"
	case score >= 50:
		state = "Neutral"
	}

	level := vixLevel(vix)
	vol := "High"
	switch {
	case level <= 20:
		vol = "Low"
	case level <= 30:
		vol = "Moderate"
	}

	direction := "up"
	if spy.ChangePercent < 0 {
		direction = "down"
	}
	volume := "normal"
	if aboveAverage(spy) {
		volume = "above average"
	}

	return fmt.Sprintf("Market conditions are %s with %s volatility. S&P 500 is %s %.2f%% with %s volume.",
		state, vol, direction, math.Abs(spy.ChangePercent), volume)
}

func TechnicalAnalysis(spyPct, qqqPct float64) string {
	return fmt.Sprintf("S&P 500 showing %s momentum. NASDAQ showing %s momentum.",
		momentumWords(spyPct), momentumWords(qqqPct))
}

func momentumWords(pct float64) string {
	strength := "moderate"
	if math.Abs(pct) >= 1 {
		strength = "strong"
	}
	bias := "bullish"
	if pct < 0 {
		bias = "bearish"
	}
	return strength + " " + bias
}

func RiskAnalysis(vix float64) string {
	v := vixLevel(vix)
	switch {
	case v <= 15:
		return "Very low risk environment, market showing high confidence"
	case v <= 20:
		return "Normal risk environment, market functioning efficiently"
	case v <= 25:
		return "Slightly elevated risk, market showing some concern"
	case v <= 30:
		return "High risk environment, market showing significant concern"
	default:
		return "Very high risk environment, market showing extreme caution"
	}
}
