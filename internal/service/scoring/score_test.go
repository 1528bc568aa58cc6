package scoring

import (
	"math"
	"testing"
	"time"

	"MarketPulse/internal/domain/models"

	"github.com/stretchr/testify/require"
)

func TestGradeBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A+"}, {95, "A+"}, {94.999, "A"}, {90, "A"}, {89.999, "A-"},
		{85, "A-"}, {80, "B+"}, {75, "B"}, {70, "B-"}, {65, "C+"},
		{60, "C"}, {55, "C-"}, {50, "D+"}, {45, "D"}, {40, "D-"},
		{39.999, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Grade(tc.score), "score %v", tc.score)
	}
}

func TestGradeMatchesExactlyOneBucket(t *testing.T) {
	for s := 0.0; s <= 100; s += 0.25 {
		matches := 0
		for i, g := range gradeTable {
			upper := math.Inf(1)
			if i > 0 {
				upper = gradeTable[i-1].min
			}
			if s >= g.min && s < upper {
				matches++
			}
		}
		if s < 40 {
			matches++
		}
		require.Equal(t, 1, matches, "score %v", s)
	}
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0.0, Clamp(-5))
	require.Equal(t, 100.0, Clamp(250))
	require.Equal(t, 42.5, Clamp(42.5))
	require.Equal(t, 0.0, Clamp(math.NaN()))
}

func TestTechnical(t *testing.T) {
	require.Equal(t, 50.0, Technical(0, 0))
	require.InDelta(t, 0.6*55+0.4*40, Technical(1, -2), 1e-9)
	require.Equal(t, 100.0, Technical(20, 20))
	require.Equal(t, 0.0, Technical(-20, -20))
}

func TestVolatilitySteps(t *testing.T) {
	require.Equal(t, 90.0, Volatility(12))
	require.Equal(t, 90.0, Volatility(15))
	require.Equal(t, 75.0, Volatility(15.01))
	require.Equal(t, 75.0, Volatility(0)) // unknown VIX reads as 20
	require.Equal(t, 60.0, Volatility(25))
	require.Equal(t, 45.0, Volatility(30))
	require.Equal(t, 30.0, Volatility(35))
	require.Equal(t, 15.0, Volatility(80))
}

func TestMomentum(t *testing.T) {
	spy := models.ScoreLeg{ChangePercent: 1, Volume: 200, AvgVolume: 100}
	qqq := models.ScoreLeg{ChangePercent: -1}
	// 50 + 2.5 * (1*2 + -1*1)
	require.InDelta(t, 52.5, Momentum(spy, qqq), 1e-9)
	require.Equal(t, 1.0, VolumeRatio(models.ScoreLeg{Volume: 5}))
}

func TestComputeFlatMarket(t *testing.T) {
	now := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)
	s := Compute(models.ScoreInputs{VIX: 14}, now)

	// 0.4*50 + 0.3*90 + 0.3*50 = 62
	require.Equal(t, 62, s.Overall.Score)
	require.Equal(t, "C", s.Overall.Grade)
	require.Equal(t, now, s.Overall.Timestamp)
	require.Equal(t, "0.00", s.Components.Technical.Metrics["spyChange"])
	require.Equal(t, "14.00", s.Components.Volatility.Metrics["vixLevel"])
	require.Equal(t, "Normal", s.Components.Momentum.Metrics["spyVolume"])
	require.Equal(t, "Market conditions are Neutral with Low volatility. S&P 500 is up 0.00% with normal volume.", s.Analysis.Summary)
	require.Equal(t, "Very low risk environment, market showing high confidence", s.Analysis.Risk)
}

func TestComputeBearish(t *testing.T) {
	s := Compute(models.ScoreInputs{
		SPY: models.ScoreLeg{ChangePercent: -2.5, Volume: 300, AvgVolume: 100},
		QQQ: models.ScoreLeg{ChangePercent: -3},
		VIX: 32,
	}, time.Now())

	require.Less(t, s.Overall.Score, 50)
	require.Equal(t, "Above Average", s.Components.Momentum.Metrics["spyVolume"])
	require.Equal(t, "S&P 500 showing strong bearish momentum. NASDAQ showing strong bearish momentum.", s.Analysis.Technical)
	require.Contains(t, s.Analysis.Summary, "Bearish with High volatility. S&P 500 is down 2.50% with above average volume.")
}
