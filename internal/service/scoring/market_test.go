package scoring

import (
	"testing"

	"MarketPulse/internal/domain/models"

	"github.com/stretchr/testify/require"
)

func sectors(moves ...float64) []models.Sector {
	names := []string{"Technology", "Energy", "Utilities", "Financial", "Materials"}
	out := make([]models.Sector, len(moves))
	for i, m := range moves {
		out[i] = models.Sector{Name: names[i], ChangePercent: m}
	}
	return out
}

func TestTrend(t *testing.T) {
	require.Equal(t, "bullish", Trend(0.51))
	require.Equal(t, "neutral", Trend(0.5))
	require.Equal(t, "neutral", Trend(-0.5))
	require.Equal(t, "bearish", Trend(-0.51))
}

func TestBreadthQuality(t *testing.T) {
	require.Equal(t, "strong", BreadthQuality(60.1))
	require.Equal(t, "mixed", BreadthQuality(60))
	require.Equal(t, "mixed", BreadthQuality(40.1))
	require.Equal(t, "weak", BreadthQuality(40))
}

func TestSectorBreadth(t *testing.T) {
	b := SectorBreadth(sectors(1.5, -2, 0.3, 0, -0.1))
	require.InDelta(t, 40, b.Percent, 1e-9)
	require.Equal(t, "weak", b.Quality)
	require.Equal(t, []string{"Technology", "Utilities"}, b.Leaders)
	require.Equal(t, []string{"Materials", "Energy"}, b.Laggards)

	b = SectorBreadth(sectors(1, 2, 3))
	require.InDelta(t, 100, b.Percent, 1e-9)
	require.Equal(t, "strong", b.Quality)
	require.Equal(t, []string{"Utilities", "Energy"}, b.Leaders)
}

func TestSectorBreadthEmpty(t *testing.T) {
	b := SectorBreadth(nil)
	require.Zero(t, b.Percent)
	require.Equal(t, "weak", b.Quality)
	require.Empty(t, b.Leaders)
	require.Equal(t, "Market breadth is weak with 0% of sectors showing positive performance. ", SectorAnalysis(b))
}

func TestSectorAnalysis(t *testing.T) {
	got := SectorAnalysis(SectorBreadth(sectors(2, 1, -1)))
	require.Equal(t, "Market breadth is strong with 67% of sectors showing positive performance. "+
		"Leading sectors include Technology and Energy, while Energy and Utilities are underperforming. ", got)
}

func TestOverview(t *testing.T) {
	indices := map[string]models.Quote{
		"SPY": {ChangePercent: 1.234},
		"QQQ": {ChangePercent: -0.5},
		"DIA": {ChangePercent: 0},
	}
	require.Equal(t, "The market environment is currently showing bullish characteristics. "+
		"The S&P 500 is up 1.23%, while the Nasdaq is down 0.50% and the Dow Jones is down 0.00%. ",
		Overview(67, indices))

	delete(indices, "DIA")
	require.Equal(t, "The market environment is currently showing neutral characteristics. ", Overview(66, indices))
	require.Contains(t, Overview(33, nil), "cautious")
}

func TestRiskMetrics(t *testing.T) {
	up := models.MacroView{
		Bonds:  models.MacroLeg{Symbol: "TLT", Price: 90, ChangePercent: 0.4},
		Dollar: models.MacroLeg{Symbol: "UUP", Price: 28, ChangePercent: 0.1},
		Crypto: models.MacroLeg{Symbol: "IBIT", Price: 40, ChangePercent: 3},
	}
	require.Equal(t, "Treasury bonds are rising, suggesting defensive positioning in the market. "+
		"The US Dollar is strengthening, which may pressure global assets. "+
		"Bitcoin is rallying, indicating increased risk appetite in digital assets. ", RiskMetrics(up))

	down := models.MacroView{
		Bonds:  models.MacroLeg{Symbol: "TLT", Price: 90, ChangePercent: -0.4},
		Dollar: models.MacroLeg{Symbol: "UUP", Price: 28, ChangePercent: -0.1},
		Crypto: models.MacroLeg{Symbol: "IBIT"},
	}
	require.Equal(t, "Treasury bonds are falling, suggesting risk appetite in the market. "+
		"The US Dollar is weakening, which supports global assets. ", RiskMetrics(down))
	require.Empty(t, RiskMetrics(models.MacroView{}))
}

func TestImplications(t *testing.T) {
	secs := sectors(-1, 0.5, 2, 1)
	b := SectorBreadth(secs)
	require.Equal(t, "Given the strong market conditions with broad-based participation, "+
		"investors might consider maintaining growth exposure while being mindful of position sizing and market levels. "+
		"Consider exposure to strong sectors like Energy and Utilities.", Implications(80, b, secs))

	mixed := SectorBreadth(sectors(1, -1))
	require.Contains(t, Implications(50, mixed, nil), "moderate market conditions with selective participation, a balanced approach")

	weak := SectorBreadth(sectors(-1, -2))
	got := Implications(20, weak, sectors(-1, -2))
	require.Equal(t, "Given the weak market conditions with narrow participation, "+
		"capital preservation and defensive positioning might be warranted until conditions improve. ", got)
}

func TestAnalyze(t *testing.T) {
	a := Analyze(NeutralScore,
		[]models.Quote{{Symbol: "SPY", ChangePercent: -0.8}, {Symbol: "QQQ", ChangePercent: 0.2}},
		sectors(1, -1),
		models.MacroView{})
	require.Equal(t, "bearish", a.Trend)
	require.InDelta(t, 50, a.Breadth.Percent, 1e-9)
	require.Equal(t, "mixed", a.Breadth.Quality)
	require.Contains(t, a.Overview, "neutral characteristics")
	require.Contains(t, a.Sectors, "Market breadth is mixed with 50%")
	require.Empty(t, a.Risk)
	require.Contains(t, a.Implications, "Technology")
}
