package usecase

import (
	"context"
	"testing"

	"MarketPulse/internal/domain/errs"
	"MarketPulse/internal/domain/models"

	"github.com/stretchr/testify/require"
)

func TestSelectMoverPicksLargestAbsoluteMove(t *testing.T) {
	quotes := []models.Quote{
		{Symbol: "A", ChangePercent: 1},
		{Symbol: "B", ChangePercent: -5},
		{Symbol: "C", ChangePercent: 2},
	}
	q, ok := SelectMover(quotes)
	require.True(t, ok)
	require.Equal(t, "B", q.Symbol)
}

func TestSelectMoverTiesKeepFirst(t *testing.T) {
	q, ok := SelectMover([]models.Quote{{Symbol: "A", ChangePercent: -3}, {Symbol: "B", ChangePercent: 3}})
	require.True(t, ok)
	require.Equal(t, "A", q.Symbol)
}

func TestSelectMoverNoMovement(t *testing.T) {
	_, ok := SelectMover([]models.Quote{{Symbol: "A"}, {Symbol: "B"}})
	require.False(t, ok)
	_, ok = SelectMover(nil)
	require.False(t, ok)
}

func TestRiskLevel(t *testing.T) {
	cases := []struct {
		move  float64
		score int
		level string
	}{
		{0, 50, models.RiskModerate},
		{10, 50, models.RiskModerate},
		{10.5, 65, models.RiskHigh},
		{-20, 65, models.RiskHigh},
		{-25, 75, models.RiskHigh},
	}
	for _, c := range cases {
		score, level := RiskLevel(c.move)
		require.Equal(t, c.score, score, "move %v", c.move)
		require.Equal(t, c.level, level, "move %v", c.move)
	}
}

func TestMoveReasons(t *testing.T) {
	require.Equal(t, []string{"Analyzing market factors..."}, MoveReasons(models.Quote{ChangePercent: 2, Volume: 100}, 0))

	r := MoveReasons(models.Quote{ChangePercent: -12, Volume: 400}, 100)
	require.Len(t, r, 2)
	require.Contains(t, r[1], "volume")
}

func TestTopMoversSplitsAndOrders(t *testing.T) {
	quotes := []models.Quote{
		{Symbol: "A", ChangePercent: 1},
		{Symbol: "B", ChangePercent: -2},
		{Symbol: "C", ChangePercent: 3},
		{Symbol: "D", ChangePercent: 0},
		{Symbol: "E", ChangePercent: -4},
	}
	g, l := TopMovers(quotes, 5)
	require.Equal(t, []string{"C", "A"}, symbols(g))
	require.Equal(t, []string{"E", "B"}, symbols(l))

	g, _ = TopMovers(quotes, 1)
	require.Equal(t, []string{"C"}, symbols(g))
}

func TestThemePerformance(t *testing.T) {
	require.Equal(t, models.ThemePerformance{Trend: "neutral", Strength: "weak"}, ThemePerformance(nil))

	p := ThemePerformance([]models.Quote{{ChangePercent: 2}, {ChangePercent: 1}})
	require.InDelta(t, 1.5, p.Daily, 1e-9)
	require.Equal(t, "up", p.Trend)
	require.Equal(t, "strong", p.Strength)

	p = ThemePerformance([]models.Quote{{ChangePercent: -0.5}})
	require.Equal(t, "down", p.Trend)
	require.Equal(t, "moderate", p.Strength)
}

func TestHistoryPointsMA200(t *testing.T) {
	bars := make([]models.Bar, 210)
	for i := range bars {
		bars[i] = models.Bar{Date: testNow.AddDate(0, 0, i-210), Close: float64(i + 1)}
	}
	pts := HistoryPoints(bars, 15)
	require.Len(t, pts, 15)
	// index 195..209: first five have fewer than 200 closes
	for _, p := range pts[:4] {
		require.Nil(t, p.MA200)
	}
	require.NotNil(t, pts[4].MA200)
	require.InDelta(t, 100.5, *pts[4].MA200, 1e-9)
	require.InDelta(t, 110.5, *pts[14].MA200, 1e-9)

	require.Len(t, HistoryPoints(bars[:3], 30), 3)
}

func TestSnapshotSurvivesOneFailedIndex(t *testing.T) {
	f := newFixture()
	f.setQuote("SPY.US", 500, 1.2, 1000)
	f.setQuote("QQQ.US", 430, -0.4, 800)
	f.setQuote("DIA.US", 390, 0.3, 500)
	f.setQuote("IWM.US", 200, -1.1, 300)
	// VIX fails

	snap, err := f.svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Indices, 4)
	require.Empty(t, snap.Sectors)
	require.NotNil(t, snap.Score)
	require.Equal(t, []string{"SPY", "DIA"}, symbols(snap.Gainers))
	require.Equal(t, []string{"IWM", "QQQ"}, symbols(snap.Losers))
	require.Empty(t, snap.News)
	require.Empty(t, snap.Macro.Indicators)
	require.Nil(t, snap.Macro.GDP)
}

func TestSnapshotTracksDegradedLegs(t *testing.T) {
	f := newFixture()
	f.setQuote("SPY.US", 500, 1.2, 1000)
	f.setQuote("QQQ.US", 430, -0.4, 800)
	f.setQuote("DIA.US", 390, 0.3, 500)
	f.setQuote("IWM.US", 200, -1.1, 300)

	snap, err := f.svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Indices, 4)

	sources := map[string]bool{}
	for _, e := range f.tracker.Recent(0) {
		sources[e.Source] = true
		require.Contains(t, e.Message, errUpstream.Error())
	}
	for _, want := range []string{"snapshot:VIX", "snapshot:news", "macro:TLT", "macro:UNRATE", "macro:gdp"} {
		require.True(t, sources[want], "missing tracked source %s", want)
	}

	h := NewHealthService(healthConfig(), f.tracker, nil).Health()
	require.Equal(t, "degraded", h.Status)
	require.Positive(t, h.RecentErrors)
}

func TestSnapshotFailsWhenEverythingFails(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Snapshot(context.Background())
	require.ErrorIs(t, err, errUpstream)
}

func TestSnapshotExcludesVIXFromMovers(t *testing.T) {
	f := newFixture()
	f.setQuote("VIX.INDX", 30, 25, 0)
	f.setQuote("XLK.US", 200, 1, 100)

	snap, err := f.svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"XLK"}, symbols(snap.Gainers))
	require.Nil(t, snap.Score)
}

func TestSnapshotCarriesAnalysis(t *testing.T) {
	f := newFixture()
	f.setQuote("SPY.US", 500, 1.2, 1000)
	f.setQuote("QQQ.US", 430, 0.8, 800)
	f.setQuote("XLK.US", 200, 2, 100)
	f.setQuote("XLE.US", 90, -1, 100)
	f.setQuote("XLU.US", 70, 0.5, 100)
	f.setQuote("TLT.US", 92, -0.3, 100)

	snap, err := f.svc.Snapshot(context.Background())
	require.NoError(t, err)
	a := snap.Analysis
	require.Equal(t, "bullish", a.Trend)
	require.InDelta(t, 200.0/3, a.Breadth.Percent, 1e-9)
	require.Equal(t, "strong", a.Breadth.Quality)
	require.Equal(t, []string{"Technology", "Utilities"}, a.Breadth.Leaders)
	require.Equal(t, []string{"Utilities", "Energy"}, a.Breadth.Laggards)
	require.Contains(t, a.Risk, "Treasury bonds are falling")
	require.NotContains(t, a.Risk, "Bitcoin")
	require.Contains(t, a.Implications, "Technology and Utilities")
}

func TestMoverRoundTripsIntoHistory(t *testing.T) {
	f := newFixture()
	f.setQuote("AAPL.US", 190, 1, 100)
	f.setQuote("MSFT.US", 400, -5, 100)
	f.setQuote("NVDA.US", 900, 2, 100)
	f.news.articles = []models.RawArticle{
		{Title: "MSFT shares fall on weak guidance", URL: "https://example.com/a"},
	}

	mover, err := f.svc.Mover(context.Background())
	require.NoError(t, err)
	require.True(t, mover.Found)
	require.Equal(t, "MSFT", mover.Quote.Symbol)
	require.Equal(t, models.RiskModerate, mover.RiskLevel)
	require.Len(t, mover.News, 1)
	require.NotNil(t, mover.Sentiment)

	hist, err := f.svc.MoverHistory(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.Equal(t, "MSFT", hist[0].Symbol)
	require.Equal(t, -5.0, hist[0].ChangePercent)
}

func TestMoverWithoutMovement(t *testing.T) {
	f := newFixture()
	for _, s := range WatchList {
		f.setQuote(s+".US", 100, 0, 10)
	}
	mover, err := f.svc.Mover(context.Background())
	require.NoError(t, err)
	require.False(t, mover.Found)
	require.Equal(t, models.NoSignificantMove, mover.Reason)

	hist, err := f.svc.MoverHistory(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, hist)
}

func TestMacroDefaultsFailedLegs(t *testing.T) {
	f := newFixture()
	f.setQuote("TLT.US", 95, 0.2, 1000)
	f.series.obs["UNRATE"] = []models.RawObservation{
		{Date: "2026-02-01", Value: models.F(4.1)},
		{Date: "2026-01-01", Value: models.F(4.0)},
	}

	view, err := f.svc.Macro(context.Background())
	require.NoError(t, err)
	require.Equal(t, 95.0, view.Bonds.Price)
	require.Equal(t, models.MacroLeg{Symbol: CurrencyETF}, view.Dollar)
	require.Len(t, view.Indicators, 1)
	require.Equal(t, "UNRATE", view.Indicators[0].SeriesID)
	require.Nil(t, view.GDP)
}

func TestThemesKeepReachableMembers(t *testing.T) {
	f := newFixture()
	f.setQuote(Themes[0].Symbols[1]+".US", 100, 2, 10)

	views, err := f.svc.Themes(context.Background())
	require.NoError(t, err)
	require.Len(t, views, len(Themes))
	require.Len(t, views[0].Stocks, 1)
	require.Equal(t, "up", views[0].Performance.Trend)
	require.Empty(t, views[1].Stocks)
	require.Equal(t, "neutral", views[1].Performance.Trend)
}

func TestDataIsCached(t *testing.T) {
	f := newFixture()
	f.setQuote("SPY.US", 500, 1, 10)

	for i := 0; i < 3; i++ {
		data, err := f.svc.Data(context.Background())
		require.NoError(t, err)
		require.Contains(t, data, "SPY")
	}
	// five symbols on the first call; the four failures are retried
	require.EqualValues(t, 5+4+4, f.quotes.calls)
}

func TestStockRejectsInvalidSymbol(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Stock(context.Background(), "not a symbol!")
	require.ErrorIs(t, err, errs.ErrInvalidSymbol)
	require.True(t, IsClientError(err))

	_, err = f.svc.StockHistory(context.Background(), "", 30)
	require.ErrorIs(t, err, errs.ErrInvalidSymbol)
}

func TestStockHistoryEmptyIsNoData(t *testing.T) {
	f := newFixture()
	f.quotes.bars["AAPL.US"] = []models.RawBar{}
	_, err := f.svc.StockHistory(context.Background(), "AAPL", 30)
	require.ErrorIs(t, err, errs.ErrNoData)
}

func TestSearchShortQuery(t *testing.T) {
	f := newFixture()
	f.quotes.search = []models.RawSearchResult{{Code: "AAPL", Name: "Apple Inc"}}

	res, err := f.svc.Search(context.Background(), " a ")
	require.NoError(t, err)
	require.Empty(t, res)

	res, err = f.svc.Search(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, res, 1)
}

func TestScoreNeedsSPYAndQQQ(t *testing.T) {
	f := newFixture()
	f.setQuote("SPY.US", 500, 1, 10)
	_, err := f.svc.Score(context.Background())
	require.Error(t, err)

	f.setQuote("QQQ.US", 430, 1, 10)
	s, err := f.svc.Score(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, s.Overall.Grade)
	require.Equal(t, "N/A", s.Components.Volatility.Metrics["vixLevel"])
	require.Equal(t, testNow, s.Overall.Timestamp)
}

func symbols(qs []models.Quote) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Symbol
	}
	return out
}
