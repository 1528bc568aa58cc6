package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/errtrack"
	"MarketPulse/internal/service/normalize"
	"MarketPulse/pkg/cache"
	pkgmetrics "MarketPulse/pkg/metrics"
)

var errUpstream = errors.New("upstream unavailable")

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

// fakeQuotes serves quotes keyed by provider ticker; unknown tickers fail.
type fakeQuotes struct {
	quotes map[string]models.RawQuote
	bars   map[string][]models.RawBar
	search []models.RawSearchResult
	calls  int32
}

func (f *fakeQuotes) FetchQuote(_ context.Context, ticker string) (models.RawQuote, error) {
	atomic.AddInt32(&f.calls, 1)
	q, ok := f.quotes[ticker]
	if !ok {
		return models.RawQuote{}, errUpstream
	}
	return q, nil
}

func (f *fakeQuotes) FetchHistory(_ context.Context, ticker string, _, _ time.Time) ([]models.RawBar, error) {
	b, ok := f.bars[ticker]
	if !ok {
		return nil, errUpstream
	}
	return b, nil
}

func (f *fakeQuotes) Search(context.Context, string) ([]models.RawSearchResult, error) {
	return f.search, nil
}

type fakeNews struct{ articles []models.RawArticle }

func (f *fakeNews) FetchNews(_ context.Context, _ string, count int) ([]models.RawArticle, error) {
	if f.articles == nil {
		return nil, errUpstream
	}
	if len(f.articles) > count {
		return f.articles[:count], nil
	}
	return f.articles, nil
}

type fakeSeries struct{ obs map[string][]models.RawObservation }

func (f *fakeSeries) FetchSeries(_ context.Context, id string, _ int) ([]models.RawObservation, error) {
	o, ok := f.obs[id]
	if !ok {
		return nil, errUpstream
	}
	return o, nil
}

type fakeGDP struct{ rows []models.RawGDPRow }

func (f *fakeGDP) FetchGDP(context.Context) ([]models.RawGDPRow, error) {
	if f.rows == nil {
		return nil, errUpstream
	}
	return f.rows, nil
}

type fakeHistory struct {
	mu   sync.Mutex
	recs []models.MoverRecord
}

func (h *fakeHistory) Append(_ context.Context, rec models.MoverRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recs = append(h.recs, rec)
	return nil
}

func (h *fakeHistory) Recent(_ context.Context, limit int) ([]models.MoverRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.MoverRecord, 0, limit)
	for i := len(h.recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.recs[i])
	}
	return out, nil
}

func rawQuote(ticker string, price, changePercent, volume float64) models.RawQuote {
	return models.RawQuote{
		Code:      ticker,
		Timestamp: models.F(float64(testNow.Unix())),
		Close:     models.F(price),
		ChangeP:   models.F(changePercent),
		Volume:    models.F(volume),
	}
}

type fixture struct {
	quotes  *fakeQuotes
	news    *fakeNews
	series  *fakeSeries
	gdp     *fakeGDP
	history *fakeHistory
	tracker *errtrack.Tracker
	svc     *MarketService
}

func newFixture() *fixture {
	f := &fixture{
		quotes:  &fakeQuotes{quotes: map[string]models.RawQuote{}, bars: map[string][]models.RawBar{}},
		news:    &fakeNews{},
		series:  &fakeSeries{obs: map[string][]models.RawObservation{}},
		gdp:     &fakeGDP{},
		history: &fakeHistory{},
		tracker: errtrack.New(100),
	}
	clock := func() time.Time { return testNow }
	ttl := TTLs{
		Quote: time.Minute, Sector: time.Minute, Mover: time.Minute, News: time.Minute,
		Search: time.Minute, Series: time.Hour, GDP: time.Hour, History: time.Hour,
	}
	src := NewSources(f.quotes, f.news, f.series, f.gdp,
		normalize.New(normalize.WithClock(clock)),
		cache.NewLoader(cache.NewMemoryCache()),
		ttl, pkgmetrics.Nop{})
	f.svc = NewMarketService(src, f.history, WithClock(clock), WithErrorTracker(f.tracker))
	return f
}

func (f *fixture) setQuote(ticker string, price, changePercent, volume float64) {
	f.quotes.quotes[ticker] = rawQuote(ticker, price, changePercent, volume)
}
