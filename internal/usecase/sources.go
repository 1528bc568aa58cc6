package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MarketPulse/internal/domain/errs"
	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	"MarketPulse/internal/service/bea"
	"MarketPulse/internal/service/brave"
	"MarketPulse/internal/service/eod"
	"MarketPulse/internal/service/fred"
	"MarketPulse/internal/service/normalize"
	"MarketPulse/pkg/cache"
	xutil "MarketPulse/pkg/util"
)

// Cache key namespaces. Each carries its own TTL.
const (
	nsQuote   = "quote"
	nsSector  = "sector"
	nsMover   = "mover"
	nsNews    = "news"
	nsSearch  = "search"
	nsSeries  = "series"
	nsGDP     = "gdp"
	nsHistory = "history"
)

// TTLs are the cache lifetimes per kind of datum.
type TTLs struct {
	Quote   time.Duration
	Sector  time.Duration
	Mover   time.Duration
	News    time.Duration
	Search  time.Duration
	Series  time.Duration
	GDP     time.Duration
	History time.Duration
}

// QuoteResult is one leg of a fan-out fetch.
type QuoteResult struct {
	Symbol string
	Quote  models.Quote
	Err    error
}

// Sources is the cache-checked fetch and normalize stage in front of every view.
type Sources struct {
	quotes  repository.QuoteFetcher
	news    repository.NewsFetcher
	series  repository.SeriesFetcher
	gdp     repository.GDPFetcher
	norm    *normalize.Normalizer
	loader  *cache.Loader
	ttl     TTLs
	metrics repository.Metrics
}

func NewSources(
	quotes repository.QuoteFetcher,
	news repository.NewsFetcher,
	series repository.SeriesFetcher,
	gdp repository.GDPFetcher,
	norm *normalize.Normalizer,
	loader *cache.Loader,
	ttl TTLs,
	metrics repository.Metrics,
) *Sources {
	return &Sources{
		quotes:  quotes,
		news:    news,
		series:  series,
		gdp:     gdp,
		norm:    norm,
		loader:  loader,
		ttl:     ttl,
		metrics: metrics,
	}
}

func (s *Sources) observe(provider string, start time.Time, err error) {
	s.metrics.RecordUpstream(provider, err == nil, time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordError(provider)
	}
}

// Quote returns the normalized real-time quote of symbol.
func (s *Sources) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	return s.quote(ctx, nsQuote, symbol, s.ttl.Quote)
}

func (s *Sources) quote(ctx context.Context, ns, symbol string, ttl time.Duration) (models.Quote, error) {
	ticker := eod.Ticker(symbol)
	return cache.GetOrLoad(ctx, s.loader, cache.GenerateKey(ns, ticker), ttl, func(ctx context.Context) (models.Quote, error) {
		start := time.Now()
		raw, err := s.quotes.FetchQuote(ctx, ticker)
		s.observe(eod.Provider, start, err)
		if err != nil {
			return models.Quote{}, err
		}
		q := s.norm.Quote(raw)
		if q.Symbol == "" {
			q.Symbol = normalize.Symbol(ticker)
		}
		return q, nil
	})
}

// Quotes fetches symbols concurrently. Results keep the input order and each
// leg fails independently.
func (s *Sources) Quotes(ctx context.Context, ns string, symbols []string, ttl time.Duration) []QuoteResult {
	results := make([]QuoteResult, len(symbols))
	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			q, err := s.quote(ctx, ns, sym, ttl)
			results[i] = QuoteResult{Symbol: sym, Quote: q, Err: err}
		}(i, sym)
	}
	wg.Wait()
	return results
}

// News returns up to count normalized articles for query.
func (s *Sources) News(ctx context.Context, query string, count int) ([]models.NewsArticle, error) {
	key := cache.GenerateKeyWithParams(nsNews, query, count)
	return cache.GetOrLoad(ctx, s.loader, key, s.ttl.News, func(ctx context.Context) ([]models.NewsArticle, error) {
		start := time.Now()
		raws, err := s.news.FetchNews(ctx, query, count)
		s.observe(brave.Provider, start, err)
		if err != nil {
			return nil, err
		}
		return s.norm.Articles(raws), nil
	})
}

// Indicator returns the latest reading of a FRED series.
func (s *Sources) Indicator(ctx context.Context, seriesID, name string) (models.Indicator, error) {
	return cache.GetOrLoad(ctx, s.loader, cache.GenerateKey(nsSeries, seriesID), s.ttl.Series, func(ctx context.Context) (models.Indicator, error) {
		start := time.Now()
		// a few extra rows so missing observations can be skipped
		obs, err := s.series.FetchSeries(ctx, seriesID, 10)
		s.observe(fred.Provider, start, err)
		if err != nil {
			return models.Indicator{}, err
		}
		ind, ok := s.norm.Indicator(seriesID, name, obs)
		if !ok {
			return models.Indicator{}, errs.Fetch(fred.Provider, "series", seriesID, errs.ErrNoData)
		}
		return ind, nil
	})
}

// GDP returns the latest quarterly GDP reading.
func (s *Sources) GDP(ctx context.Context) (models.GDPReading, error) {
	return cache.GetOrLoad(ctx, s.loader, cache.GenerateKey(nsGDP, bea.GDPTable), s.ttl.GDP, func(ctx context.Context) (models.GDPReading, error) {
		start := time.Now()
		rows, err := s.gdp.FetchGDP(ctx)
		s.observe(bea.Provider, start, err)
		if err != nil {
			return models.GDPReading{}, err
		}
		g, ok := s.norm.GDP(rows)
		if !ok {
			return models.GDPReading{}, errs.Fetch(bea.Provider, "gdp", bea.GDPTable, errs.ErrNoData)
		}
		return g, nil
	})
}

// Bars returns daily bars of symbol in [from, to], oldest first.
func (s *Sources) Bars(ctx context.Context, symbol string, from, to time.Time) ([]models.Bar, error) {
	ticker := eod.Ticker(symbol)
	key := cache.GenerateKeyWithParams(nsHistory, ticker, xutil.FormatDate(from), xutil.FormatDate(to))
	return cache.GetOrLoad(ctx, s.loader, key, s.ttl.History, func(ctx context.Context) ([]models.Bar, error) {
		start := time.Now()
		raws, err := s.quotes.FetchHistory(ctx, ticker, from, to)
		s.observe(eod.Provider, start, err)
		if err != nil {
			return nil, err
		}
		return s.norm.Bars(raws), nil
	})
}

// Search looks instruments up by code or name.
func (s *Sources) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	return cache.GetOrLoad(ctx, s.loader, cache.GenerateKey(nsSearch, query), s.ttl.Search, func(ctx context.Context) ([]models.SearchResult, error) {
		start := time.Now()
		raws, err := s.quotes.Search(ctx, query)
		s.observe(eod.Provider, start, err)
		if err != nil {
			return nil, err
		}
		out := make([]models.SearchResult, 0, len(raws))
		for _, r := range raws {
			out = append(out, s.norm.SearchResult(r))
		}
		return out, nil
	})
}

// AvgVolume is the mean daily volume of symbol over the last n sessions.
func (s *Sources) AvgVolume(ctx context.Context, symbol string, n int, now time.Time) (float64, error) {
	bars, err := s.Bars(ctx, symbol, now.AddDate(0, 0, -2*n), now)
	if err != nil {
		return 0, err
	}
	if len(bars) > n {
		bars = bars[len(bars)-n:]
	}
	var sum float64
	var count int
	for _, b := range bars {
		if b.Volume > 0 {
			sum += b.Volume
			count++
		}
	}
	if count == 0 {
		return 0, fmt.Errorf("average volume %s: %w", symbol, errs.ErrNoData)
	}
	return sum / float64(count), nil
}
