package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/repository"
	"MarketPulse/internal/service/normalize"
	"MarketPulse/internal/usecase"
	"MarketPulse/pkg/cache"
	xhttp "MarketPulse/pkg/http"
	xlogger "MarketPulse/pkg/logger"
	pkgmetrics "MarketPulse/pkg/metrics"

	"github.com/stretchr/testify/require"
)

var errOffline = errors.New("offline")

type stubQuotes map[string]models.RawQuote

func (s stubQuotes) FetchQuote(_ context.Context, ticker string) (models.RawQuote, error) {
	if q, ok := s[ticker]; ok {
		return q, nil
	}
	return models.RawQuote{}, errOffline
}

func (stubQuotes) FetchHistory(context.Context, string, time.Time, time.Time) ([]models.RawBar, error) {
	return nil, errOffline
}

func (stubQuotes) Search(context.Context, string) ([]models.RawSearchResult, error) {
	return nil, errOffline
}

type offline struct{}

func (offline) FetchNews(context.Context, string, int) ([]models.RawArticle, error) {
	return nil, errOffline
}

func (offline) FetchSeries(context.Context, string, int) ([]models.RawObservation, error) {
	return nil, errOffline
}

func (offline) FetchGDP(context.Context) ([]models.RawGDPRow, error) {
	return nil, errOffline
}

func TestSnapshotKeepsNormalizedQuotesExactly(t *testing.T) {
	at := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time { return at }
	a, b := 0.1, 0.2
	raws := stubQuotes{
		"SPY.US": {Code: "SPY.US", Timestamp: models.F(float64(at.Unix())), Close: models.F(a + b), ChangeP: models.F(a + b), Volume: models.F(1e6)},
		"QQQ.US": {Code: "QQQ.US", Close: models.F(432.17), PreviousClose: models.F(430.01), Volume: models.F(7)},
		"XLK.US": {Code: "XLK.US", Price: models.F(201.333333333), ChangePercent: models.F(-1.0000001)},
	}

	norm := normalize.New(normalize.WithClock(clock))
	ttl := usecase.TTLs{Quote: time.Minute, Sector: time.Minute, Mover: time.Minute, News: time.Minute,
		Search: time.Minute, Series: time.Hour, GDP: time.Hour, History: time.Hour}
	src := usecase.NewSources(raws, offline{}, offline{}, offline{}, norm,
		cache.NewLoader(cache.NewMemoryCache()), ttl, pkgmetrics.Nop{})
	svc := usecase.NewMarketService(src, repository.NewMemoryHistory(10), usecase.WithClock(clock))

	xhttp.Now = clock
	t.Cleanup(func() { xhttp.Now = time.Now })
	s := xhttp.NewServer([]xhttp.Handler{NewMarketEchoHandler(xlogger.Nop(), svc)}, xhttp.WithMetricsPath(""))

	rec := get(s, "/api/market/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool            `json:"success"`
		Data    models.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)

	served := map[string]models.Quote{}
	for _, q := range body.Data.Indices {
		served[q.Symbol] = q
	}
	for _, sec := range body.Data.Sectors {
		served[sec.Symbol] = models.Quote{Symbol: sec.Symbol, Price: sec.Price, Change: sec.Change, ChangePercent: sec.ChangePercent, Volume: sec.Volume}
	}
	require.Len(t, served, len(raws))

	for ticker, raw := range raws {
		want := norm.Quote(raw)
		got, ok := served[want.Symbol]
		require.True(t, ok, ticker)
		require.Equal(t, want.Symbol, got.Symbol, ticker)
		require.Equal(t, want.Price, got.Price, ticker)
		require.Equal(t, want.ChangePercent, got.ChangePercent, ticker)
		require.Equal(t, want.Change, got.Change, ticker)
		require.Equal(t, want.Volume, got.Volume, ticker)
	}
	require.Equal(t, a+b, served["SPY"].Price)
}
