package repository

//go:generate mockgen -package=mocks -destination=mocks/mocks.go -source=interfaces.go -exclude_interfaces=QuoteFetcher,SeriesFetcher,GDPFetcher,Metrics

import (
	"context"
	"time"

	"MarketPulse/internal/domain/models"
)

// QuoteFetcher reads the quote provider.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, ticker string) (models.RawQuote, error)
	FetchHistory(ctx context.Context, ticker string, from, to time.Time) ([]models.RawBar, error)
	Search(ctx context.Context, query string) ([]models.RawSearchResult, error)
}

// NewsFetcher reads the news search provider.
type NewsFetcher interface {
	FetchNews(ctx context.Context, query string, count int) ([]models.RawArticle, error)
}

// SeriesFetcher reads economic time series, newest first.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, seriesID string, limit int) ([]models.RawObservation, error)
}

type GDPFetcher interface {
	FetchGDP(ctx context.Context) ([]models.RawGDPRow, error)
}

// MoverHistory stores selected movers, newest first on read.
type MoverHistory interface {
	Append(ctx context.Context, rec models.MoverRecord) error
	Recent(ctx context.Context, limit int) ([]models.MoverRecord, error)
}

// SnapshotPublisher fans snapshots out to consumers outside the process.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snap *models.Snapshot) error
	Close() error
}

type Metrics interface {
	RecordUpstream(provider string, ok bool, seconds float64)
	RecordCache(namespace string, hit bool)
	RecordError(kind string)
	SetSubscribers(n int)
	RecordBroadcast(result string)
	RecordLatency(op string, seconds float64)
}
