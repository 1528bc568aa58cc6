//go:build wireinject
// +build wireinject

package di

import (
	"MarketPulse/pkg/config"
	"MarketPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideErrorTracker,
		ProvideLogger,
		ProvideMetrics,

		// Upstream fetchers
		ProvideQuoteFetcher,
		ProvideNewsFetcher,
		ProvideSeriesFetcher,
		ProvideGDPFetcher,

		// Cache and normalization
		ProvideCache,
		ProvideLoader,
		ProvideNormalizer,
		ProvideSources,

		// Infrastructure clients and repositories
		ProvideClickHouseClient,
		ProvideMoverHistory,
		ProvideKafkaProducer,
		ProvideSnapshotPublisher,

		// Use cases
		ProvideMarketService,
		ProvideHealthService,
		ProvidePush,

		// Delivery
		ProvideRateLimiter,
		ProvideHandlers,
		ProvideHTTPServer,
		ProvideApp,
	)
	return &server.App{}, nil
}
