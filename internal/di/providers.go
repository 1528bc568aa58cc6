package di

import (
	"context"
	"fmt"
	"time"

	"MarketPulse/internal/domain/repository"
	"MarketPulse/internal/handler/api"
	mid "MarketPulse/internal/middleware"
	internalrepo "MarketPulse/internal/repository"
	"MarketPulse/internal/service/bea"
	"MarketPulse/internal/service/brave"
	"MarketPulse/internal/service/eod"
	"MarketPulse/internal/service/errtrack"
	"MarketPulse/internal/service/fred"
	viewmetrics "MarketPulse/internal/service/metrics"
	"MarketPulse/internal/service/normalize"
	"MarketPulse/internal/service/ratelimit"
	"MarketPulse/internal/service/stream"
	"MarketPulse/internal/usecase"
	"MarketPulse/pkg/cache"
	pkgch "MarketPulse/pkg/clickhouse"
	"MarketPulse/pkg/config"
	xhttp "MarketPulse/pkg/http"
	pkgkafka "MarketPulse/pkg/kafka"
	applogger "MarketPulse/pkg/logger"
	"MarketPulse/pkg/metrics"
	"MarketPulse/pkg/server"

	"github.com/labstack/echo/v4"
)

// ProvideErrorTracker creates the recent-errors ring.
func ProvideErrorTracker(cfg *config.Config) *errtrack.Tracker {
	return errtrack.New(cfg.Errors.Capacity)
}

// ProvideLogger creates the process logger; error records feed the tracker.
func ProvideLogger(cfg *config.Config, tracker *errtrack.Tracker) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.AddSink(tracker)
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	viewmetrics.Register()
	return metrics.New()
}

func newHTTPClient(cfg *config.Config, p config.ProviderConfig, provider string, l *applogger.Logger) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(p.Timeout),
		xhttp.WithRetry(cfg.HTTPClient.MaxRetries, cfg.HTTPClient.BackoffMin, cfg.HTTPClient.BackoffMax),
		xhttp.WithRetryHook(func(_ *xhttp.RequestOptions, attempt int, err error) {
			l.Warn("upstream retry",
				applogger.String("provider", provider),
				applogger.Int("attempt", attempt),
				applogger.Error(err))
		}),
	)
}

// ProvideQuoteFetcher creates the EOD client.
func ProvideQuoteFetcher(cfg *config.Config, l *applogger.Logger) repository.QuoteFetcher {
	p := cfg.Providers.EOD
	return eod.New(p.APIKey, eod.WithBaseURL(p.BaseURL), eod.WithHTTPClient(newHTTPClient(cfg, p, eod.Provider, l)))
}

// ProvideNewsFetcher creates the Brave client.
func ProvideNewsFetcher(cfg *config.Config, l *applogger.Logger) repository.NewsFetcher {
	p := cfg.Providers.Brave
	return brave.New(p.APIKey, brave.WithBaseURL(p.BaseURL), brave.WithHTTPClient(newHTTPClient(cfg, p, brave.Provider, l)))
}

// ProvideSeriesFetcher creates the FRED client.
func ProvideSeriesFetcher(cfg *config.Config, l *applogger.Logger) repository.SeriesFetcher {
	p := cfg.Providers.FRED
	return fred.New(p.APIKey, fred.WithBaseURL(p.BaseURL), fred.WithHTTPClient(newHTTPClient(cfg, p, fred.Provider, l)))
}

// ProvideGDPFetcher creates the BEA client.
func ProvideGDPFetcher(cfg *config.Config, l *applogger.Logger) repository.GDPFetcher {
	p := cfg.Providers.BEA
	return bea.New(p.APIKey, bea.WithBaseURL(p.BaseURL), bea.WithHTTPClient(newHTTPClient(cfg, p, bea.Provider, l)))
}

// ProvideCache creates the one cache backend of the process.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	c := cfg.Cache
	mem := []cache.MemoryOption{
		cache.WithMemoryMaxSize(c.MaxItems),
		cache.WithMemoryDefaultTTL(c.DefaultTTL),
	}
	if c.Backend == "memory" {
		return cache.NewMemoryCache(mem...), nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(c.Redis.Addr),
		cache.WithRedisPassword(c.Redis.Password),
		cache.WithRedisDB(c.Redis.DB),
		cache.WithRedisPool(c.Redis.PoolSize, c.Redis.PoolSize/2, 3*time.Second),
		cache.WithRedisPrefix(c.Redis.Prefix),
		cache.WithRedisDefaultTTL(c.DefaultTTL),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	if c.Backend == "redis" {
		return rc, nil
	}
	return cache.NewLayeredCache(rc, cache.WithLayeredMemoryOptions(mem...)), nil
}

// ProvideLoader fronts the cache with single-flight loads and hit/miss metrics.
func ProvideLoader(cfg *config.Config, svc cache.Service, m repository.Metrics, l *applogger.Logger) *cache.Loader {
	return cache.NewLoader(svc,
		cache.WithLoadTimeout(cfg.Server.RequestTimeout),
		cache.WithHitHook(func(key string) { m.RecordCache(cache.Namespace(key), true) }),
		cache.WithMissHook(func(key string) { m.RecordCache(cache.Namespace(key), false) }),
		cache.WithErrorHook(func(key string, err error) {
			m.RecordError("cache")
			l.Warn("cache backend error", applogger.String("key", key), applogger.Error(err))
		}),
	)
}

func ProvideNormalizer() *normalize.Normalizer {
	return normalize.New()
}

// ProvideSources creates the fetch-normalize-cache stage.
func ProvideSources(
	cfg *config.Config,
	quotes repository.QuoteFetcher,
	news repository.NewsFetcher,
	series repository.SeriesFetcher,
	gdp repository.GDPFetcher,
	norm *normalize.Normalizer,
	loader *cache.Loader,
	m repository.Metrics,
) *usecase.Sources {
	t := cfg.Cache.TTL
	return usecase.NewSources(quotes, news, series, gdp, norm, loader, usecase.TTLs{
		Quote:   t.Quote,
		Sector:  t.Sector,
		Mover:   t.Mover,
		News:    t.News,
		Search:  t.Search,
		Series:  t.Series,
		GDP:     t.GDP,
		History: t.History,
	}, m)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	c := cfg.ClickHouse
	if !c.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(c.Host),
		pkgch.WithPort(c.Port),
		pkgch.WithDatabase(c.Database),
		pkgch.WithCredentials(c.User, c.Password),
		pkgch.WithHTTP(c.UseHTTP),
		pkgch.WithTimeouts(c.DialTimeout, c.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideMoverHistory stores movers in ClickHouse when available, else in memory.
func ProvideMoverHistory(cfg *config.Config, ch *pkgch.Client, l *applogger.Logger) (repository.MoverHistory, error) {
	if ch == nil {
		return internalrepo.NewMemoryHistory(cfg.History.Capacity), nil
	}
	store := internalrepo.NewCHHistory(ch, cfg.ClickHouse.Table)
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stmts := append([]string{"CREATE DATABASE IF NOT EXISTS " + ch.Database()}, store.Schema()...)
	if err := ch.InitSchema(ctx, stmts); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	k := cfg.Kafka
	if !k.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(k.Brokers),
		pkgkafka.WithCompression(k.Compression),
		pkgkafka.WithRequiredAcks(k.RequiredAcks),
		pkgkafka.WithMaxAttempts(k.MaxAttempts),
		pkgkafka.WithWriteTimeout(k.WriteTimeout),
		pkgkafka.WithAsync(k.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSnapshotPublisher returns nil when no producer is configured.
func ProvideSnapshotPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.SnapshotPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideMarketService creates the view service; legs hidden by a fallback are tracked.
func ProvideMarketService(src *usecase.Sources, history repository.MoverHistory, tracker *errtrack.Tracker, l *applogger.Logger) *usecase.MarketService {
	return usecase.NewMarketService(src, history, usecase.WithLogger(l), usecase.WithErrorTracker(tracker))
}

func ProvideHealthService(cfg *config.Config, tracker *errtrack.Tracker) *usecase.HealthService {
	return usecase.NewHealthService(cfg, tracker, nil)
}

// Push is the websocket hub and the broadcaster feeding it.
type Push struct {
	Hub         *stream.Hub
	Broadcaster *usecase.Broadcaster
}

// ProvidePush builds the hub and its broadcaster together: new subscribers
// are greeted with the broadcaster's last message.
func ProvidePush(
	cfg *config.Config,
	svc *usecase.MarketService,
	publisher repository.SnapshotPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) *Push {
	p := &Push{}
	p.Hub = stream.NewHub(
		stream.WithWriteTimeout(cfg.Push.WriteTimeout),
		stream.WithPingInterval(cfg.Push.PingInterval),
		stream.WithAllowedOrigins(cfg.Server.AllowedOrigins...),
		stream.WithGreeting(func() ([]byte, bool) { return p.Broadcaster.Last() }),
		stream.WithLogger(l),
		stream.WithMetrics(m),
	)
	opts := []usecase.BroadcasterOption{
		usecase.WithBroadcastLogger(l),
		usecase.WithTickTimeout(cfg.Server.RequestTimeout),
	}
	if publisher != nil {
		opts = append(opts, usecase.WithPublisher(publisher))
	}
	p.Broadcaster = usecase.NewBroadcaster(svc, p.Hub, m, cfg.Push.Interval, opts...)
	return p
}

func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSecond)
}

// ProvideHandlers lists the route groups in registration order.
func ProvideHandlers(cfg *config.Config, svc *usecase.MarketService, health *usecase.HealthService, push *Push, l *applogger.Logger) []xhttp.Handler {
	handlers := []xhttp.Handler{
		api.NewHealthEchoHandler(health),
		api.NewMarketEchoHandler(l, svc),
	}
	if cfg.Push.Enabled {
		handlers = append(handlers, api.NewStreamEchoHandler(cfg.Push.Path, push.Hub))
	}
	return handlers
}

// ProvideHTTPServer creates the echo server with the /api guards.
func ProvideHTTPServer(
	cfg *config.Config,
	handlers []xhttp.Handler,
	limiter *ratelimit.Limiter,
	m repository.Metrics,
	l *applogger.Logger,
) *xhttp.Server {
	var mw []echo.MiddlewareFunc
	if !cfg.Server.StrictKeys {
		mw = append(mw, mid.KeyGuard("/api", cfg.MissingAPIKeys))
	}
	if cfg.RateLimit.Enabled {
		mw = append(mw, mid.RateLimit("/api", limiter))
	}
	return xhttp.NewServer(handlers,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithAllowOrigins(cfg.Server.AllowedOrigins...),
		xhttp.WithTrustedProxies(cfg.Server.TrustedProxies...),
		xhttp.WithLogger(l),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithMiddleware(mw...),
		xhttp.WithErrorObserver(func(echo.Context, error) { m.RecordError("http") }),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	push *Push,
	limiter *ratelimit.Limiter,
	publisher repository.SnapshotPublisher,
	ch *pkgch.Client,
	cacheSvc cache.Service,
) *server.App {
	opts := []server.Option{server.WithHub(push.Hub)}
	if cfg.Push.Enabled {
		opts = append(opts, server.WithBroadcaster(push.Broadcaster))
	}
	if cfg.RateLimit.Enabled {
		opts = append(opts, server.WithLimiter(limiter, 10*time.Minute))
	}
	if publisher != nil {
		opts = append(opts, server.WithCloser("kafka", publisher))
	}
	if ch != nil {
		opts = append(opts, server.WithCloser("clickhouse", ch))
	}
	opts = append(opts, server.WithCloser("cache", cacheSvc))
	return server.New(l, srv, opts...)
}
