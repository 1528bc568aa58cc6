package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketPulse/internal/service/ratelimit"
	xhttp "MarketPulse/pkg/http"
	applogger "MarketPulse/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler is a background job with an explicit lifecycle.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop()
}

type namedCloser struct {
	name string
	c    io.Closer
}

// App encapsulates the entire application lifecycle.
type App struct {
	logger      *applogger.Logger
	httpServer  *xhttp.Server
	broadcaster Scheduler
	hub         interface{ Close() }
	limiter     *ratelimit.Limiter
	limiterIdle time.Duration
	closers     []namedCloser
	janitor     *cron.Cron
}

type Option func(*App)

func WithBroadcaster(s Scheduler) Option {
	return func(a *App) { a.broadcaster = s }
}

// WithHub disconnects push subscribers on shutdown.
func WithHub(h interface{ Close() }) Option {
	return func(a *App) { a.hub = h }
}

// WithLimiter prunes idle rate-limit buckets once a minute.
func WithLimiter(l *ratelimit.Limiter, idle time.Duration) Option {
	return func(a *App) { a.limiter, a.limiterIdle = l, idle }
}

// WithCloser registers infrastructure closed on shutdown, in registration order.
func WithCloser(name string, c io.Closer) Option {
	return func(a *App) {
		if c != nil {
			a.closers = append(a.closers, namedCloser{name: name, c: c})
		}
	}
}

// New creates a new App instance with all dependencies.
func New(logger *applogger.Logger, httpServer *xhttp.Server, opts ...Option) *App {
	a := &App{logger: logger, httpServer: httpServer}
	if a.logger == nil {
		a.logger = applogger.Nop()
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts the application and blocks until ctx is cancelled or an
// interrupt arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.httpServer.Start(); err != nil {
		return fmt.Errorf("http server start: %w", err)
	}

	if a.broadcaster != nil {
		if err := a.broadcaster.Start(ctx); err != nil {
			a.logger.Error("broadcaster start error", applogger.Error(err))
		}
	}

	if a.limiter != nil {
		a.janitor = cron.New()
		if _, err := a.janitor.AddFunc("@every 1m", func() {
			if n := a.limiter.Prune(a.limiterIdle); n > 0 {
				a.logger.Debug("rate limit buckets pruned", applogger.Int("count", n))
			}
		}); err == nil {
			a.janitor.Start()
		}
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	if a.janitor != nil {
		<-a.janitor.Stop().Done()
	}
	if a.broadcaster != nil {
		a.broadcaster.Stop()
	}
	if a.hub != nil {
		a.hub.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	var firstErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}

	for _, nc := range a.closers {
		if err := nc.c.Close(); err != nil {
			a.logger.Warn("close error", applogger.String("component", nc.name), applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return firstErr
}
