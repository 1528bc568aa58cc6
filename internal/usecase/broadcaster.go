package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	applogger "MarketPulse/pkg/logger"
	xutil "MarketPulse/pkg/util"

	"github.com/robfig/cron/v3"
)

// SnapshotSource produces the pushed snapshot.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

// Subscribers is the push channel.
type Subscribers interface {
	Broadcast(msg []byte) int
	Count() int
}

// Broadcaster recomputes the snapshot on a schedule and pushes it to every
// subscriber and, when configured, the snapshot publisher.
type Broadcaster struct {
	source    SnapshotSource
	subs      Subscribers
	publisher repository.SnapshotPublisher
	metrics   repository.Metrics
	logger    *applogger.Logger
	interval  time.Duration
	timeout   time.Duration
	now       func() time.Time

	cron *cron.Cron
	mu   sync.RWMutex
	last []byte
}

type BroadcasterOption func(*Broadcaster)

func WithPublisher(p repository.SnapshotPublisher) BroadcasterOption {
	return func(b *Broadcaster) { b.publisher = p }
}

func WithBroadcastLogger(l *applogger.Logger) BroadcasterOption {
	return func(b *Broadcaster) { b.logger = l }
}

// WithTickTimeout bounds one snapshot computation.
func WithTickTimeout(d time.Duration) BroadcasterOption {
	return func(b *Broadcaster) { b.timeout = d }
}

func WithBroadcastClock(now func() time.Time) BroadcasterOption {
	return func(b *Broadcaster) { b.now = now }
}

func NewBroadcaster(source SnapshotSource, subs Subscribers, metrics repository.Metrics, interval time.Duration, opts ...BroadcasterOption) *Broadcaster {
	b := &Broadcaster{
		source:   source,
		subs:     subs,
		metrics:  metrics,
		logger:   applogger.Nop(),
		interval: interval,
		timeout:  interval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start schedules Tick every interval until Stop.
func (b *Broadcaster) Start(ctx context.Context) error {
	c := cron.New(cron.WithLogger(cronLogger{b.logger}))
	if _, err := c.AddJob(fmt.Sprintf("@every %s", b.interval), b.job(ctx)); err != nil {
		return fmt.Errorf("schedule broadcast: %w", err)
	}
	b.cron = c
	c.Start()
	b.logger.Info("broadcaster started", applogger.Duration("interval", b.interval))
	return nil
}

// Stop halts the schedule and waits for a running tick.
func (b *Broadcaster) Stop() {
	if b.cron == nil {
		return
	}
	<-b.cron.Stop().Done()
	b.logger.Info("broadcaster stopped")
}

// job wraps Tick so a slow cycle makes the next one skip instead of stacking.
func (b *Broadcaster) job(ctx context.Context) cron.Job {
	lg := cronLogger{b.logger}
	return cron.NewChain(cron.Recover(lg), cron.SkipIfStillRunning(lg)).
		Then(cron.FuncJob(func() { b.Tick(ctx) }))
}

// Tick runs one push cycle. It is skipped when nobody would receive it.
func (b *Broadcaster) Tick(ctx context.Context) {
	if b.subs.Count() == 0 && b.publisher == nil {
		b.metrics.RecordBroadcast("skipped")
		return
	}

	tctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	snap, err := b.source.Snapshot(tctx)
	if err != nil {
		b.metrics.RecordBroadcast("error")
		b.logger.Error("snapshot for broadcast failed", applogger.String("source", "broadcast"), applogger.Error(err))
		return
	}

	msg, err := json.Marshal(models.PushMessage{
		Type:      models.PushMarketUpdate,
		Data:      snap,
		Timestamp: xutil.UnixMilli(b.now()),
	})
	if err != nil {
		b.metrics.RecordBroadcast("error")
		b.logger.Error("encode push message", applogger.Error(err))
		return
	}

	b.mu.Lock()
	b.last = msg
	b.mu.Unlock()

	sent := b.subs.Broadcast(msg)
	b.metrics.RecordBroadcast("sent")
	b.metrics.SetSubscribers(b.subs.Count())

	if b.publisher != nil {
		if err := b.publisher.Publish(tctx, snap); err != nil {
			b.metrics.RecordError("publish")
			b.logger.Warn("snapshot publish failed", applogger.Error(err))
		}
	}
	b.logger.Debug("snapshot broadcast", applogger.Int("subscribers", sent))
}

// Last returns the most recent push message, for greeting new subscribers.
func (b *Broadcaster) Last() ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last, b.last != nil
}

// cronLogger routes scheduler messages into the app logger.
type cronLogger struct{ l *applogger.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, cronFields(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append(cronFields(keysAndValues), applogger.String("source", "broadcast"), applogger.Error(err))...)
}

func cronFields(kv []interface{}) []applogger.Field {
	fields := make([]applogger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, applogger.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return fields
}
