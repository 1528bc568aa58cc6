package errtrack

import (
	"fmt"
	"sync"
	"time"

	"MarketPulse/internal/domain/models"
	applogger "MarketPulse/pkg/logger"
)

// Tracker keeps the most recent errors in a fixed-size ring.
type Tracker struct {
	mu   sync.Mutex
	buf  []models.TrackedError
	next int
	size int
	now  func() time.Time
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New returns a tracker holding at most capacity entries (100 when capacity <= 0).
func New(capacity int, opts ...Option) *Tracker {
	if capacity <= 0 {
		capacity = 100
	}
	t := &Tracker{buf: make([]models.TrackedError, capacity), now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Track records err under source, overwriting the oldest entry when full.
func (t *Tracker) Track(source string, err error) models.TrackedError {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return t.add(models.TrackedError{Time: t.now(), Source: source, Message: msg})
}

// Capture implements logger.Sink so error-level logs land in the ring.
func (t *Tracker) Capture(e applogger.Entry) {
	msg := e.Message
	if v, ok := e.Fields["error"]; ok {
		msg = fmt.Sprintf("%s: %v", msg, v)
	}
	source := e.Caller
	if v, ok := e.Fields["source"].(string); ok && v != "" {
		source = v
	}
	when := e.Time
	if when.IsZero() {
		when = t.now()
	}
	t.add(models.TrackedError{Time: when, Source: source, Message: msg})
}

func (t *Tracker) add(e models.TrackedError) models.TrackedError {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.next] = e
	t.next = (t.next + 1) % len(t.buf)
	if t.size < len(t.buf) {
		t.size++
	}
	return e
}

// Recent returns up to n entries, newest first.
func (t *Tracker) Recent(n int) []models.TrackedError {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n <= 0 || n > t.size {
		n = t.size
	}
	out := make([]models.TrackedError, 0, n)
	for i := 1; i <= n; i++ {
		idx := (t.next - i + len(t.buf)) % len(t.buf)
		out = append(out, t.buf[idx])
	}
	return out
}

// Since counts entries recorded at or after ts.
func (t *Tracker) Since(ts time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	count := 0
	for i := 1; i <= t.size; i++ {
		idx := (t.next - i + len(t.buf)) % len(t.buf)
		if t.buf[idx].Time.Before(ts) {
			break
		}
		count++
	}
	return count
}

// Len is the number of entries held.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next, t.size = 0, 0
	for i := range t.buf {
		t.buf[i] = models.TrackedError{}
	}
}
