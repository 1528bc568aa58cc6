package cache

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader fronts a Service with cache-check, load, populate. Concurrent loads
// of one key share a single call.
type Loader struct {
	svc     Service
	group   singleflight.Group
	timeout time.Duration
	onHit   func(key string)
	onMiss  func(key string)
	onError func(key string, err error)
}

// LoaderOption configures Loader.
type LoaderOption func(*Loader)

// WithHitHook is called on every cache hit.
func WithHitHook(fn func(key string)) LoaderOption {
	return func(l *Loader) { l.onHit = fn }
}

// WithMissHook is called on every miss, before loading.
func WithMissHook(fn func(key string)) LoaderOption {
	return func(l *Loader) { l.onMiss = fn }
}

// WithErrorHook is called when the backend fails a Get or Set.
func WithErrorHook(fn func(key string, err error)) LoaderOption {
	return func(l *Loader) { l.onError = fn }
}

// WithLoadTimeout bounds a shared load. Loads do not inherit the caller's
// cancellation since other callers may be waiting on them.
func WithLoadTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

func NewLoader(svc Service, opts ...LoaderOption) *Loader {
	l := &Loader{svc: svc, timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Service returns the backing cache.
func (l *Loader) Service() Service { return l.svc }

// GetOrLoad returns the cached value for key or calls load and stores its
// result for ttl. Load errors are returned as-is and never cached. A cache
// backend failure is treated as a miss.
func GetOrLoad[T any](ctx context.Context, l *Loader, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if err := l.svc.Get(ctx, key, &cached); err == nil {
		if l.onHit != nil {
			l.onHit(key)
		}
		return cached, nil
	} else if !errors.Is(err, ErrCacheMiss) && l.onError != nil {
		l.onError(key, err)
	}
	if l.onMiss != nil {
		l.onMiss(key)
	}

	ch := l.group.DoChan(key, func() (interface{}, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()
		val, err := load(lctx)
		if err != nil {
			return nil, err
		}
		if serr := l.svc.Set(lctx, key, val, ttl); serr != nil && l.onError != nil {
			l.onError(key, serr)
		}
		return val, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
