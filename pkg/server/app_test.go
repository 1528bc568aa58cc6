package server

import (
	"context"
	"sync"
	"testing"
	"time"

	xhttp "MarketPulse/pkg/http"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeScheduler struct{ r *recorder }

func (s fakeScheduler) Start(context.Context) error { s.r.add("broadcast-start"); return nil }
func (s fakeScheduler) Stop()                       { s.r.add("broadcast-stop") }

type fakeHub struct{ r *recorder }

func (h fakeHub) Close() { h.r.add("hub-close") }

type fakeCloser struct {
	r    *recorder
	name string
}

func (c fakeCloser) Close() error { c.r.add(c.name); return nil }

func TestRunShutsDownInOrder(t *testing.T) {
	r := &recorder{}
	srv := xhttp.NewServer(nil,
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(0),
		xhttp.WithMetricsPath(""),
		xhttp.WithTimeouts(time.Second, time.Second, time.Second),
	)
	app := New(nil, srv,
		WithBroadcaster(fakeScheduler{r}),
		WithHub(fakeHub{r}),
		WithCloser("publisher", fakeCloser{r, "publisher-close"}),
		WithCloser("cache", fakeCloser{r, "cache-close"}),
		WithCloser("nil", nil),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return len(r.list()) == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	require.Equal(t, []string{"broadcast-start", "broadcast-stop", "hub-close", "publisher-close", "cache-close"}, r.list())
}
