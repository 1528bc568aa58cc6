package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Code  string  `json:"code"`
	Close float64 `json:"close"`
}

func newFastClient(retries int, opts ...ClientOption) *Client {
	return NewClient(append([]ClientOption{
		WithTimeout(2 * time.Second),
		WithRetry(retries, time.Millisecond, 5*time.Millisecond),
	}, opts...)...)
}

func TestSendAndParseRetriesOnServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		require.Equal(t, "SPY.US", r.URL.Query().Get("s"))
		_, _ = w.Write([]byte(`{"code":"SPY.US","close":501.5}`))
	}))
	defer srv.Close()

	var retried []int
	c := newFastClient(3, WithRetryHook(func(_ *RequestOptions, attempt int, _ error) {
		retried = append(retried, attempt)
	}))

	var got payload
	err := c.SendAndParse(context.Background(), &RequestOptions{
		URL:         srv.URL,
		QueryParams: map[string][]string{"s": {"SPY.US"}},
	}, &got)
	require.NoError(t, err)
	require.Equal(t, payload{"SPY.US", 501.5}, got)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
	require.Equal(t, []int{1, 2}, retried)
}

func TestSendAndParseRetriesRateLimitThenGivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := newFastClient(2).SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, nil)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	require.Equal(t, "slow down", se.Body)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSendAndParseDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := newFastClient(3).SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, nil)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.False(t, se.Temporary())
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSendAndParseDoesNotRetryBadJSON(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"code":`))
	}))
	defer srv.Close()

	var got payload
	err := newFastClient(3).SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, &got)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSendAndParseStopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(WithRetry(5, time.Hour, time.Hour), WithRetryHook(func(*RequestOptions, int, error) {
		cancel()
	}))

	err := c.SendAndParse(ctx, &RequestOptions{URL: srv.URL}, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSendAndParseRetriesTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	var retries int
	err := newFastClient(2, WithRetryHook(func(*RequestOptions, int, error) { retries++ })).
		SendAndParse(context.Background(), &RequestOptions{URL: url}, nil)
	require.Error(t, err)
	require.Equal(t, 2, retries)
}

func TestBackoffIsCapped(t *testing.T) {
	c := NewClient(WithRetry(5, 100*time.Millisecond, 300*time.Millisecond))
	require.Equal(t, 100*time.Millisecond, c.backoff(1))
	require.Equal(t, 200*time.Millisecond, c.backoff(2))
	require.Equal(t, 300*time.Millisecond, c.backoff(3))
	require.Equal(t, 300*time.Millisecond, c.backoff(6))
}

func TestTransportErrorsOmitQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	var hooked []error
	c := newFastClient(1, WithRetryHook(func(_ *RequestOptions, _ int, err error) {
		hooked = append(hooked, err)
	}))
	err := c.SendAndParse(context.Background(), &RequestOptions{
		URL:         addr + "/real-time/SPY.US",
		QueryParams: map[string][]string{"api_token": {"SUPERSECRET"}, "fmt": {"json"}},
	}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "/real-time/SPY.US")
	require.NotContains(t, err.Error(), "SUPERSECRET")
	require.NotContains(t, err.Error(), "api_token")
	require.Len(t, hooked, 1)
	require.NotContains(t, hooked[0].Error(), "SUPERSECRET")
}
