package errs

import (
	"context"
	"errors"
	"testing"

	xhttp "MarketPulse/pkg/http"

	"github.com/stretchr/testify/require"
)

func TestFetchLiftsStatus(t *testing.T) {
	err := Fetch("eod", "quote", "SPY.US", &xhttp.StatusError{StatusCode: 503})
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, 503, fe.Status)
	require.True(t, fe.Retryable())
	require.True(t, IsFetch(err))
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"not found", &xhttp.StatusError{StatusCode: 404}, false},
		{"rate limited", &xhttp.StatusError{StatusCode: 429}, true},
		{"transport", errors.New("connection reset"), true},
		{"decode", &xhttp.DecodeError{Err: errors.New("bad json")}, false},
		{"missing key", ErrMissingAPIKey, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var fe *FetchError
			require.ErrorAs(t, Fetch("p", "op", "k", tc.err), &fe)
			require.Equal(t, tc.want, fe.Retryable())
		})
	}
}

func TestFetchNil(t *testing.T) {
	require.NoError(t, Fetch("p", "op", "k", nil))
	require.False(t, IsFetch(context.Canceled))
}
