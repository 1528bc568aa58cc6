package fred

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/series/observations", r.URL.Path)
		assert.Equal(t, "UNRATE", q.Get("series_id"))
		assert.Equal(t, "k", q.Get("api_key"))
		assert.Equal(t, "desc", q.Get("sort_order"))
		assert.Equal(t, "2", q.Get("limit"))
		_, _ = w.Write([]byte(`{"observations":[{"date":"2024-04-01","value":"3.9"},{"date":"2024-03-01","value":"."}]}`))
	}))
	defer srv.Close()

	obs, err := New("k", WithBaseURL(srv.URL)).FetchSeries(context.Background(), "UNRATE", 2)
	require.NoError(t, err)
	require.Len(t, obs, 2)
	require.Equal(t, 3.9, obs[0].Value.Value)
	require.False(t, obs[1].Value.Valid)
}
