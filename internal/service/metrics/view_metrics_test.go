package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(ViewErrors.WithLabelValues("test_view"))
	Observe("test_view", time.Now(), nil)
	Observe("test_view", time.Now(), errors.New("boom"))
	require.Equal(t, before+1, testutil.ToFloat64(ViewErrors.WithLabelValues("test_view")))

	Degraded("test_view")
	require.Equal(t, 1.0, testutil.ToFloat64(ViewDegraded.WithLabelValues("test_view")))
}
