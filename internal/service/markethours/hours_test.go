package markethours

import (
	"testing"
	"time"

	"MarketPulse/internal/domain/models"

	"github.com/stretchr/testify/require"
)

func ny(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, newYork)
	require.NoError(t, err)
	return ts
}

func TestSession(t *testing.T) {
	cases := map[string]string{
		"2024-05-01 03:59": models.SessionClosed,
		"2024-05-01 04:00": models.SessionPreMarket,
		"2024-05-01 09:29": models.SessionPreMarket,
		"2024-05-01 09:30": models.SessionOpen,
		"2024-05-01 15:59": models.SessionOpen,
		"2024-05-01 16:00": models.SessionAfterHours,
		"2024-05-01 19:59": models.SessionAfterHours,
		"2024-05-01 20:00": models.SessionClosed,
		"2024-05-04 11:00": models.SessionClosed, // Saturday
		"2024-05-05 11:00": models.SessionClosed, // Sunday
	}
	for in, want := range cases {
		require.Equal(t, want, Session(ny(t, in)), in)
	}
}

func TestStatusFromUTC(t *testing.T) {
	// 14:00 UTC is 10:00 EDT
	st := Status(time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC))
	require.True(t, st.IsOpen)
	require.Equal(t, "10:00", st.LocalTime)
	require.Equal(t, Timezone, st.Timezone)
}
