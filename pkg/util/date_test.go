package util

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	require.True(t, ok)
	require.Equal(t, s, got.UTC().Format(time.RFC3339))
}

func TestParseTimeNaiveISO(t *testing.T) {
	got, ok := ParseTime("2025-03-04T15:16:17")
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 3, 4, 15, 16, 17, 0, time.UTC), got)
}

func TestParseTimeDateOnly(t *testing.T) {
	got, ok := ParseTime("2025-03-04")
	require.True(t, ok)
	require.Equal(t, "2025-03-04", FormatDate(got))
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	require.True(t, ok)
	require.Equal(t, ts, got.Unix())
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	require.True(t, ParseTimeDefault("", def).Equal(def))
	require.True(t, ParseTimeDefault("yesterday", def).Equal(def))
}

func TestUnixMilli(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 1, 500*int(time.Millisecond), time.UTC)
	require.Equal(t, int64(1704067201500), UnixMilli(ts))
}
