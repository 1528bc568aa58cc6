package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type captureSink struct{ entries []Entry }

func (c *captureSink) Capture(e Entry) { c.entries = append(c.entries, e) }

func TestLoggerWritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.InfoLevel)

	l.Info("quote fetched", String("symbol", "SPY"), Int("attempt", 2), Float64("price", 501.25))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "quote fetched", got["message"])
	require.Equal(t, "SPY", got["symbol"])
	require.Equal(t, float64(2), got["attempt"])
	require.Equal(t, 501.25, got["price"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.WarnLevel)
	l.Info("hidden")
	l.Debug("hidden")
	require.Zero(t, buf.Len())
}

func TestErrorReachesSinks(t *testing.T) {
	sink := &captureSink{}
	l := Nop()
	l.AddSink(sink)

	l.Warn("not captured")
	l.Error("upstream failed", String("provider", "eod"), Error(errors.New("boom")))

	require.Len(t, sink.entries, 1)
	e := sink.entries[0]
	require.Equal(t, "error", e.Level)
	require.Equal(t, "upstream failed", e.Message)
	require.Equal(t, "eod", e.Fields["provider"])
	require.Equal(t, "boom", e.Fields["error"])
	require.Contains(t, e.Caller, "logger_test.go")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	require.Error(t, err)
}
