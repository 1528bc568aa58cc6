package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEncodesJSON(t *testing.T) {
	w := &memWriter{}
	p, err := NewProducer(WithWriter(w))
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), "market.snapshots", []byte("snapshot"), map[string]string{"type": "MARKET_UPDATE"}))
	require.Len(t, w.msgs, 1)
	require.Equal(t, "market.snapshots", w.msgs[0].Topic)
	require.Equal(t, []byte("snapshot"), w.msgs[0].Key)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &body))
	require.Equal(t, "MARKET_UPDATE", body["type"])

	require.NoError(t, p.Close())
	require.True(t, w.closed)
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker unavailable")
	p, err := NewProducer(WithWriter(&memWriter{err: boom}))
	require.NoError(t, err)

	err = p.Publish(context.Background(), "t", nil, []byte("x"))
	require.ErrorIs(t, err, boom)
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	require.Error(t, err)
}
