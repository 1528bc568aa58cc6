package repository

import (
	"context"
	"encoding/json"
	"testing"

	"MarketPulse/internal/domain/models"
	pkgkafka "MarketPulse/pkg/kafka"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherWritesPushMessage(t *testing.T) {
	w := &memWriter{}
	producer, err := pkgkafka.NewProducer(pkgkafka.WithWriter(w))
	require.NoError(t, err)
	pub := NewKafkaPublisher(producer, "market.snapshots")

	snap := &models.Snapshot{Indices: []models.Quote{{Symbol: "SPY", Price: 500}}}
	require.NoError(t, pub.Publish(context.Background(), snap))
	require.Len(t, w.msgs, 1)
	require.Equal(t, "market.snapshots", w.msgs[0].Topic)
	require.Equal(t, []byte("snapshot"), w.msgs[0].Key)

	var msg models.PushMessage
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &msg))
	require.Equal(t, models.PushMarketUpdate, msg.Type)
	require.Equal(t, "SPY", msg.Data.Indices[0].Symbol)
	require.Positive(t, msg.Timestamp)

	require.NoError(t, pub.Close())
	require.True(t, w.closed)
}
