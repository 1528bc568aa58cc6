package repository

import (
	"context"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	pkgkafka "MarketPulse/pkg/kafka"
)

// KafkaPublisher writes snapshots to a topic, keyed so a partition sees them in order.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

var snapshotKey = []byte("snapshot")

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.SnapshotPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, snap *models.Snapshot) error {
	return p.producer.Publish(ctx, p.topic, snapshotKey, models.PushMessage{
		Type:      models.PushMarketUpdate,
		Data:      snap,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
