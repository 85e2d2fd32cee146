package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/nandanugg/kitty-compass/module/core/domain"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/publisher"
)

var _ publisher.NotificationPublisher = (*NotificationPublisher)(nil)

const DefaultTopic = "timeline-items"

// Writer is the subset of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type NotificationPublisher struct {
	w Writer
}

func NewNotificationPublisher(w Writer) *NotificationPublisher {
	return &NotificationPublisher{w: w}
}

// Publish keys messages by user so one user's notifications stay ordered.
func (p *NotificationPublisher) Publish(ctx context.Context, n *domain.Notification) error {
	body, err := publisher.Encode(n)
	if err != nil {
		return err
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.UserID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(n.Kind)},
			{Key: "id", Value: []byte(n.ID)},
		},
		Time: n.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *NotificationPublisher) Close() error {
	return p.w.Close()
}
