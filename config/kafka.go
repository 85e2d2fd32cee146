package config

import (
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

func NewKafkaWriter(cfg *Config) (*kafka.Writer, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, nil
}
