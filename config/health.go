package config

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
)

type landmarkCounter interface {
	Len() int
}

type HealthChecker struct {
	db           *sql.DB
	mqtt         mqtt.Client
	landmarks    landmarkCounter
	amqpConn     *amqp.Connection
	kafkaBrokers []string
	dialKafka    func(ctx context.Context, addr string) error
}

func NewHealthChecker(db *sql.DB, mqttClient mqtt.Client, landmarks landmarkCounter) *HealthChecker {
	return &HealthChecker{
		db:        db,
		mqtt:      mqttClient,
		landmarks: landmarks,
		dialKafka: dialKafka,
	}
}

// WithRabbitMQ reports the RabbitMQ connection as the notification transport.
func (h *HealthChecker) WithRabbitMQ(conn *amqp.Connection) *HealthChecker {
	h.amqpConn = conn
	return h
}

// WithKafka reports the first reachable Kafka broker as the notification transport.
func (h *HealthChecker) WithKafka(brokers []string) *HealthChecker {
	h.kafkaBrokers = brokers
	return h
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	status := http.StatusOK
	deps := gin.H{}

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		deps["postgres"] = gin.H{"status": "down", "error": err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		deps["postgres"] = gin.H{"status": "up"}
	}

	if !h.mqtt.IsConnected() {
		deps["mqtt"] = gin.H{"status": "down", "error": "not connected"}
		status = http.StatusServiceUnavailable
	} else {
		deps["mqtt"] = gin.H{"status": "up"}
	}

	switch {
	case h.amqpConn != nil:
		if h.amqpConn.IsClosed() {
			deps["rabbitmq"] = gin.H{"status": "down", "error": "connection closed"}
			status = http.StatusServiceUnavailable
		} else {
			deps["rabbitmq"] = gin.H{"status": "up"}
		}
	case len(h.kafkaBrokers) > 0:
		if err := h.checkKafka(c.Request.Context()); err != nil {
			deps["kafka"] = gin.H{"status": "down", "error": err.Error()}
			status = http.StatusServiceUnavailable
		} else {
			deps["kafka"] = gin.H{"status": "up"}
		}
	}

	// an empty landmark set is a valid state, so it never fails the check
	deps["landmarks"] = gin.H{"status": "up", "count": h.landmarks.Len()}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}

func (h *HealthChecker) checkKafka(ctx context.Context) error {
	var err error
	for _, addr := range h.kafkaBrokers {
		if err = h.dialKafka(ctx, addr); err == nil {
			return nil
		}
	}
	return err
}

func dialKafka(ctx context.Context, addr string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return conn.Close()
}
