package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nandanugg/kitty-compass/config"
	"github.com/nandanugg/kitty-compass/module/core"
)

func main() {
	cfg := config.Load()

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	objects, err := config.NewMinio(cfg)
	if err != nil {
		log.Fatalf("minio: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LandmarksTimeout)
	landmarks := core.LoadLandmarks(ctx, cfg.LandmarksSource, objects)
	cancel()

	opts := core.Options{
		DB:         db,
		MQTT:       mqttClient,
		Transport:  cfg.NotifyTransport,
		Landmarks:  landmarks,
		RadiusKm:   cfg.NotifyRadiusKm,
		TieBreak:   cfg.NotifyTieBreak,
		Registerer: prometheus.DefaultRegisterer,
	}

	health := config.NewHealthChecker(db, mqttClient, landmarks)

	switch cfg.NotifyTransport {
	case config.TransportKafka:
		w, err := config.NewKafkaWriter(cfg)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer func() { _ = w.Close() }()
		opts.Kafka = w
		health.WithKafka(cfg.KafkaBrokers)
	default:
		amqpConn, err := config.NewRabbitMQ(cfg)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		defer func() { _ = amqpConn.Close() }()
		opts.AMQP = amqpConn
		health.WithRabbitMQ(amqpConn)
	}

	coreModule, err := core.Build(opts)
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	if err := coreModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}
	defer func() { _ = coreModule.StopSubscribers() }()

	r := gin.Default()

	health.Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	coreModule.RegisterRoutes(&r.RouterGroup)

	log.Printf("listening on :%s (radius %.1f km, tie break %s, transport %s)",
		cfg.HTTPPort, cfg.NotifyRadiusKm, cfg.NotifyTieBreak, cfg.NotifyTransport)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
