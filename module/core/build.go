package core

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	kafkago "github.com/segmentio/kafka-go"

	handler "github.com/nandanugg/kitty-compass/module/core/internal/handler/http"
	"github.com/nandanugg/kitty-compass/module/core/internal/handler/subscriber"
	"github.com/nandanugg/kitty-compass/module/core/internal/metrics"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/database/postgres"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/landmarks"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/publisher"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/publisher/kafka"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/publisher/rabbitmq"
	"github.com/nandanugg/kitty-compass/module/core/landmark"
	"github.com/nandanugg/kitty-compass/module/core/service"
)

// Options carries the connections and settings the core module is built from.
// Exactly one of AMQP or Kafka is used, picked by Transport.
type Options struct {
	DB        *sql.DB
	MQTT      mqtt.Client
	Transport string
	AMQP      *amqp.Connection
	Kafka     *kafkago.Writer

	Landmarks *landmark.Store
	RadiusKm  float64
	TieBreak  string

	Registerer prometheus.Registerer
}

type routeRegistrar interface {
	Register(r *gin.RouterGroup)
}

type Module struct {
	LocationSvc  *service.LocationService
	NotifySvc    *service.NotifyService
	BootstrapSvc *service.BootstrapService
	Notifier     *service.ProximityNotifier
	handlers     []routeRegistrar
	subscriber   *subscriber.LocationSubscriber
}

// LoadLandmarks resolves uri to a landmark source and loads it once. Any
// failure leaves the server running with no landmarks. objects may be nil.
func LoadLandmarks(ctx context.Context, uri string, objects *minio.Client) *landmark.Store {
	var fetcher landmarks.ObjectFetcher
	if objects != nil {
		fetcher = landmarks.NewMinioFetcher(objects)
	}

	src, err := landmarks.NewSource(uri, fetcher)
	if err != nil {
		log.Printf("landmarks: %v", err)
	}

	store := landmark.LoadFrom(ctx, src, landmark.WithLogf(log.Printf))
	log.Printf("loaded %d landmarks from %s", store.Len(), uri)
	return store
}

func Build(opts Options) (*Module, error) {
	pub, err := newPublisher(opts)
	if err != nil {
		return nil, err
	}

	recorder, err := metrics.NewRecorder(opts.Registerer)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	store := opts.Landmarks
	if store == nil {
		store = landmark.Load(nil)
	}
	recorder.SetLandmarks(store.Len())

	tieBreak, err := service.ParseTieBreak(opts.TieBreak)
	if err != nil {
		return nil, fmt.Errorf("tie break: %w", err)
	}

	radius := opts.RadiusKm
	if radius <= 0 {
		radius = landmark.MaxDistanceKm
	}

	locationRepo := postgres.NewLocationRepo(opts.DB)
	notificationRepo := postgres.NewNotificationRepo(opts.DB)
	subscriptionRepo := postgres.NewSubscriptionRepo(opts.DB)

	notifier := service.NewProximityNotifier(store, service.WithRadius(radius), service.WithTieBreak(tieBreak))
	locationSvc := service.NewLocationService(locationRepo)
	notifySvc := service.NewNotifyService(notifier, pub, notificationRepo, recorder)
	bootstrapSvc := service.NewBootstrapService(subscriptionRepo, pub)

	return &Module{
		LocationSvc:  locationSvc,
		NotifySvc:    notifySvc,
		BootstrapSvc: bootstrapSvc,
		Notifier:     notifier,
		handlers: []routeRegistrar{
			handler.NewUserHandler(locationSvc),
			handler.NewLandmarkHandler(store, notifier, radius),
			handler.NewWebhookHandler(locationSvc, notifySvc),
			handler.NewBootstrapHandler(bootstrapSvc),
		},
		subscriber: subscriber.NewLocationSubscriber(opts.MQTT, locationSvc, notifySvc),
	}, nil
}

func newPublisher(opts Options) (publisher.NotificationPublisher, error) {
	switch opts.Transport {
	case "", "rabbitmq":
		if opts.AMQP == nil {
			return nil, fmt.Errorf("rabbitmq transport: no connection")
		}
		pub, err := rabbitmq.NewNotificationPublisher(opts.AMQP)
		if err != nil {
			return nil, fmt.Errorf("notification publisher: %w", err)
		}
		return pub, nil
	case "kafka":
		if opts.Kafka == nil {
			return nil, fmt.Errorf("kafka transport: no writer")
		}
		return kafka.NewNotificationPublisher(opts.Kafka), nil
	default:
		return nil, fmt.Errorf("unknown notification transport %q", opts.Transport)
	}
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	for _, h := range m.handlers {
		h.Register(r)
	}
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}

func (m *Module) StopSubscribers() error {
	return m.subscriber.Stop()
}
