package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the notification pipeline collectors.
type Recorder struct {
	Notifications   *prometheus.CounterVec
	LandmarksLoaded prometheus.Gauge
}

// NewRecorder registers the collectors against reg, defaulting to the global
// registry when nil. Collectors already registered under the same name are reused.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "landmark_notifications_total",
		Help: "Location updates handled, labeled by notification outcome.",
	}, []string{"outcome"})
	if err := reg.Register(notifications); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("register landmark_notifications_total: %w", err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("landmark_notifications_total registered with unexpected type %T", are.ExistingCollector)
		}
		notifications = existing
	}

	loaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "landmarks_loaded",
		Help: "Number of landmarks held by the proximity store.",
	})
	if err := reg.Register(loaded); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("register landmarks_loaded: %w", err)
		}
		existing, ok := are.ExistingCollector.(prometheus.Gauge)
		if !ok {
			return nil, fmt.Errorf("landmarks_loaded registered with unexpected type %T", are.ExistingCollector)
		}
		loaded = existing
	}

	return &Recorder{Notifications: notifications, LandmarksLoaded: loaded}, nil
}

func (r *Recorder) RecordOutcome(outcome string) {
	r.Notifications.WithLabelValues(outcome).Inc()
}

func (r *Recorder) SetLandmarks(n int) {
	r.LandmarksLoaded.Set(float64(n))
}
