package service

import (
	"fmt"
	"strings"

	"github.com/nandanugg/kitty-compass/module/core/domain"
	"github.com/nandanugg/kitty-compass/module/core/landmark"
)

type landmarkQuerier interface {
	QueryNearby(lat, lon, radiusKm float64) []domain.Place
}

// TieBreak picks one place out of a non-empty list of in-range candidates
// given in load order.
type TieBreak func(lat, lon float64, candidates []domain.Place) domain.Place

// FirstInOrder keeps the legacy behaviour: the first nearby place in load
// order wins, even when a later one is closer.
func FirstInOrder(_, _ float64, candidates []domain.Place) domain.Place {
	return candidates[0]
}

// Nearest picks the closest candidate. Equal distances fall back to load order.
func Nearest(lat, lon float64, candidates []domain.Place) domain.Place {
	best := candidates[0]
	bestDist := landmark.Distance(lat, lon, best.Lat, best.Lon)
	for _, p := range candidates[1:] {
		if d := landmark.Distance(lat, lon, p.Lat, p.Lon); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func ParseTieBreak(name string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "first":
		return FirstInOrder, nil
	case "nearest":
		return Nearest, nil
	default:
		return nil, fmt.Errorf("unknown tie-break %q", name)
	}
}

type ProximityOption func(*ProximityNotifier)

func WithRadius(km float64) ProximityOption {
	return func(n *ProximityNotifier) {
		n.radiusKm = km
	}
}

func WithTieBreak(tb TieBreak) ProximityOption {
	return func(n *ProximityNotifier) {
		if tb != nil {
			n.tieBreak = tb
		}
	}
}

// ProximityNotifier turns a coordinate into at most one landmark worth
// notifying about. It keeps no state between calls.
type ProximityNotifier struct {
	store    landmarkQuerier
	radiusKm float64
	tieBreak TieBreak
}

func NewProximityNotifier(store landmarkQuerier, opts ...ProximityOption) *ProximityNotifier {
	n := &ProximityNotifier{
		store:    store,
		radiusKm: landmark.MaxDistanceKm,
		tieBreak: FirstInOrder,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *ProximityNotifier) SelectLandmarkToNotify(lat, lon float64) (domain.Place, bool) {
	nearby := n.store.QueryNearby(lat, lon, n.radiusKm)
	if len(nearby) == 0 {
		return domain.Place{}, false
	}
	return n.tieBreak(lat, lon, nearby), true
}
