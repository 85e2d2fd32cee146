// Package landmark holds the immutable set of known landmarks and answers
// proximity queries against it.
package landmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

// Logf receives diagnostics produced while loading. log.Printf fits.
type Logf func(format string, args ...any)

type Option func(*loader)

func WithLogf(logf Logf) Option {
	return func(l *loader) {
		if logf != nil {
			l.logf = logf
		}
	}
}

// Source supplies the raw landmarks document.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
}

// Store is read-only once built, so a single instance can be shared by
// concurrent callers.
type Store struct {
	places []domain.Place
}

// Load parses a document shaped as {"landmarks": [{name, latitude, longitude}]}.
// It never fails: a malformed document yields an empty store and malformed
// entries are skipped.
func Load(data []byte, opts ...Option) *Store {
	return &Store{places: newLoader(opts).parse(data)}
}

// LoadFrom reads the document from src and loads it. Read failures yield an
// empty store.
func LoadFrom(ctx context.Context, src Source, opts ...Option) *Store {
	l := newLoader(opts)
	if src == nil {
		l.logf("no landmarks source configured")
		return &Store{}
	}
	data, err := src.Read(ctx)
	if err != nil {
		l.logf("could not read landmarks: %v", err)
		return &Store{}
	}
	return &Store{places: l.parse(data)}
}

// QueryNearby returns the places within radiusKm of the given point in load
// order. The result is never nil.
func (s *Store) QueryNearby(lat, lon, radiusKm float64) []domain.Place {
	nearby := make([]domain.Place, 0)
	for _, p := range s.places {
		// NaN distances never compare true, so non-finite input matches nothing
		if Distance(lat, lon, p.Lat, p.Lon) <= radiusKm {
			nearby = append(nearby, p)
		}
	}
	return nearby
}

func (s *Store) Places() []domain.Place {
	places := make([]domain.Place, len(s.places))
	copy(places, s.places)
	return places
}

func (s *Store) Len() int {
	return len(s.places)
}

type loader struct {
	logf Logf
}

func newLoader(opts []Option) *loader {
	l := &loader{logf: func(string, ...any) {}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *loader) parse(data []byte) []domain.Place {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		l.logf("could not parse landmarks document: %v", err)
		return nil
	}

	raw, ok := doc["landmarks"]
	if !ok {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		l.logf("landmarks is not an array: %v", err)
		return nil
	}

	places := make([]domain.Place, 0, len(items))
	for i, item := range items {
		p, err := parsePlace(item)
		if err != nil {
			l.logf("skipping landmark %d: %v", i, err)
			continue
		}
		places = append(places, p)
	}
	return places
}

func parsePlace(item json.RawMessage) (domain.Place, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return domain.Place{}, errors.New("not an object")
	}

	var name string
	if err := json.Unmarshal(fields["name"], &name); err != nil || name == "" {
		return domain.Place{}, errors.New("name: required")
	}

	lat, err := parseCoordinate(fields["latitude"])
	if err != nil {
		return domain.Place{}, fmt.Errorf("latitude: %w", err)
	}
	if lat < -90 || lat > 90 {
		return domain.Place{}, errors.New("latitude: must be between -90 and 90")
	}

	lon, err := parseCoordinate(fields["longitude"])
	if err != nil {
		return domain.Place{}, fmt.Errorf("longitude: %w", err)
	}
	if lon < -180 || lon > 180 {
		return domain.Place{}, errors.New("longitude: must be between -180 and 180")
	}

	return domain.Place{Name: name, Lat: lat, Lon: lon}, nil
}

// parseCoordinate accepts JSON numbers and strings holding a decimal number.
func parseCoordinate(raw json.RawMessage) (float64, error) {
	if raw == nil {
		return 0, errors.New("required")
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", t)
		}
		f = parsed
	default:
		return 0, errors.New("not a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not finite")
	}
	return f, nil
}
