package landmark

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

const lighthouseDoc = `{"landmarks":[{"name":"Lighthouse","latitude":47.6062,"longitude":-122.3321}]}`

type fakeSource struct {
	data []byte
	err  error
}

func (f *fakeSource) Read(_ context.Context) ([]byte, error) {
	return f.data, f.err
}

func names(places []domain.Place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.Name
	}
	return out
}

func TestLoad_Valid(t *testing.T) {
	store := Load([]byte(`{"landmarks":[
		{"name":"Space Needle","latitude":47.6205,"longitude":-122.3493},
		{"name":"Golden Gate Bridge","latitude":37.8199,"longitude":-122.4783,"extra":true}
	],"version":2}`))

	if store.Len() != 2 {
		t.Fatalf("expected 2 landmarks, got %d", store.Len())
	}
	places := store.Places()
	if places[0].Name != "Space Needle" || places[1].Name != "Golden Gate Bridge" {
		t.Errorf("unexpected order: %v", names(places))
	}
	if places[1].Lat != 37.8199 || places[1].Lon != -122.4783 {
		t.Errorf("unexpected coordinates: %+v", places[1])
	}
}

func TestLoad_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty input", ``},
		{"malformed json", `{"landmarks": [`},
		{"not json", `meow`},
		{"null document", `null`},
		{"top level array", `[{"name":"A","latitude":1,"longitude":1}]`},
		{"missing landmarks", `{"places":[]}`},
		{"empty landmarks", `{"landmarks":[]}`},
		{"null landmarks", `{"landmarks":null}`},
		{"landmarks is object", `{"landmarks":{"name":"A","latitude":1,"longitude":1}}`},
		{"landmarks is string", `{"landmarks":"A"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := Load([]byte(tt.doc))
			if store == nil {
				t.Fatal("expected a store")
			}
			if store.Len() != 0 {
				t.Errorf("expected 0 landmarks, got %d", store.Len())
			}
			if got := store.QueryNearby(47.6, -122.33, MaxDistanceKm); len(got) != 0 {
				t.Errorf("expected no matches, got %v", names(got))
			}
		})
	}
}

func TestLoad_DropsInvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"missing name", `{"latitude":1,"longitude":1}`},
		{"empty name", `{"name":"","latitude":1,"longitude":1}`},
		{"null name", `{"name":null,"latitude":1,"longitude":1}`},
		{"numeric name", `{"name":5,"latitude":1,"longitude":1}`},
		{"missing latitude", `{"name":"B","longitude":1}`},
		{"missing longitude", `{"name":"B","latitude":1}`},
		{"null latitude", `{"name":"B","latitude":null,"longitude":1}`},
		{"text latitude", `{"name":"B","latitude":"north","longitude":1}`},
		{"boolean longitude", `{"name":"B","latitude":1,"longitude":true}`},
		{"NaN string latitude", `{"name":"B","latitude":"NaN","longitude":1}`},
		{"latitude out of range", `{"name":"B","latitude":90.5,"longitude":1}`},
		{"longitude out of range", `{"name":"B","latitude":1,"longitude":-181}`},
		{"wrong key case", `{"Name":"B","Latitude":1,"Longitude":1}`},
		{"not an object", `"B"`},
		{"null entry", `null`},
		{"array entry", `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fmt.Sprintf(`{"landmarks":[{"name":"A","latitude":10,"longitude":20},%s]}`, tt.entry)
			store := Load([]byte(doc))
			if store.Len() != 1 {
				t.Fatalf("expected exactly the valid entry, got %v", names(store.Places()))
			}
			if store.Places()[0].Name != "A" {
				t.Errorf("expected A, got %s", store.Places()[0].Name)
			}
		})
	}
}

func TestLoad_AcceptsNumericStrings(t *testing.T) {
	store := Load([]byte(`{"landmarks":[{"name":"Pike Place","latitude":"47.6097","longitude":" -122.3422 "}]}`))
	if store.Len() != 1 {
		t.Fatalf("expected 1 landmark, got %d", store.Len())
	}
	p := store.Places()[0]
	if p.Lat != 47.6097 || p.Lon != -122.3422 {
		t.Errorf("unexpected coordinates: %+v", p)
	}
}

func TestLoad_KeepsDuplicateCoordinates(t *testing.T) {
	store := Load([]byte(`{"landmarks":[
		{"name":"A","latitude":1,"longitude":1},
		{"name":"B","latitude":1,"longitude":1},
		{"name":"A","latitude":1,"longitude":1}
	]}`))
	if store.Len() != 3 {
		t.Errorf("expected 3 landmarks, got %d", store.Len())
	}
}

func TestLoad_ReportsToLogf(t *testing.T) {
	var logged []string
	logf := func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	Load([]byte(`{"landmarks":[{"name":"A","latitude":1,"longitude":1},{"latitude":1}]}`), WithLogf(logf))
	if len(logged) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", logged)
	}

	logged = nil
	Load([]byte(`{`), WithLogf(logf))
	if len(logged) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", logged)
	}
}

func TestLoad_NilLogf(t *testing.T) {
	store := Load([]byte(`{"landmarks":[{"latitude":1}]}`), WithLogf(nil))
	if store.Len() != 0 {
		t.Errorf("expected 0 landmarks, got %d", store.Len())
	}
}

func TestLoadFrom(t *testing.T) {
	store := LoadFrom(context.Background(), &fakeSource{data: []byte(lighthouseDoc)})
	if store.Len() != 1 {
		t.Fatalf("expected 1 landmark, got %d", store.Len())
	}
}

func TestLoadFrom_SourceError(t *testing.T) {
	var logged int
	logf := func(string, ...any) { logged++ }

	store := LoadFrom(context.Background(), &fakeSource{err: errors.New("connection refused")}, WithLogf(logf))
	if store.Len() != 0 {
		t.Errorf("expected 0 landmarks, got %d", store.Len())
	}
	if logged != 1 {
		t.Errorf("expected the error to be reported once, got %d", logged)
	}
}

func TestLoadFrom_NilSource(t *testing.T) {
	store := LoadFrom(context.Background(), nil)
	if store.Len() != 0 {
		t.Errorf("expected 0 landmarks, got %d", store.Len())
	}
}

func TestQueryNearby_Lighthouse(t *testing.T) {
	store := Load([]byte(lighthouseDoc))

	got := store.QueryNearby(47.6, -122.33, 100)
	if len(got) != 1 || got[0].Name != "Lighthouse" {
		t.Errorf("expected [Lighthouse], got %v", names(got))
	}

	got = store.QueryNearby(0, 0, 100)
	if got == nil {
		t.Fatal("expected an empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected [], got %v", names(got))
	}
}

func TestQueryNearby_KeepsLoadOrder(t *testing.T) {
	// C is the closest to the query point but was loaded last
	store := Load([]byte(`{"landmarks":[
		{"name":"A","latitude":47.9,"longitude":-122.3},
		{"name":"Far","latitude":10,"longitude":10},
		{"name":"B","latitude":47.3,"longitude":-122.3},
		{"name":"C","latitude":47.61,"longitude":-122.33}
	]}`))

	got := names(store.QueryNearby(47.6062, -122.3321, 100))
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestQueryNearby_RadiusPartition(t *testing.T) {
	store := Load([]byte(`{"landmarks":[
		{"name":"Seattle","latitude":47.6062,"longitude":-122.3321},
		{"name":"Tacoma","latitude":47.2529,"longitude":-122.4443},
		{"name":"Portland","latitude":45.5152,"longitude":-122.6784},
		{"name":"Vancouver","latitude":49.2827,"longitude":-123.1207},
		{"name":"Honolulu","latitude":21.3069,"longitude":-157.8583}
	]}`))

	queries := [][2]float64{{47.6, -122.33}, {46.5, -122.5}, {0, 0}, {49, -123}}
	radii := []float64{0, 10, 50, 100, 250, 5000}

	for _, q := range queries {
		for _, r := range radii {
			got := store.QueryNearby(q[0], q[1], r)
			included := make(map[string]bool, len(got))
			for _, p := range got {
				if d := Distance(q[0], q[1], p.Lat, p.Lon); d > r {
					t.Errorf("query %v radius %f returned %s at %f km", q, r, p.Name, d)
				}
				included[p.Name] = true
			}
			for _, p := range store.Places() {
				if included[p.Name] {
					continue
				}
				if d := Distance(q[0], q[1], p.Lat, p.Lon); d <= r {
					t.Errorf("query %v radius %f excluded %s at %f km", q, r, p.Name, d)
				}
			}
		}
	}
}

func TestQueryNearby_IncludesOwnPoint(t *testing.T) {
	store := Load([]byte(`{"landmarks":[
		{"name":"North Pole","latitude":90,"longitude":0},
		{"name":"Date Line","latitude":0,"longitude":180},
		{"name":"Jakarta","latitude":-6.2088,"longitude":106.8456}
	]}`))

	for _, p := range store.Places() {
		got := store.QueryNearby(p.Lat, p.Lon, 0)
		found := false
		for _, g := range got {
			if g.Name == p.Name {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s to be within radius 0 of itself", p.Name)
		}
	}
}

func TestQueryNearby_NonFiniteInput(t *testing.T) {
	store := Load([]byte(lighthouseDoc))

	inputs := [][3]float64{
		{math.NaN(), -122.33, 100},
		{47.6, math.NaN(), 100},
		{47.6, -122.33, math.NaN()},
		{math.Inf(1), -122.33, 100},
		{47.6, -122.33, -1},
	}
	for _, in := range inputs {
		if got := store.QueryNearby(in[0], in[1], in[2]); len(got) != 0 {
			t.Errorf("expected no match for %v, got %v", in, names(got))
		}
	}
}

func TestQueryNearby_DoesNotMutateStore(t *testing.T) {
	store := Load([]byte(lighthouseDoc))

	got := store.QueryNearby(47.6, -122.33, 100)
	got[0].Name = "changed"

	places := store.Places()
	places[0].Lat = 0

	again := store.QueryNearby(47.6, -122.33, 100)
	if len(again) != 1 || again[0].Name != "Lighthouse" {
		t.Errorf("store was mutated: %v", names(again))
	}
}

func TestQueryNearby_Concurrent(t *testing.T) {
	store := Load([]byte(lighthouseDoc))

	var wg sync.WaitGroup
	errs := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := store.QueryNearby(47.6, -122.33, 100); len(got) != 1 {
				errs <- fmt.Sprintf("expected 1 match, got %d", len(got))
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}
