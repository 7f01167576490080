package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeocodeParsesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("postalcode"); got != "78701" {
			t.Errorf("postalcode = %q, want 78701", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"30.2672","lon":"-97.7431","display_name":"Austin, TX"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL)
	lat, lon, err := g.Geocode(context.Background(), "78701", "", "")
	if err != nil {
		t.Fatalf("Geocode returned error: %v", err)
	}
	if lat != 30.2672 || lon != -97.7431 {
		t.Errorf("got (%f, %f), want (30.2672, -97.7431)", lat, lon)
	}
}

func TestGeocodeCityStateFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("city"); got != "Austin" {
			t.Errorf("city = %q, want Austin", got)
		}
		if got := r.URL.Query().Get("state"); got != "TX" {
			t.Errorf("state = %q, want TX", got)
		}
		w.Write([]byte(`[{"lat":"30.2672","lon":"-97.7431"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL)
	if _, _, err := g.Geocode(context.Background(), "", "Austin", "TX"); err != nil {
		t.Fatalf("Geocode returned error: %v", err)
	}
}

func TestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL)
	if _, _, err := g.Geocode(context.Background(), "00000", "", ""); err == nil {
		t.Fatal("expected error for empty result set")
	}
}
