package geocode

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

const nominatimFixture = `[{"lat":"40.7484", "lon":"-73.9857", "display_name":"Empire State Building, New York"}]`

func TestGeocodeSuccess(t *testing.T) {
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(nominatimFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	location, err := client.Geocode(context.Background(), "Empire State Building")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if location == nil {
		t.Fatal("Geocode returned nil location for a matched address")
	}

	if gotQuery != "Empire State Building" {
		t.Errorf("query sent = %q", gotQuery)
	}
	if gotAgent == "" {
		t.Error("no User-Agent header sent")
	}
	if math.Abs(location.Latitude-40.7484) > 1e-9 || math.Abs(location.Longitude+73.9857) > 1e-9 {
		t.Errorf("location = (%v, %v)", location.Latitude, location.Longitude)
	}
	if location.DisplayName != "Empire State Building, New York" {
		t.Errorf("display name = %q", location.DisplayName)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	location, err := NewClient(server.URL).Geocode(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if location != nil {
		t.Errorf("expected nil location for unmatched address, got %+v", location)
	}
}

func TestGeocodeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Geocode(context.Background(), "anything")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestGeocodeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := NewClient(server.URL).Geocode(context.Background(), "anything")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
