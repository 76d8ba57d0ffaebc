package openweather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skycast-app/skycast/internal/config"
	"github.com/skycast-app/skycast/internal/weather"
)

func newClient(serverURL string) *Client {
	return NewClient(config.WeatherConfig{
		BaseURL: serverURL + "/data",
		GeoURL:  serverURL + "/geo",
		APIKey:  "test-key",
		Lang:    "es",
		Timeout: 5,
	})
}

func TestGeocodeRequestsSingleMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geo/direct" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Madrid" || q.Get("limit") != "1" || q.Get("appid") != "test-key" {
			t.Errorf("Unexpected query: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `[{"name":"Madrid","lat":40.4168,"lon":-3.7038}]`)
	}))
	defer server.Close()

	results, err := newClient(server.URL).Geocode(context.Background(), "Madrid")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
	if len(results) != 1 || results[0].Lat != 40.4168 {
		t.Errorf("Unexpected results: %+v", results)
	}
}

func TestCurrentConditionsSendsUnitsAndLang(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("units") != "imperial" {
			t.Errorf("Expected imperial units, got %q", q.Get("units"))
		}
		if q.Get("lang") != "es" {
			t.Errorf("Expected lang es, got %q", q.Get("lang"))
		}
		if q.Get("lat") == "" || q.Get("lon") == "" {
			t.Errorf("Expected coordinates, got %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"name":"Madrid","main":{"temp":59.4}}`)
	}))
	defer server.Close()

	got, err := newClient(server.URL).CurrentConditions(context.Background(),
		weather.Coordinate{Latitude: 40.4168, Longitude: -3.7038}, weather.UnitsImperial)
	if err != nil {
		t.Fatalf("CurrentConditions failed: %v", err)
	}
	if got.Main.Temp != 59.4 {
		t.Errorf("Expected 59.4, got %v", got.Main.Temp)
	}
}

func TestNonSuccessCarriesProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"cod":401,"message":"Invalid API key"}`)
	}))
	defer server.Close()

	_, err := newClient(server.URL).CurrentConditions(context.Background(), weather.Coordinate{}, weather.UnitsMetric)

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", upstream.StatusCode)
	}
	if upstream.Message != "Invalid API key" {
		t.Errorf("Expected provider message, got %q", upstream.Message)
	}
}

func TestNonSuccessWithoutBodyGetsGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newClient(server.URL).Forecast(context.Background(), weather.Coordinate{}, weather.UnitsMetric)

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("Expected UpstreamError, got %v", err)
	}
	if upstream.Error() != "weather provider returned 502" {
		t.Errorf("Unexpected error text: %q", upstream.Error())
	}
}
