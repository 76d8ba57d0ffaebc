package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/skycast-app/skycast/internal/config"
	"github.com/skycast-app/skycast/internal/weather"
)

// ErrPermissionDenied reports that location access is not granted.
// It is terminal for the current request; callers show a message and
// wait for a manual retry instead of retrying themselves.
var ErrPermissionDenied = errors.New("location permission denied")

// Provider yields the caller's current coordinate.
type Provider interface {
	Current(ctx context.Context) (weather.Coordinate, error)
}

// HTTPProvider resolves the coordinate through an IP-geolocation
// endpoint, gated by the configured permission grant. When permission
// is denied no request is issued.
type HTTPProvider struct {
	allow   bool
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(cfg config.LocationConfig) *HTTPProvider {
	return &HTTPProvider{
		allow:   cfg.Allow,
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

func (p *HTTPProvider) Current(ctx context.Context) (weather.Coordinate, error) {
	if !p.allow {
		return weather.Coordinate{}, ErrPermissionDenied
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return weather.Coordinate{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return weather.Coordinate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return weather.Coordinate{}, fmt.Errorf("location lookup failed with status: %d", resp.StatusCode)
	}

	var payload struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Coordinate{}, err
	}

	if payload.Status != "" && payload.Status != "success" {
		return weather.Coordinate{}, fmt.Errorf("location lookup failed: %s", payload.Status)
	}

	return weather.Coordinate{Latitude: payload.Lat, Longitude: payload.Lon}, nil
}

// Static always reports a fixed coordinate. Useful for single-site
// deployments and tests.
type Static struct {
	Coord weather.Coordinate
}

func (s Static) Current(ctx context.Context) (weather.Coordinate, error) {
	return s.Coord, nil
}
