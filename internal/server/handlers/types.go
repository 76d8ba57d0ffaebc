package handlers

import (
	"github.com/skycast-app/skycast/internal/weather"
)

// WeatherQuery selects the location to fetch. city wins over lat/lon;
// with neither, the caller's own location is resolved.
type WeatherQuery struct {
	City  string   `form:"city" json:"city"`
	Lat   *float64 `form:"lat" json:"lat" validate:"omitempty,latitude"`
	Lon   *float64 `form:"lon" json:"lon" validate:"omitempty,longitude"`
	Units string   `form:"units" json:"units" validate:"omitempty,oneof=metric imperial"`
}

// SnapshotPayload is the snapshot plus presentation hints the viewer
// consumes directly.
type SnapshotPayload struct {
	weather.Snapshot
	Icon       string `json:"icon"`
	IsFavorite bool   `json:"is_favorite"`
}

type ForecastPayload struct {
	weather.ForecastSample
	Icon string `json:"icon"`
}

type WeatherResponse struct {
	Snapshot SnapshotPayload   `json:"snapshot"`
	Forecast []ForecastPayload `json:"forecast"`
	Units    weather.Units     `json:"units"`
}

type FavoritesResponse struct {
	Cities []string `json:"cities"`
}

type ToggleResponse struct {
	City     string   `json:"city"`
	Favorite bool     `json:"favorite"`
	Cities   []string `json:"cities"`
}

type LastLocationResponse struct {
	Location *weather.Coordinate `json:"location"`
}

type ThemeResponse struct {
	Resolved string `json:"resolved"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp,omitempty"`
}
