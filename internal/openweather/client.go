package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/skycast-app/skycast/internal/config"
	"github.com/skycast-app/skycast/internal/weather"
)

// UpstreamError reports a non-success response from the provider,
// carrying its own message when one was present.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("weather provider returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("weather provider returned %d", e.StatusCode)
}

// Client talks to the OpenWeatherMap geocoding, current-conditions and
// forecast endpoints. An empty API key is sent as-is; the provider
// rejects it and the rejection surfaces as an UpstreamError.
type Client struct {
	baseURL string
	geoURL  string
	apiKey  string
	lang    string
	client  *http.Client
}

func NewClient(cfg config.WeatherConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		geoURL:  cfg.GeoURL,
		apiKey:  cfg.APIKey,
		lang:    cfg.Lang,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Geocode resolves a city name to candidate coordinates. The request
// asks for a single match, so callers always take the first result.
// An empty slice means the city was not found.
func (c *Client) Geocode(ctx context.Context, name string) ([]GeoResult, error) {
	u, err := url.Parse(fmt.Sprintf("%s/direct", c.geoURL))
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("q", name)
	q.Set("limit", "1")
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	var results []GeoResult
	if err := c.getJSON(ctx, u.String(), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// CurrentConditions fetches the current weather for a coordinate.
func (c *Client) CurrentConditions(ctx context.Context, coord weather.Coordinate, units weather.Units) (*CurrentResponse, error) {
	u, err := c.dataURL("weather", coord, units)
	if err != nil {
		return nil, err
	}

	var result CurrentResponse
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Forecast fetches the raw 3-hourly forecast feed for a coordinate.
func (c *Client) Forecast(ctx context.Context, coord weather.Coordinate, units weather.Units) (*ForecastResponse, error) {
	u, err := c.dataURL("forecast", coord, units)
	if err != nil {
		return nil, err
	}

	var result ForecastResponse
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) dataURL(endpoint string, coord weather.Coordinate, units weather.Units) (string, error) {
	u, err := url.Parse(fmt.Sprintf("%s/%s", c.baseURL, endpoint))
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("lat", fmt.Sprintf("%.6f", coord.Latitude))
	q.Set("lon", fmt.Sprintf("%.6f", coord.Longitude))
	q.Set("appid", c.apiKey)
	q.Set("units", string(units))
	q.Set("lang", c.lang)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body errorBody
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    body.Message,
		}
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
