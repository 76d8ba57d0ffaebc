package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/skycast-app/skycast/internal/lastloc"
	"github.com/skycast-app/skycast/internal/location"
	"github.com/skycast-app/skycast/internal/openweather"
	"github.com/skycast-app/skycast/internal/weather"
	"github.com/skycast-app/skycast/pkg/telemetry"
)

// ErrCityNotFound reports that geocoding returned no match for the
// searched name.
var ErrCityNotFound = errors.New("city not found")

// Result is the joint outcome of one fetch cycle: the rebuilt snapshot
// and the daily forecast derived from the raw feed.
type Result struct {
	Snapshot weather.Snapshot
	Forecast []weather.ForecastSample
}

// Pipeline resolves a location into coordinates, fetches current
// conditions and the forecast concurrently, and persists the resolved
// coordinate for the map view. Each invocation is stateless given its
// inputs; callers own the visible loading/error/ready phases.
type Pipeline struct {
	weather *openweather.Client
	locator location.Provider
	lastLoc *lastloc.Cache
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

func New(owm *openweather.Client, locator location.Provider, lastLoc *lastloc.Cache, logger *zap.Logger, tele *telemetry.Telemetry) *Pipeline {
	return &Pipeline{
		weather: owm,
		locator: locator,
		lastLoc: lastLoc,
		logger:  logger,
		tele:    tele,
	}
}

// ResolveByDevice resolves the caller's own location and runs the
// fetch stage. A denied permission fails before any network request.
func (p *Pipeline) ResolveByDevice(ctx context.Context, units weather.Units) (*Result, error) {
	tracer := p.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "pipeline.ResolveByDevice")
	defer span.End()

	coord, err := p.locator.Current(ctx)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	return p.Fetch(ctx, coord, units)
}

// ResolveByCity geocodes the name and runs the fetch stage on the
// first match. An empty or whitespace-only name is a silent no-op and
// returns (nil, nil). Ambiguous names are not disambiguated; the
// provider is asked for a single match and that match wins.
func (p *Pipeline) ResolveByCity(ctx context.Context, name string, units weather.Units) (*Result, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	tracer := p.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "pipeline.ResolveByCity")
	defer span.End()

	span.SetAttributes(attribute.String("city", name))

	matches, err := p.weather.Geocode(ctx, name)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	if len(matches) == 0 {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, ErrCityNotFound
	}

	coord := weather.Coordinate{
		Latitude:  matches[0].Lat,
		Longitude: matches[0].Lon,
	}

	return p.Fetch(ctx, coord, units)
}

// Fetch issues the current-conditions and forecast requests
// concurrently and joins them before producing anything, so callers
// never observe one half updated. On success the resolved coordinate
// is persisted as the last known location; a failed write is logged
// and does not fail the fetch.
func (p *Pipeline) Fetch(ctx context.Context, coord weather.Coordinate, units weather.Units) (*Result, error) {
	tracer := p.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "pipeline.Fetch")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("lat", coord.Latitude),
		attribute.Float64("lon", coord.Longitude),
		attribute.String("units", string(units)),
	)

	var (
		wg       sync.WaitGroup
		current  *openweather.CurrentResponse
		forecast *openweather.ForecastResponse
		curErr   error
		fcErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, curErr = p.weather.CurrentConditions(ctx, coord, units)
	}()
	go func() {
		defer wg.Done()
		forecast, fcErr = p.weather.Forecast(ctx, coord, units)
	}()
	wg.Wait()

	if curErr != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, curErr
	}
	if fcErr != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, fcErr
	}

	result := &Result{
		Snapshot: buildSnapshot(current),
		Forecast: DailySamples(forecast.List),
	}

	if err := p.lastLoc.Save(ctx, result.Snapshot.Coordinate); err != nil {
		p.logger.Error("Last location write failed, map view keeps previous coordinate",
			zap.Error(err),
			zap.Float64("lat", result.Snapshot.Coordinate.Latitude),
			zap.Float64("lon", result.Snapshot.Coordinate.Longitude))
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("forecast_days", len(result.Forecast)),
	)

	p.logger.Info("Weather fetch completed",
		zap.String("city", result.Snapshot.CityName),
		zap.String("units", string(units)),
		zap.Int("forecast_days", len(result.Forecast)))

	return result, nil
}

// buildSnapshot maps the provider payload into the snapshot record.
// The coordinate comes from the provider's response, which snaps to
// the station it actually answered for.
func buildSnapshot(current *openweather.CurrentResponse) weather.Snapshot {
	snapshot := weather.Snapshot{
		CityName: current.Name,
		Coordinate: weather.Coordinate{
			Latitude:  current.Coord.Lat,
			Longitude: current.Coord.Lon,
		},
		Temperature: current.Main.Temp,
		FeelsLike:   current.Main.FeelsLike,
		Humidity:    current.Main.Humidity,
		WindSpeed:   current.Wind.Speed,
		Pressure:    current.Main.Pressure,
		Condition:   weather.ConditionOther,
		ObservedAt:  current.Dt,
	}

	if len(current.Weather) > 0 {
		snapshot.Condition = weather.ConditionFromMain(current.Weather[0].Main)
		snapshot.Description = current.Weather[0].Description
	}

	return snapshot
}
