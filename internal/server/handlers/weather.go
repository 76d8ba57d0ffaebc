package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skycast-app/skycast/internal/favorites"
	"github.com/skycast-app/skycast/internal/location"
	"github.com/skycast-app/skycast/internal/openweather"
	"github.com/skycast-app/skycast/internal/pipeline"
	"github.com/skycast-app/skycast/internal/server/utils"
	"github.com/skycast-app/skycast/internal/viewstate"
	"github.com/skycast-app/skycast/internal/weather"
)

type WeatherHandler struct {
	pipeline *pipeline.Pipeline
	view     *viewstate.Container
	favs     *favorites.Adapter
	metrics  *MetricsHandler
	logger   *zap.Logger
}

func NewWeatherHandler(p *pipeline.Pipeline, view *viewstate.Container, favs *favorites.Adapter, metrics *MetricsHandler, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		pipeline: p,
		view:     view,
		favs:     favs,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetWeather runs the full pipeline for the requested location and
// returns the fresh snapshot plus daily forecast. The view state
// transitions to loading for the duration and a stale completion
// (older than the latest issued fetch) is discarded rather than
// applied.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var query WeatherQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	if validationErrs := utils.ValidateStruct(query); validationErrs != nil {
		reqLogger.Warn("Request validation failed", zap.Any("errors", validationErrs))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: validationErrs[0].Message,
		})
		return
	}

	units := weather.Units(query.Units)
	if query.Units == "" {
		units = weather.DefaultUnits
	}

	hasCity := c.Request.URL.Query().Has("city")

	// A blank search is a silent no-op: no fetch starts and the view
	// keeps whatever it was showing.
	if hasCity && strings.TrimSpace(query.City) == "" {
		c.JSON(http.StatusOK, h.view.State())
		return
	}

	seq := h.view.Begin(units)

	var result *pipeline.Result
	var err error

	switch {
	case hasCity:
		reqLogger.Info("Resolving weather by city", zap.String("city", query.City), zap.String("units", string(units)))
		result, err = h.pipeline.ResolveByCity(ctx, query.City, units)
	case query.Lat != nil && query.Lon != nil:
		reqLogger.Info("Fetching weather by coordinate",
			zap.Float64("lat", *query.Lat),
			zap.Float64("lon", *query.Lon),
			zap.String("units", string(units)))
		result, err = h.pipeline.Fetch(ctx, weather.Coordinate{Latitude: *query.Lat, Longitude: *query.Lon}, units)
	default:
		reqLogger.Info("Resolving weather by device location", zap.String("units", string(units)))
		result, err = h.pipeline.ResolveByDevice(ctx, units)
	}

	if err != nil {
		h.view.Fail(seq, err.Error())
		h.metrics.RecordFetch(false)
		status, code := classifyError(err)
		reqLogger.Warn("Weather fetch failed", zap.Error(err), zap.String("code", code))
		c.JSON(status, ErrorResponse{
			Error: err.Error(),
			Code:  code,
		})
		return
	}

	applied := h.view.Complete(seq, &result.Snapshot, result.Forecast)
	if !applied {
		// A newer fetch finished first; this result is stale and must
		// not be shown.
		h.metrics.RecordStaleDiscard()
		reqLogger.Info("Discarding stale fetch result", zap.Uint64("seq", seq))
	}
	h.metrics.RecordFetch(true)

	c.JSON(http.StatusOK, h.buildResponse(result, units))
}

// GetState exposes the view state machine: loading, error with a
// reason, or ready with the last applied snapshot and forecast.
func (h *WeatherHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.State())
}

func (h *WeatherHandler) buildResponse(result *pipeline.Result, units weather.Units) WeatherResponse {
	response := WeatherResponse{
		Snapshot: SnapshotPayload{
			Snapshot:   result.Snapshot,
			Icon:       result.Snapshot.Condition.Icon(),
			IsFavorite: h.favs.IsFavorite(result.Snapshot.CityName),
		},
		Forecast: make([]ForecastPayload, 0, len(result.Forecast)),
		Units:    units,
	}

	for _, sample := range result.Forecast {
		response.Forecast = append(response.Forecast, ForecastPayload{
			ForecastSample: sample,
			Icon:           sample.Condition.Icon(),
		})
	}

	return response
}

func classifyError(err error) (int, string) {
	var upstream *openweather.UpstreamError

	switch {
	case errors.Is(err, location.ErrPermissionDenied):
		return http.StatusForbidden, "PERMISSION_DENIED"
	case errors.Is(err, pipeline.ErrCityNotFound):
		return http.StatusNotFound, "CITY_NOT_FOUND"
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "UPSTREAM_ERROR"
	default:
		return http.StatusBadGateway, "UPSTREAM_ERROR"
	}
}
