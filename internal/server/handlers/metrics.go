package handlers

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skycast-app/skycast/internal/server/middlewares"
)

// AppMetrics counts pipeline-level events: fetch outcomes and stale
// results discarded by the view-state sequence guard.
type AppMetrics struct {
	mutex          sync.RWMutex
	fetchesTotal   int64
	fetchErrors    int64
	staleDiscarded int64
}

type MetricsHandler struct {
	logger      *zap.Logger
	httpMetrics *middlewares.HTTPMetrics
	appMetrics  *AppMetrics
}

func NewMetricsHandler(httpMetrics *middlewares.HTTPMetrics, logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{
		logger:      logger,
		httpMetrics: httpMetrics,
		appMetrics:  &AppMetrics{},
	}
}

func (h *MetricsHandler) RecordFetch(success bool) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.fetchesTotal++
	if !success {
		h.appMetrics.fetchErrors++
	}
	h.appMetrics.mutex.Unlock()
}

func (h *MetricsHandler) RecordStaleDiscard() {
	h.appMetrics.mutex.Lock()
	h.appMetrics.staleDiscarded++
	h.appMetrics.mutex.Unlock()
}

// ServeMetrics exposes the counters in Prometheus text format.
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	response := ""

	if h.httpMetrics != nil {
		totals, avgDuration, active := h.httpMetrics.Snapshot()

		response += "# HELP http_requests_total Total number of HTTP requests\n"
		response += "# TYPE http_requests_total counter\n"
		for key, count := range totals {
			response += "http_requests_total{route_status=\"" + key + "\"} " + strconv.FormatInt(count, 10) + "\n"
		}

		response += "\n# HELP http_request_duration_seconds_avg Average duration of HTTP requests\n"
		response += "# TYPE http_request_duration_seconds_avg gauge\n"
		response += "http_request_duration_seconds_avg " + strconv.FormatFloat(avgDuration, 'f', 6, 64) + "\n"

		response += "\n# HELP http_active_requests Number of active HTTP requests\n"
		response += "# TYPE http_active_requests gauge\n"
		response += "http_active_requests " + strconv.FormatInt(active, 10) + "\n"
	}

	h.appMetrics.mutex.RLock()
	response += "\n# HELP weather_fetches_total Total weather fetch attempts\n"
	response += "# TYPE weather_fetches_total counter\n"
	response += "weather_fetches_total " + strconv.FormatInt(h.appMetrics.fetchesTotal, 10) + "\n"

	response += "\n# HELP weather_fetch_errors_total Total failed weather fetches\n"
	response += "# TYPE weather_fetch_errors_total counter\n"
	response += "weather_fetch_errors_total " + strconv.FormatInt(h.appMetrics.fetchErrors, 10) + "\n"

	response += "\n# HELP weather_stale_results_discarded_total Stale fetch results discarded by the sequence guard\n"
	response += "# TYPE weather_stale_results_discarded_total counter\n"
	response += "weather_stale_results_discarded_total " + strconv.FormatInt(h.appMetrics.staleDiscarded, 10) + "\n"
	h.appMetrics.mutex.RUnlock()

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(200, response)
}
