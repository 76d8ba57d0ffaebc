package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skycast-app/skycast/internal/config"
	"github.com/skycast-app/skycast/internal/favorites"
	"github.com/skycast-app/skycast/internal/lastloc"
	"github.com/skycast-app/skycast/internal/location"
	"github.com/skycast-app/skycast/internal/openweather"
	"github.com/skycast-app/skycast/internal/pipeline"
	"github.com/skycast-app/skycast/internal/server/handlers"
	"github.com/skycast-app/skycast/internal/server/middlewares"
	"github.com/skycast-app/skycast/internal/store"
	"github.com/skycast-app/skycast/internal/tiles"
	"github.com/skycast-app/skycast/internal/viewstate"
	"github.com/skycast-app/skycast/pkg/telemetry"
)

type Server struct {
	engine *gin.Engine
	server *http.Server
	kv     store.Store
	logger *zap.Logger
	tele   *telemetry.Telemetry
}

// NewServer assembles the store, the weather pipeline and the HTTP
// surface around them.
func NewServer(logger *zap.Logger, tele *telemetry.Telemetry) (*Server, error) {
	cfg := config.GetConfig()

	kv, err := store.New(cfg.Store)
	if err != nil {
		return nil, err
	}
	logger.Info("Key-value store ready", zap.String("backend", cfg.Store.Backend))

	owm := openweather.NewClient(cfg.Weather)
	locator := location.NewHTTPProvider(cfg.Location)
	lastLocation := lastloc.New(kv, logger)
	favs := favorites.New(kv, logger)
	pipe := pipeline.New(owm, locator, lastLocation, logger, tele)
	view := viewstate.NewContainer()
	tileProxy := tiles.NewProxy(cfg.Weather)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	metricsMW := middlewares.NewMetricsMiddleware()

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))
	engine.Use(metricsMW.Handler())

	s := &Server{
		engine: engine,
		kv:     kv,
		logger: logger,
		tele:   tele,
	}

	metricsHandler := handlers.NewMetricsHandler(metricsMW.GetHTTPMetrics(), logger)
	weatherHandler := handlers.NewWeatherHandler(pipe, view, favs, metricsHandler, logger)
	favoritesHandler := handlers.NewFavoritesHandler(favs, logger)
	mapsHandler := handlers.NewMapsHandler(lastLocation, tileProxy, logger)
	themeHandler := handlers.NewThemeHandler()
	healthHandler := handlers.NewHealthHandler(logger)

	api := engine.Group("/api/v1")
	{
		api.GET("/weather", weatherHandler.GetWeather)
		api.GET("/state", weatherHandler.GetState)

		api.GET("/favorites", favoritesHandler.List)
		api.POST("/favorites/:city/toggle", favoritesHandler.Toggle)
		api.DELETE("/favorites/:city", favoritesHandler.Remove)

		api.GET("/location/last", mapsHandler.LastLocation)
		api.GET("/map/clouds/:z/:x/:y", mapsHandler.CloudTile)

		api.GET("/theme", themeHandler.Resolve)
	}

	// Health endpoints (Kubernetes friendly)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/health/live", healthHandler.Liveness)
	engine.GET("/health/ready", healthHandler.Readiness)

	// Monitoring endpoints
	engine.GET("/metrics", metricsHandler.ServeMetrics)

	return s, nil
}

func (s *Server) Start() error {
	cfg := config.GetConfig()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}
	return s.kv.Close()
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
