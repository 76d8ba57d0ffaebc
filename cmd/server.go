package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skycast-app/skycast/internal/config"
	"github.com/skycast-app/skycast/internal/server"
)

var (
	configPath string
	serverCmd  = &cobra.Command{
		Use:   "server",
		Short: "Start the weather viewing server",
		Long:  `Start the HTTP server that serves current conditions, forecasts, favorites, the last viewed location, and the cloud tile overlay.`,
		RunE:  runServer,
	}
)

func init() {
	serverCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	log.Info("Starting skycast server",
		zap.String("config_path", configPath),
		zap.String("store_backend", cfg.Store.Backend),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Int("server_port", cfg.Server.Port))

	srv, err := server.NewServer(log, tele)
	if err != nil {
		log.Error("Failed to build server", zap.Error(err))
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		if tele != nil {
			if err := tele.Shutdown(shutdownCtx); err != nil {
				log.Warn("Error during telemetry shutdown", zap.Error(err))
			}
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
