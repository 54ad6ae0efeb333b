package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mholecek/location-scout/internal/config"
	"github.com/mholecek/location-scout/internal/storage/files"
	"github.com/mholecek/location-scout/internal/storage/postgres"
	"github.com/mholecek/location-scout/internal/web"
	"github.com/mholecek/location-scout/internal/web/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Location Scout web server.
The server exposes the project, location, photo and proposal API together
with public proposal pages and report exports.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides WEB_HOST)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if port := mustGetInt(cmd, "port"); port > 0 {
		cfg.Server.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Server.Host = host
	}

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()

	pool, err := postgres.Connect(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	fileStore, err := files.NewStore(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open photo storage: %w", err)
	}

	stores := handlers.Stores{
		Projects:  postgres.NewProjectRepository(pool),
		Locations: postgres.NewLocationRepository(pool),
		Photos:    postgres.NewPhotoRepository(pool),
		Proposals: postgres.NewProposalRepository(pool),
		SunTimes:  postgres.NewSunTimeRepository(pool),
	}

	server := web.NewServer(cfg, stores, fileStore, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("error during shutdown", zap.Error(err))
		}
	}()

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
