package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/killallgit/waveform-comments/api"
	apiversion "github.com/killallgit/waveform-comments/api/version"
	"github.com/killallgit/waveform-comments/internal/database"
	"github.com/killallgit/waveform-comments/internal/services/cleanup"
	"github.com/killallgit/waveform-comments/pkg/config"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Waveform Comments API server with the configured settings.

The database schema is migrated before the server accepts requests.

Example:
  waveform-comments serve
  waveform-comments serve --port 9090
  waveform-comments serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	apiversion.Version = Version
	srv, err := newAPIServer(cfg, db, fmt.Sprintf("%s:%d", serverHost, serverPort))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Cleanup.Enabled {
		purger := cleanup.NewService(db.DB, cfg.Cleanup.Retention, cfg.Cleanup.Interval)
		purger.Start(ctx)
		defer purger.Stop()
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Waveform Comments API listening on %s:%d", serverHost, serverPort)

	select {
	case <-ctx.Done():
		log.Println("[INFO] Shutting down server...")
	case err := <-serverErr:
		log.Printf("[ERROR] %v", err)
		log.Println("[INFO] Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("[INFO] Server gracefully stopped")
	return nil
}

// openDatabase connects to the configured database and brings its schema up
// to date
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func newAPIServer(cfg *config.Config, db *database.DB, addr string) (*api.Server, error) {
	opts := []api.ServerOption{
		api.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		api.WithMaxHeaderBytes(cfg.Server.MaxHeaderBytes),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	}
	if cfg.Security.EnableCORS {
		opts = append(opts, api.WithCORSOrigins(cfg.Security.CORSOrigins))
	} else {
		opts = append(opts, api.WithoutCORS())
	}

	srv := api.NewServer(addr, opts...)
	srv.SetDatabase(db)
	if err := srv.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}
	return srv, nil
}
