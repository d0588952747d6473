// cmd/serve.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/markb/blockwarden/internal/db"
	"github.com/markb/blockwarden/internal/log"
	"github.com/markb/blockwarden/internal/server"
	"github.com/markb/blockwarden/internal/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Blockwarden server",
	Long:  `Starts the HTTP server with the PIN, authors, and extension endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		port, _ := cmd.Flags().GetInt("port")
		host, _ := cmd.Flags().GetString("host")

		initLogging(cmd)

		jwtSecret := os.Getenv("BLOCKWARDEN_JWT_SECRET")
		if jwtSecret == "" {
			// Ephemeral secret: sessions do not survive a restart
			secret, err := session.GenerateSecret()
			if err != nil {
				return fmt.Errorf("failed to generate session secret: %w", err)
			}
			jwtSecret = secret
			log.Warn("BLOCKWARDEN_JWT_SECRET not set, sessions will not survive restarts")
		}

		// Check if database exists
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return fmt.Errorf("database not found at %s. Run 'blockwarden init' first", dbPath)
		}

		database, err := db.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		// Run migrations in case schema is outdated
		if err := database.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		srv := server.New(database, server.Config{
			JWTSecret:      jwtSecret,
			AllowedOrigins: allowedOrigins(cmd),
		})

		addr := fmt.Sprintf("%s:%d", host, port)
		log.Info("starting blockwarden", "addr", addr, "db", dbPath)
		fmt.Printf("Starting Blockwarden on %s\n", addr)
		fmt.Printf("  API:       http://%s/api\n", addr)
		fmt.Printf("  Extension: http://%s/extension/message\n", addr)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe(addr)
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-stop:
			log.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

// initLogging configures the logger from flags and environment.
// Priority: CLI flags > environment variables > defaults
func initLogging(cmd *cobra.Command) {
	cfg := log.DefaultConfig()

	if level := os.Getenv("BLOCKWARDEN_LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
	if format := os.Getenv("BLOCKWARDEN_LOG_FORMAT"); format != "" {
		cfg.Format = format
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Format = format
	}

	log.Init(cfg)
}

func allowedOrigins(cmd *cobra.Command) []string {
	raw, _ := cmd.Flags().GetString("allowed-origins")
	if raw == "" {
		raw = os.Getenv("BLOCKWARDEN_ALLOWED_ORIGINS")
	}
	if raw == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("db", "blockwarden.db", "Path to database file")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().String("allowed-origins", "", "Comma-separated list of allowed CORS origins")
	serveCmd.Flags().String("log-level", "", "Log level: debug, info, warn, or error (default: info)")
	serveCmd.Flags().String("log-format", "", "Log format: text or json (default: text)")
}
