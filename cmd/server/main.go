package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/diewo77/go-immobiliare/internal/config"
	"github.com/diewo77/go-immobiliare/internal/db"
	"github.com/diewo77/go-immobiliare/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "immobiliare",
		Short:         "Back office for a real-estate agency: properties and clients",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{Use: "serve", Short: "Start the HTTP server (default)", RunE: runServe},
		newMigrateCmd(),
		&cobra.Command{Use: "ping", Short: "Check the database connection and print the server version", RunE: runPing},
	)
	return root
}

// env is what every command needs once configuration has been read.
type env struct {
	cfg   config.Server
	log   *zap.Logger
	conn  config.Connection
	store *db.Provider
}

// bootstrap loads configuration, builds the logger and opens the store. A missing
// or incomplete connection file is fatal.
func bootstrap() (*env, error) {
	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return nil, err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return nil, err
	}

	conn, err := config.LoadConnection(cfg.App.ConnectionFile)
	if err != nil {
		if errors.Is(err, config.ErrConfigMissing) {
			log.Fatal("connection file missing or incomplete",
				zap.String("file", cfg.App.ConnectionFile),
				zap.Strings("required", config.RequiredKeys),
				zap.Error(err))
		}
		log.Error("connection file", zap.String("file", cfg.App.ConnectionFile), zap.Error(err))
		return nil, err
	}
	log.Info("database target", zap.Stringer("connection", conn))

	store, err := db.Open(conn, db.Options{Logger: log, Debug: cfg.App.DBDebug})
	if err != nil {
		log.Error("open database", zap.Stringer("connection", conn), zap.Error(err))
		return nil, err
	}
	return &env{cfg: cfg, log: log, conn: conn, store: store}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close database", zap.Error(err))
	}
	_ = e.log.Sync()
}

func (e *env) ensureSchema(ctx context.Context, modeName string) error {
	mode, err := db.ParseSchemaMode(modeName)
	if err != nil {
		return err
	}
	if err := db.EnsureSchema(ctx, e.store, mode, e.conn.URL()); err != nil {
		e.log.Error("schema not ready; check the database with `immobiliare ping` or GET /test_connection",
			zap.String("mode", string(mode)), zap.Error(err))
		return err
	}
	e.log.Info("schema ready", zap.String("mode", string(mode)))
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := e.ensureSchema(ctx, e.cfg.App.SchemaMode); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         e.cfg.HTTP.Addr(),
		Handler:      NewApp(e.store, e.cfg, e.log),
		ReadTimeout:  e.cfg.HTTP.ReadTimeout,
		WriteTimeout: e.cfg.HTTP.WriteTimeout,
		IdleTimeout:  e.cfg.HTTP.IdleTimeout,
		ErrorLog:     zap.NewStdLog(e.log.Named("http")),
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info("server starting", zap.String("addr", srv.Addr), zap.Bool("dev", e.cfg.App.Dev))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			e.log.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
		e.log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), e.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		e.log.Error("shutdown", zap.Error(err))
		return err
	}
	e.log.Info("server stopped gracefully")
	return nil
}

func newMigrateCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Prepare the schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := bootstrap()
			if err != nil {
				return err
			}
			defer e.close()
			if mode == "" {
				mode = e.cfg.App.SchemaMode
			}
			return e.ensureSchema(cmd.Context(), mode)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "schema mode: create, verify or migrate (default SCHEMA_MODE)")
	return cmd
}

func runPing(cmd *cobra.Command, _ []string) error {
	e, err := bootstrap()
	if err != nil {
		return err
	}
	defer e.close()

	version, err := e.store.Ping(cmd.Context())
	if err != nil {
		e.log.Error("ping", zap.Stringer("connection", e.conn), zap.Error(err))
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), version)
	return nil
}
