package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	draftforge "github.com/draftforge/draftforge"
	"github.com/draftforge/draftforge/internal/ai"
	"github.com/draftforge/draftforge/internal/alert"
	"github.com/draftforge/draftforge/internal/api"
	"github.com/draftforge/draftforge/internal/blob"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/repository"
	"github.com/draftforge/draftforge/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file loaded", "error", err)
		}
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	migrations, err := fs.Sub(draftforge.MigrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrations); err != nil {
		return err
	}

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	alerts, err := alert.New(cfg.AlertBotToken, cfg.AlertChatID)
	if err != nil {
		return err
	}

	var blobStore *blob.Store
	if cfg.MinioEndpoint != "" {
		blobStore, err = blob.New(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return err
		}
	}

	store := repository.NewStore(pool)
	usage := service.NewUsageService(store, alerts)
	versions := service.NewVersionService(store)
	backend := ai.NewClient(cfg.OpenRouterKey, cfg.OpenRouterURL)

	handler := api.New(api.Deps{
		Projects: service.NewProjectService(store),
		Sessions: service.NewSessionService(store),
		Versions: versions,
		Assets:   service.NewAssetService(store),
		Usage:    usage,
		Generate: service.NewGenerationService(store, backend, usage, versions),
		Blob:     blobStore,
	})

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	handler.Register(r, alerts)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-User-ID"}),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      cors(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: config.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
