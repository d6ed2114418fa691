package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	animalsmemory "github.com/shelterops/adoption-api/internal/animals/adapters/memory"
	animalsobs "github.com/shelterops/adoption-api/internal/animals/adapters/observability"
	animalspostgres "github.com/shelterops/adoption-api/internal/animals/adapters/persistence/postgres"
	animalsapp "github.com/shelterops/adoption-api/internal/animals/application"
	animalsports "github.com/shelterops/adoption-api/internal/animals/ports"
	platformmigrations "github.com/shelterops/adoption-api/internal/platform/migrations"
	platformobservability "github.com/shelterops/adoption-api/internal/platform/observability"
	platformpostgres "github.com/shelterops/adoption-api/internal/platform/postgres"
	"github.com/shelterops/adoption-api/internal/server"
)

// Run boots the adoption HTTP API with observability and repositories wired.
// It blocks until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context) error {
	const serviceName = "adoption-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	animalRepo, idempotencyStore, cleanupRepo := buildAnimalAdapters(ctx, cfg, logger)
	defer cleanupRepo()
	coreService := animalsapp.NewService(animalRepo, animalsapp.WithIdempotencyStore(idempotencyStore))
	animalService := animalsobs.New(
		coreService,
		animalsobs.WithLogger(logger),
		animalsobs.WithTracer(instruments.Tracer("internal.animals.application")),
		animalsobs.WithMeter(instruments.Meter("internal.animals.application")),
	)

	if cfg.GinReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers := server.APIHandlers{
		AnimalAPI: server.NewAnimalAPI(animalService),
	}
	router := server.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("adoption API listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("adoption API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down adoption API", slog.Int("timeout_seconds", cfg.ShutdownSeconds))
	drainCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		logger.Error("failed to drain adoption API server", slog.String("error", err.Error()))
		return err
	}
	return <-errCh
}

func buildAnimalAdapters(ctx context.Context, cfg Config, logger *slog.Logger) (animalsports.Repository, animalsports.IdempotencyStore, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory animal repository")
		return animalsmemory.NewRepository(), animalsmemory.NewIdempotencyStore(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return animalsmemory.NewRepository(), animalsmemory.NewIdempotencyStore(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return animalsmemory.NewRepository(), animalsmemory.NewIdempotencyStore(), func() {}
	}
	if err := platformmigrations.Run(db); err != nil {
		logger.Warn("failed to migrate postgres schema, falling back to memory", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return animalsmemory.NewRepository(), animalsmemory.NewIdempotencyStore(), func() {}
	}
	logger.Info("animal repository configured with postgres")
	return animalspostgres.NewRepository(db), animalspostgres.NewIdempotencyStore(db), func() { _ = sqlDB.Close() }
}
