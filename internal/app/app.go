package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/finsl/signbank-backend/internal/adapter/postgres"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/definition"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/fieldchoice"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/gloss"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/keyword"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/language"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/relation"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/tag"
	"github.com/finsl/signbank-backend/internal/adapter/postgres/translation"
	"github.com/finsl/signbank-backend/internal/auth"
	"github.com/finsl/signbank-backend/internal/config"
	"github.com/finsl/signbank-backend/internal/media"
	"github.com/finsl/signbank-backend/internal/service/choices"
	"github.com/finsl/signbank-backend/internal/service/dictionary"
	"github.com/finsl/signbank-backend/internal/transport/middleware"
	"github.com/finsl/signbank-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services and HTTP handlers, and serves
// until the context is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	glossRepo := gloss.New(pool)
	translationRepo := translation.New(pool)
	keywordRepo := keyword.New(pool)
	definitionRepo := definition.New(pool)
	tagRepo := tag.New(pool)
	relationRepo := relation.New(pool)
	choiceRepo := fieldchoice.New(pool)
	languageRepo := language.New(pool)

	videoStore := media.NewStore(cfg.Media)

	choicesSvc := choices.NewService(logger, choiceRepo, languageRepo)
	if err := choicesSvc.Reload(ctx); err != nil {
		return fmt.Errorf("load field choices: %w", err)
	}

	dictSvc := dictionary.NewService(
		logger,
		glossRepo,
		translationRepo,
		keywordRepo,
		definitionRepo,
		tagRepo,
		relationRepo,
		videoStore,
		choicesSvc,
		txm,
		cfg.Dictionary,
	)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	router := rest.NewRouter(
		rest.NewHealthHandler(pool, BuildVersion()),
		rest.NewWordHandler(logger, dictSvc),
		rest.NewGlossHandler(logger, dictSvc),
		rest.NewChoicesHandler(logger, choicesSvc),
		rest.NewVideoHandler(logger, dictSvc, videoStore),
	)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")

	return nil
}
