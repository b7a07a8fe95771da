package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/auth-service/internal/api"
	"github.com/99minutos/auth-service/internal/api/handler"
	"github.com/99minutos/auth-service/internal/core/service"
	"github.com/99minutos/auth-service/internal/infrastructure/config"
	"github.com/99minutos/auth-service/internal/infrastructure/crypto"
	mongostore "github.com/99minutos/auth-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/auth-service/internal/infrastructure/queue"
	"github.com/99minutos/auth-service/internal/infrastructure/token"
	"github.com/99minutos/auth-service/internal/infrastructure/validation"
	"github.com/99minutos/auth-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP login API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "auth-service",
		Version: version,
	})

	in, err := connectInfra(ctx, cfg, true)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect dependencies")
		return err
	}
	defer in.close(context.Background())

	store, err := in.userStore(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to prepare user directory")
		return err
	}

	issuer := token.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	authService, err := service.NewAuthService(service.AuthServiceConfig{
		Users:   in.directory(store, cfg, log),
		Matcher: crypto.NewMatcher(cfg.Directory.BcryptCost),
		Issuer:  issuer,
		Log:     log,
	})
	if err != nil {
		return err
	}
	controller := handler.NewLoginController(authService, validation.NewEmailChecker(), log)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var audit handler.LoginAuditQueue
	var dispatcher *queue.Dispatcher
	if cfg.Audit.Enabled {
		auditService := service.NewLoginAuditService(mongostore.NewAuditRepository(in.mongo.DB), log)
		dispatcher = queue.NewDispatcher(cfg.Audit.Workers, auditService, log)
		dispatcher.Start(workerCtx)
		audit = dispatcher
	}

	e := api.NewRouter(api.Dependencies{
		Log:       log,
		Auth:      handler.NewAuthHandler(controller, audit),
		Verifier:  issuer,
		Readiness: in.pingers(),
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("directory", cfg.Directory.Backend).Msg("auth service listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	stopWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	return nil
}
