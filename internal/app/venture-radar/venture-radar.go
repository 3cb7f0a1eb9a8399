// Package ventureradar собирает HTTP-приложение: хранилища, сервисы,
// маршруты и жизненный цикл сервера.
package ventureradar

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/ventureradar/venture-radar/internal/cache"
	"github.com/ventureradar/venture-radar/internal/config"
	"github.com/ventureradar/venture-radar/internal/lib/jwt"
	"github.com/ventureradar/venture-radar/internal/migrations"
	"github.com/ventureradar/venture-radar/internal/rabbitmq"
	authservice "github.com/ventureradar/venture-radar/internal/services/auth"
	dashboardservice "github.com/ventureradar/venture-radar/internal/services/dashboard"
	newsletterservice "github.com/ventureradar/venture-radar/internal/services/newsletter"
	planservice "github.com/ventureradar/venture-radar/internal/services/plan"
	settingsservice "github.com/ventureradar/venture-radar/internal/services/settings"
	teamservice "github.com/ventureradar/venture-radar/internal/services/team"
	vcservice "github.com/ventureradar/venture-radar/internal/services/vc"
	"github.com/ventureradar/venture-radar/internal/session"
	"github.com/ventureradar/venture-radar/internal/storage/repository"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	sessions *session.Store
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}
	sessions, err := session.New(ctx, cfg.RedisConnection, cfg.SessionToken.SessionTTL)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.Rabbit.RabbitURL, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, []rabbitmq.QueueConfig{
		{QueueName: cfg.Rabbit.InviteQueue, RoutingKey: rabbitmq.InviteRoutingKey},
	})
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.SessionToken.SecretKey, cfg.SessionToken.TokenTTL)

	authService := authservice.NewAuthService(db, sessions, jwtMaker, logger)
	authService.WarmupDemoAccounts(ctx)

	vcService := vcservice.NewVCService(db, cacheRedis, logger)
	newsletterService := newsletterservice.NewNewsletterService(db, cacheRedis, logger)
	teamService := teamservice.NewTeamService(db, rabbitmq.NewInvitePublisher(rabbitCh), logger)
	planService := planservice.NewPlanService(db, sessions, logger)
	settingsService := settingsservice.NewSettingsService(db, sessions, logger)
	dashboardService := dashboardservice.NewDashboardService(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, &RouteDeps{
		Sessions:   sessions,
		JWTMaker:   jwtMaker,
		Auth:       authService,
		VCs:        vcService,
		Newsletter: newsletterService,
		Team:       teamService,
		Plans:      planService,
		Settings:   settingsService,
		Dashboard:  dashboardService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessions,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
