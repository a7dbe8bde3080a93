package app

import (
	"errors"

	"talent-match/internal/config"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	"talent-match/internal/matcher"
	"talent-match/internal/pipeline"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

var errMatcherNotConfigured = errors.New("matcher base URL is not configured")

type App struct {
	Fiber     *fiber.App
	Hub       *ws.Hub
	Container *Container
}

// Bootstrap builds the whole object graph: repositories over the pgx pool,
// the matcher client, both batch pipelines, usecases, the websocket hub and
// the fiber app with its middleware chain.
func Bootstrap(cfg config.Config) (*App, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, err
	}

	batchUC, err := NewBatchRunner(c)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	invitations := repository.NewPostgresInvitationRepository(c.DB)
	matches := repository.NewPostgresPowerMatchRepository(c.DB)

	invitationUC := usecase.NewInvitationUsecase(invitations, c.Logger)
	powerMatchUC := usecase.NewPowerMatchUsecase(matches, c.Logger)

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)

	hub := ws.NewHub(c.Logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		handler.NewBatchHandler(batchUC),
		handler.NewInvitationHandler(invitationUC),
		handler.NewPowerMatchHandler(powerMatchUC),
		ws.NewHandler(hub, c.Logger),
		middleware.NewInternalAuthMiddleware(cfg.Batch.InternalToken),
		middleware.NewAuthMiddleware(jwtSvc),
	)
	registry.Register(f)

	return &App{Fiber: f, Hub: hub, Container: c}, nil
}

// NewBatchRunner wires the generation and auto-apply pipelines on top of a
// container. The batch CLI uses it without the HTTP surface.
func NewBatchRunner(c *Container) (*usecase.Batch, error) {
	client := matcher.NewClient(c.Config.Matcher.BaseURL, c.Config.Matcher.ServiceToken, c.Logger)
	if client == nil {
		return nil, errMatcherNotConfigured
	}

	subscribers := repository.NewPostgresSubscriberRepository(c.DB)
	matches := repository.NewPostgresPowerMatchRepository(c.DB)
	applications := repository.NewPostgresApplicationRepository(c.DB)

	generation := pipeline.NewGeneration(subscribers, client, c.Config.Batch.Workers, c.Logger)
	autoApply := pipeline.NewAutoApply(matches, applications, client, c.Config.Batch.Workers, c.Logger)

	return usecase.NewBatchUsecase(generation, autoApply, c.Cache, c.Config.Batch.LockTTL, c.Logger), nil
}

func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.Hub != nil {
		a.Hub.Stop()
	}
	if a.Container != nil {
		return a.Container.Close()
	}
	return nil
}

func (a *App) ListenAddr() string {
	port := a.Container.Config.App.HTTPPort
	if port == "" {
		port = "8080"
	}
	return ":" + port
}
