package routes

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type Registry struct {
	health       *handler.HealthHandler
	batch        *handler.BatchHandler
	invitations  *handler.InvitationHandler
	powerMatches *handler.PowerMatchHandler
	events       *ws.Handler

	internalAuth *middleware.InternalAuthMiddleware
	userAuth     *middleware.AuthMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	batch *handler.BatchHandler,
	invitations *handler.InvitationHandler,
	powerMatches *handler.PowerMatchHandler,
	events *ws.Handler,
	internalAuth *middleware.InternalAuthMiddleware,
	userAuth *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:       health,
		batch:        batch,
		invitations:  invitations,
		powerMatches: powerMatches,
		events:       events,
		internalAuth: internalAuth,
		userAuth:     userAuth,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	if r.events != nil {
		app.Get("/ws", r.events.HandleEventsWS)
	}

	r.registerInternal(app)
	r.registerAPI(app)
}

// registerInternal mounts the batch entry points: permissive CORS for the
// scheduler's preflight, then the shared-secret check.
func (r *Registry) registerInternal(app *fiber.App) {
	internal := app.Group("/internal",
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{fiber.MethodPost, fiber.MethodGet, fiber.MethodOptions},
			AllowHeaders: []string{"Authorization", "Content-Type"},
		}),
		r.internalAuth.Middleware(),
	)
	r.batch.RegisterRoutes(internal)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1 := api.Group("/v1", r.userAuth.Middleware())

	r.invitations.RegisterRoutes(v1)
	r.powerMatches.RegisterRoutes(v1)
}
