package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orghub/orghub-api/internal/config"
	"github.com/orghub/orghub-api/internal/handler"
	"github.com/orghub/orghub-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	PortfolioHandler *handler.PortfolioHandler
	MemberHandler    *handler.MemberHandler
	ShoutoutHandler  *handler.ShoutoutHandler
	JWTMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.PortfolioHandler != nil {
		portfolios := app.Group("/api/v2/portfolios", jwtMiddleware)
		deps.PortfolioHandler.Register(portfolios)
	}

	if deps.MemberHandler != nil {
		members := app.Group("/api/v2/members", jwtMiddleware)
		deps.MemberHandler.Register(members)
	}

	if deps.ShoutoutHandler != nil && cfg.ShoutoutsEnabled {
		shoutouts := app.Group("/api/v2/shoutouts", jwtMiddleware)
		deps.ShoutoutHandler.Register(shoutouts)
	}
}
