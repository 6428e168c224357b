// Package server assembles the fiber application: middleware, routes and error handling.
package server

import (
	"errors"

	"github.com/ansrivas/fiberprometheus/v2"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "pmfolio/web/docs" // swagger docs
	"pmfolio/web/handlers"
	"pmfolio/web/middleware"
	"pmfolio/web/utils"
)

// Options configures New.
type Options struct {
	Logger         *logrus.Logger
	AllowedOrigins string
	// Prometheus enables /metrics and request metrics when non-nil.
	Prometheus *fiberprometheus.FiberPrometheus
	// Sentry installs the Sentry middleware. sentry.Init must have run.
	Sentry bool
}

// New builds the application around h.
func New(h *handlers.ApplicationHandler, opts Options) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = h.Logger
	}
	origins := opts.AllowedOrigins
	if origins == "" {
		origins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:      "pmfolio",
		ErrorHandler: errorHandler(log),
	})

	if opts.Sentry {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PATCH,OPTIONS",
	}))
	if opts.Prometheus != nil {
		opts.Prometheus.RegisterAt(app, "/metrics")
		app.Use(opts.Prometheus.Middleware)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "pmfolio is healthy",
		})
	})
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	apiV1 := app.Group("/api/v1")

	apiV1.Get("/profiles/:username", h.GetProfile)

	apiV1.Post("/users", h.CreateUser)
	apiV1.Get("/users/:id", h.GetUser)
	apiV1.Patch("/users/:id", h.UpdateUser)
	apiV1.Get("/users/:id/projects", h.ListUserProjects)
	apiV1.Get("/users/:id/recommendations", h.ListUserRecommendations)

	apiV1.Get("/projects/featured", h.GetFeaturedProjects)
	apiV1.Post("/projects", h.CreateProject)
	apiV1.Get("/projects/:id", h.GetProject)
	apiV1.Patch("/projects/:id", h.UpdateProject)

	apiV1.Post("/recommendations", h.CreateRecommendation)
	apiV1.Get("/recommendations/:id", h.GetRecommendation)
	apiV1.Patch("/recommendations/:id", h.UpdateRecommendation)

	// Public pages last so /:username never shadows the routes above.
	app.Get("/", h.LandingPage)
	app.Get("/:username", h.ProfilePage)

	return app
}

func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.WithField("request_id", middleware.RequestID(c)).WithError(err).Error("Unhandled request error")
		}
		return utils.RespondWithError(c, code, message)
	}
}
