package server

import (
	"context"
	"log"

	"portfolio-content-be/internal/bootstrap"
	"portfolio-content-be/internal/config"
	"portfolio-content-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lexical bodies of long posts with inline images can be large.
const bodyLimit = 10 * 1024 * 1024

type Server struct {
	app  *fiber.App
	port string
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := newApp(cfg)
	registerRoutes(app, container)
	return &Server{app: app, port: cfg.App.Port}
}

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "portfolio-content",
		BodyLimit:    bodyLimit,
		ErrorHandler: serverutils.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		// Probes and scrapes would drown the request traces.
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(serverutils.ErrorHandlerMiddleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	return app
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.HealthController.RegisterRoutes(app)

	api := app.Group("/api")
	c.ContentController.RegisterRoutes(api)
	c.RenderController.RegisterRoutes(api)
	c.AdminController.RegisterRoutes(api)
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on :%s", s.port)
	return s.app.Listen(":" + s.port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
