package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/safebag-backend/internal/config"
	"github.com/safebag-backend/internal/delivery/http/handler"
	"github.com/safebag-backend/internal/delivery/http/middleware"
	"github.com/safebag-backend/internal/pkg/errors"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server is the Fiber HTTP front of the service.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	assessmentHandler *handler.AssessmentHandler
	routeHandler      *handler.RouteHandler
	deviceHandler     *handler.DeviceHandler
	statusHandler     *handler.StatusHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	assessmentHandler *handler.AssessmentHandler,
	routeHandler *handler.RouteHandler,
	deviceHandler *handler.DeviceHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName: "SafeBag Backend",
		// Route planning waits on the external provider, which is
		// bounded by its own 10s timeout.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		assessmentHandler: assessmentHandler,
		routeHandler:      routeHandler,
		deviceHandler:     deviceHandler,
		statusHandler:     handler.NewStatusHandler(),
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	s.app.Get("/", s.statusHandler.Home)
	s.app.Get("/status", s.statusHandler.Status)

	api := s.app.Group("/api/v1")

	api.Get("/predict", s.assessmentHandler.Predict)
	api.Get("/police", s.assessmentHandler.Police)
	api.Get("/route", s.routeHandler.Routes)

	api.Get("/location", s.deviceHandler.Location)
	api.Post("/ack", s.deviceHandler.Acknowledge)
	api.Post("/sos", s.deviceHandler.SOS)
	api.Post("/escalate", s.deviceHandler.Escalate)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("Unhandled request error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err))

		return c.Status(code).JSON(fiber.Map{
			"error": errors.ErrInternalServer,
		})
	}
}
