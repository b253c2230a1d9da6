package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"commerce-api/internal/config"
	"commerce-api/internal/delivery/http/handler"
	"commerce-api/internal/delivery/http/middleware"
	"commerce-api/internal/domain/entity"
	"commerce-api/internal/usecase"
)

type Router struct {
	app           *fiber.App
	config        *config.Config
	logger        *zap.Logger
	logUsecase    usecase.APIRequestLogUsecase
	healthHandler *handler.HealthHandler
	logHandler    *handler.LogHandler
	feeHandler    *handler.FeeHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	logUsecase usecase.APIRequestLogUsecase,
	healthHandler *handler.HealthHandler,
	logHandler *handler.LogHandler,
	feeHandler *handler.FeeHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
	})

	return &Router{
		app:           app,
		config:        cfg,
		logger:        logger,
		logUsecase:    logUsecase,
		healthHandler: healthHandler,
		logHandler:    logHandler,
		feeHandler:    feeHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization," +
			middleware.HeaderAPIKey + "," + middleware.HeaderAPIToken + "," + middleware.HeaderAPIVersion,
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	r.app.Get("/health", r.healthHandler.Health)
	r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 routes, every request is recorded as an API request log
	api := r.app.Group("/api/v1", middleware.RequestLog(r.config, r.logUsecase, r.logger))
	{
		logs := api.Group("/logs")
		{
			logs.Get("", r.logHandler.GetLogs)
			logs.Get("/:id", r.logHandler.GetLog)
			logs.Put("/:id", r.logHandler.UpdateLog)
			logs.Delete("/:id", r.logHandler.DeleteLog)
		}

		fees := api.Group("/carts/:session/fees")
		{
			fees.Get("", r.feeHandler.GetFees)
			fees.Post("", r.feeHandler.AddFee)
			fees.Delete("", r.feeHandler.ResetFees)
			fees.Get("/total", r.feeHandler.Total)
			fees.Get("/:fee", r.feeHandler.GetFee)
		}
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(entity.NewErrorResponse(
		codeName(code),
		err.Error(),
	))
}

func codeName(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_ERROR"
	}
}
