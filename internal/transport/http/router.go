package http

import (
	"github.com/Nest-Commerce-Microservices/products-ms/internal/transport/http/handler"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/config"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/rpcerr"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

type Handlers struct {
	Product *handler.ProductHandler
	Health  *handler.HealthHandler
	Metrics fiber.Handler
}

// NewApp builds the fiber app with tracing, rate limiting and the normalized
// error handler installed. A zero Limiter.Max disables rate limiting.
func NewApp(translator *rpcerr.Translator, logger *zap.Logger, lim config.Limiter) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler(translator, logger),
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())

	if lim.Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        lim.Max,
			Expiration: lim.Expiration,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(
					rpcerr.New(fiber.StatusTooManyRequests, "Too many requests. Try again later."),
				)
			},
		}))
	}

	return app
}

func RegisterRoutes(app *fiber.App, h *Handlers) {
	app.Get("/health", h.Health.Check)
	if h.Metrics != nil {
		app.Get("/metrics", h.Metrics)
	}

	product := app.Group("/products")
	product.Post("", h.Product.Create)
	product.Get("", h.Product.List)
	product.Get("/:id", h.Product.FindByID)
	product.Patch("/:id", h.Product.Update)
	product.Delete("/:id", h.Product.Delete)
}
