package http

import (
	"errors"

	"github.com/Nest-Commerce-Microservices/products-ms/pkg/mylogger"
	"github.com/Nest-Commerce-Microservices/products-ms/pkg/rpcerr"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler writes every handler error as {"status","message"}. fiber's
// own errors keep their code; anything not yet normalized goes through the
// translator, labelled with the route.
func ErrorHandler(translator *rpcerr.Translator, logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ctx := c.UserContext()

		var fiberErr *fiber.Error
		rpcErr, ok := rpcerr.As(err)
		switch {
		case ok:
		case errors.As(err, &fiberErr):
			rpcErr = rpcerr.New(fiberErr.Code, fiberErr.Message)
		default:
			label := c.Method() + " " + c.Route().Path
			rpcErr, _ = rpcerr.As(translator.Translate(ctx, err, label, nil))
		}

		mylogger.Warn(
			ctx,
			logger,
			"request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("http_status", rpcErr.Status),
		)

		return c.Status(rpcErr.Status).JSON(rpcErr)
	}
}
