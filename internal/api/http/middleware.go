package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/campus-kit/registrar-service/internal/observability"
	util "github.com/campus-kit/registrar-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders every error as a flat {"error": message}
// body. Router-generated errors (404, 405 with Allow header) keep their
// status; panics become 500s.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = util.NewInternalError(nil)
			}
			if err == nil {
				return
			}

			status, message, code := classifyError(err)
			if metrics != nil {
				metrics.RecordError(c.Path(), c.Method(), code)
			}
			if status >= 500 {
				logger.Error("request failed", zap.Error(err))
			}
			c.Status(status)
			_ = c.JSON(fiber.Map{"error": message})
			err = nil
		}()
		return c.Next()
	}
}

func classifyError(err error) (status int, message, code string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message, "HTTP_ERROR"
	}
	domainErr := util.ToDomainError(err)
	return domainErr.HTTPStatus, domainErr.Message, domainErr.Code
}
