package http_server

import (
	"context"
	"errors"
	"log/slog"
	"net"

	swagger "github.com/Flussen/swagger-fiber-v3"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/fx"

	_ "github.com/init-pkg/print-pricing/docs"
	"github.com/init-pkg/print-pricing/domain/dtos"
	"github.com/init-pkg/print-pricing/internal/config"
	"github.com/init-pkg/print-pricing/internal/errs"
)

func Register() fx.Option {
	return fx.Options(
		fx.Provide(New, NewValidator),
		fx.Invoke(Start),
	)
}

func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// New builds the fiber app with the shared error handler and middlewares.
// Feature handlers mount their routes on it.
func New(log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "print-pricing",
		ErrorHandler: ErrorHandler(log),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	return app
}

// Start binds the listener in OnStart, so a failed constructor never opens the port.
func Start(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", cfg.Http.Addr())
			if err != nil {
				return errs.Wrap(errs.KindConfiguration, err, &errs.ErrorOpts{Message: "bind http listener"})
			}

			go func() {
				if err := app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					log.Error("HTTP server stopped", "error", err.Error())
				}
			}()

			log.Info("HTTP server started", "addr", ln.Addr().String())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("HTTP server stopping")
			return app.ShutdownWithContext(ctx)
		},
	})
}

// ErrorHandler turns handler errors into the JSON error body and status of their kind.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(fctx fiber.Ctx, err error) error {
		requestID := fctx.GetRespHeader(fiber.HeaderXRequestID)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fctx.Status(fe.Code).JSON(dtos.ErrorResponse{Error: fe.Message})
		}

		kind := errs.KindOf(err)
		status := kind.HTTPStatus()
		body := dtos.ErrorResponse{Error: "internal error"}

		var e *errs.Error
		errors.As(err, &e)

		switch kind {
		case errs.KindValidation:
			body.Error = e.Message
			log.Info("Request rejected", "request_id", requestID, "error", err.Error())
		case errs.KindUpstream:
			body.Error = "price generation failed"
			body.Detail = e.Detail
			if body.Detail == "" {
				body.Detail = e.Error()
			}
			log.Error("Upstream failure",
				"request_id", requestID,
				"error", err.Error(),
				"status", e.Status,
				"detail", e.Detail)
		default:
			log.Error("Request failed", "request_id", requestID, "error", err.Error())
		}

		return fctx.Status(status).JSON(body)
	}
}
