package pricing_module

import (
	"github.com/init-pkg/print-pricing/domain/app"
	pricing_service "github.com/init-pkg/print-pricing/internal/app/pricing/service"
	pricing_http_handler "github.com/init-pkg/print-pricing/internal/app/pricing/transports/http"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(pricing_service.New, fx.As(new(app.PricingService))),
			pricing_http_handler.New,
		),
		fx.Invoke(pricing_http_handler.Mount),
	)
}
