package price_table_module

import (
	"context"

	"github.com/init-pkg/print-pricing/domain/app"
	price_table_service "github.com/init-pkg/print-pricing/internal/app/price-table/service"
	"github.com/init-pkg/print-pricing/internal/config"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(price_table_service.New, fx.As(new(app.PriceTableLoader))),
		NewPriceTable,
	)
}

func SourceFromConfig(cfg *config.Config) app.PriceSource {
	return app.PriceSource{
		Location:      cfg.PriceSource.Location,
		Sheet:         cfg.PriceSource.Sheet,
		Format:        cfg.PriceSource.Format,
		Layout:        cfg.PriceSource.Layout,
		HeaderMarker:  cfg.PriceSource.HeaderMarker,
		FilterColumn:  cfg.PriceSource.FilterColumn,
		FilterValue:   cfg.PriceSource.FilterValue,
		ExamplesSheet: cfg.PriceSource.ExamplesSheet,
	}
}

// NewPriceTable loads the table while the fx graph is built, so a failure
// aborts startup before the HTTP listener is bound.
func NewPriceTable(cfg *config.Config, loader app.PriceTableLoader) (*app.PriceTable, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.PriceSource.FetchTimeout)
	defer cancel()

	return loader.Load(ctx, SourceFromConfig(cfg))
}
