package bootstrap

import (
	"go.uber.org/fx"

	journal_module "github.com/init-pkg/print-pricing/internal/app/journal"
	price_table_module "github.com/init-pkg/print-pricing/internal/app/price-table"
	pricing_module "github.com/init-pkg/print-pricing/internal/app/pricing"
)

func appOptions() fx.Option {
	return fx.Options(
		price_table_module.Register(),
		journal_module.Register(),
		pricing_module.Register(),

		fx.Invoke(
			ReportStartup,
		),
	)
}
