package bootstrap

import (
	"log/slog"

	"github.com/init-pkg/print-pricing/domain/app"
	"github.com/init-pkg/print-pricing/internal/config"
)

// ReportStartup logs what the process is about to serve, without secrets.
func ReportStartup(cfg *config.Config, table *app.PriceTable, log *slog.Logger) {
	log.Info("Pricing service ready",
		"addr", cfg.Http.Addr(),
		"provider", cfg.Clients.Generator.Provider,
		"model", cfg.Clients.Generator.Model,
		"rows", table.Len(),
		"modes", table.Modes(),
		"examples", len(table.Examples()),
		"journal", cfg.Infrastructure.Db.Enabled())
}
