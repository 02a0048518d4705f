package journal_module

import (
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/init-pkg/print-pricing/domain/app"
	journal_store "github.com/init-pkg/print-pricing/internal/app/journal/store"
)

func Register() fx.Option {
	return fx.Provide(NewJournal)
}

// NewJournal falls back to a no-op journal when no database is configured.
func NewJournal(db *gorm.DB, log *slog.Logger) app.QueryJournal {
	if db == nil {
		return journal_store.NoopJournal{}
	}
	return journal_store.NewGorm(db, log)
}
