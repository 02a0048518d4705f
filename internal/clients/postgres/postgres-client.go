package postgres_client

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/init-pkg/print-pricing/internal/app/journal/migrations"
	"github.com/init-pkg/print-pricing/internal/config"
	"github.com/init-pkg/print-pricing/internal/errs"
)

const migrateTimeout = time.Minute

// New opens the journal database. It returns a nil *gorm.DB when DATABASE_URL is empty.
func New(lc fx.Lifecycle, cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	dbCfg := cfg.Infrastructure.Db
	if !dbCfg.Enabled() {
		log.Info("Query journal disabled - DATABASE_URL is empty")
		return nil, nil
	}

	if dbCfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
		defer cancel()
		if err := migrations.Up(ctx, dbCfg.Dsn); err != nil {
			return nil, err
		}
		log.Info("Journal migrations applied")
	}

	db, err := gorm.Open(postgres.Open(dbCfg.Dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, err, &errs.ErrorOpts{Message: "open journal database"})
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}
