package migrations

import (
	"context"
	"database/sql"
	"embed"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/init-pkg/print-pricing/internal/errs"
)

//go:embed *.sql
var FS embed.FS

// Up applies every pending journal migration.
func Up(ctx context.Context, dsn string) error {
	return run(ctx, dsn, goose.UpContext)
}

// Down rolls back the latest migration.
func Down(ctx context.Context, dsn string) error {
	return run(ctx, dsn, goose.DownContext)
}

// Status prints applied and pending migrations through goose's logger.
func Status(ctx context.Context, dsn string) error {
	return run(ctx, dsn, goose.StatusContext)
}

type command func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error

func run(ctx context.Context, dsn string, cmd command) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return errs.Wrap(errs.KindConfiguration, err, &errs.ErrorOpts{Message: "open journal database"})
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return errs.Wrap(errs.KindConfiguration, err, &errs.ErrorOpts{Message: "reach journal database"})
	}

	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errs.Wrap(errs.KindInternal, err, nil)
	}

	if err := cmd(ctx, db, "."); err != nil {
		return errs.Wrap(errs.KindConfiguration, err, &errs.ErrorOpts{Message: "journal migration"})
	}
	return nil
}
