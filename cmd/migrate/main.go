package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/init-pkg/print-pricing/internal/app/journal/migrations"
	"github.com/init-pkg/print-pricing/internal/config"
)

// Usage: migrate [up|down|status]
func main() {
	flag.Parse()

	var db = config.MustLoadDb()
	if !db.Enabled() {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is empty, nothing to migrate")
		os.Exit(1)
	}

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	var (
		ctx = context.Background()
		dsn = db.Dsn
		err error
	)
	switch command {
	case "up":
		err = migrations.Up(ctx, dsn)
	case "down":
		err = migrations.Down(ctx, dsn)
	case "status":
		err = migrations.Status(ctx, dsn)
	default:
		err = fmt.Errorf("unknown command %q", command)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
