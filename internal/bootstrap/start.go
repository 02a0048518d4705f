package bootstrap

import (
	"go.uber.org/fx"
)

func Options() fx.Option {
	return fx.Options(
		coreOptions(),
		appOptions(),
		clientsOptions(),
	)
}

func Run() {
	app := fx.New(Options())

	app.Run()
}
