package bootstrap

import (
	"go.uber.org/fx"

	"github.com/init-pkg/print-pricing/domain/app"
	gemini_client "github.com/init-pkg/print-pricing/internal/clients/gemini"
	openai_client "github.com/init-pkg/print-pricing/internal/clients/openai"
	postgres_client "github.com/init-pkg/print-pricing/internal/clients/postgres"
	"github.com/init-pkg/print-pricing/internal/config"
)

func clientsOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			NewGenerator,
			postgres_client.New,
		),
	)
}

// NewGenerator picks the generation client by LLM_PROVIDER.
func NewGenerator(cfg *config.Config) app.Generator {
	switch cfg.Clients.Generator.Provider {
	case config.ProviderOpenAI:
		return openai_client.New(cfg)
	default:
		return gemini_client.New(cfg)
	}
}
