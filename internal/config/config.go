package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/init-pkg/print-pricing/internal/errs"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	LayoutAuto  = "auto"
	LayoutFlat  = "flat"
	LayoutPivot = "pivot"

	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type Config struct {
	Env            string               `yaml:"env" env:"APP_ENV" env-default:"local"`
	Http           HttpConfig           `yaml:"http"`
	Log            LogConfig            `yaml:"log"`
	PriceSource    PriceSourceConfig    `yaml:"price_source"`
	Clients        ClientsConfig        `yaml:"clients"`
	Infrastructure InfrastructureConfig `yaml:"infrastructure"`
}

type HttpConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"PORT" env-required:"true"`
}

func (this HttpConfig) Addr() string {
	return fmt.Sprintf("%s:%d", this.Host, this.Port)
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type PriceSourceConfig struct {
	Location      string        `yaml:"location" env:"PRICE_SOURCE" env-required:"true"`
	Sheet         string        `yaml:"sheet" env:"PRICE_SHEET"`
	Format        string        `yaml:"format" env:"PRICE_SOURCE_FORMAT"`
	Layout        string        `yaml:"layout" env:"PRICE_LAYOUT" env-default:"auto"`
	HeaderMarker  string        `yaml:"header_marker" env:"PRICE_HEADER_MARKER" env-default:"Skaits"`
	FilterColumn  string        `yaml:"filter_column" env:"PRICE_FILTER_COLUMN"`
	FilterValue   string        `yaml:"filter_value" env:"PRICE_FILTER_VALUE"`
	ExamplesSheet string        `yaml:"examples_sheet" env:"PRICE_EXAMPLES_SHEET"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" env:"PRICE_FETCH_TIMEOUT" env-default:"30s"`
}

type ClientsConfig struct {
	Generator GeneratorConfig `yaml:"generator"`
}

type GeneratorConfig struct {
	Provider string        `yaml:"provider" env:"LLM_PROVIDER" env-default:"gemini"`
	Url      string        `yaml:"url" env:"LLM_ENDPOINT_URL" env-required:"true"`
	ApiKey   string        `yaml:"api_key" env:"LLM_API_KEY" env-required:"true"`
	Model    string        `yaml:"model" env:"LLM_MODEL"`
	Timeout  time.Duration `yaml:"timeout" env:"LLM_TIMEOUT" env-default:"30s"`
}

type InfrastructureConfig struct {
	Db DbConfig `yaml:"db"`
}

type DbConfig struct {
	Dsn         string `yaml:"dsn" env:"DATABASE_URL"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"DATABASE_AUTO_MIGRATE" env-default:"true"`
}

func (this DbConfig) Enabled() bool {
	return strings.TrimSpace(this.Dsn) != ""
}

// Load reads .env (if present), then CONFIG_PATH (if set), then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errs.Wrap(errs.KindConfiguration, err, &errs.ErrorOpts{Message: "read .env"})
	}

	var cfg Config
	var err error
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, err, &errs.ErrorOpts{Message: "load config"})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoadDb reads only the database settings, for tools that do not serve traffic.
func MustLoadDb() *DbConfig {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	var db DbConfig
	if err := cleanenv.ReadEnv(&db); err != nil {
		panic(errs.Wrap(errs.KindConfiguration, err, &errs.ErrorOpts{Message: "load database config"}))
	}
	return &db
}

func (this *Config) Validate() error {
	if this.Http.Port <= 0 || this.Http.Port > 65535 {
		return errs.Newf(errs.KindConfiguration, "PORT %d out of range", this.Http.Port)
	}
	if strings.TrimSpace(this.PriceSource.Location) == "" {
		return errs.New(errs.KindConfiguration, "PRICE_SOURCE is empty")
	}
	if strings.TrimSpace(this.Clients.Generator.Url) == "" {
		return errs.New(errs.KindConfiguration, "LLM_ENDPOINT_URL is empty")
	}
	if strings.TrimSpace(this.Clients.Generator.ApiKey) == "" {
		return errs.New(errs.KindConfiguration, "LLM_API_KEY is empty")
	}

	switch this.Clients.Generator.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return errs.Newf(errs.KindConfiguration, "unknown LLM_PROVIDER %q", this.Clients.Generator.Provider)
	}

	switch this.PriceSource.Layout {
	case LayoutAuto, LayoutFlat, LayoutPivot:
	default:
		return errs.Newf(errs.KindConfiguration, "unknown PRICE_LAYOUT %q", this.PriceSource.Layout)
	}

	switch strings.ToLower(this.PriceSource.Format) {
	case "", FormatCSV, FormatXLSX:
	default:
		return errs.Newf(errs.KindConfiguration, "unknown PRICE_SOURCE_FORMAT %q", this.PriceSource.Format)
	}

	if this.PriceSource.Layout != LayoutFlat && strings.TrimSpace(this.PriceSource.HeaderMarker) == "" {
		return errs.New(errs.KindConfiguration, "PRICE_HEADER_MARKER is empty")
	}
	if (this.PriceSource.FilterColumn == "") != (this.PriceSource.FilterValue == "") {
		return errs.New(errs.KindConfiguration, "PRICE_FILTER_COLUMN and PRICE_FILTER_VALUE must be set together")
	}
	if this.Clients.Generator.Timeout <= 0 {
		return errs.New(errs.KindConfiguration, "LLM_TIMEOUT must be positive")
	}
	if this.PriceSource.FetchTimeout <= 0 {
		return errs.New(errs.KindConfiguration, "PRICE_FETCH_TIMEOUT must be positive")
	}
	return nil
}
