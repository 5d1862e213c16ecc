package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"prepkit/internal"
	"prepkit/internal/errors"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "PREP"

// DefaultNAValues mirrors the markers pandas treats as missing out of the box.
// The empty cell is always missing and is not listed.
var DefaultNAValues = []string{
	"NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan",
	"null", "NULL", "None", "#N/A", "<NA>",
}

// Config represents the complete application configuration
type Config struct {
	LogLevel string   `envconfig:"LOG_LEVEL" default:"WARN" validate:"required,oneof=ERROR WARN INFO DEBUG TRACE error warn info debug trace"`
	NAValues []string `envconfig:"NA_VALUES"`
	Sheet    string   `envconfig:"SHEET"`
	HeadRows int      `envconfig:"HEAD_ROWS" default:"5" validate:"gte=0,lte=1000"`
}

// Load reads an optional .env file, then the environment, and validates the result.
// A missing env file is not an error; an explicitly named unreadable one is.
func Load(envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, errors.Wrap(err, "failed to load env file")
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load configuration")
	}
	if len(cfg.NAValues) == 0 {
		cfg.NAValues = append([]string(nil), DefaultNAValues...)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &cfg, nil
}

// Logger builds the leveled logger the configuration asks for.
func (c *Config) Logger() *internal.Logger {
	level, err := internal.ParseLogLevel(c.LogLevel)
	if err != nil {
		level = internal.LogLevelWarn
	}
	return internal.NewLogger(level)
}

func loadEnvFile(envFile string) error {
	if envFile == "" {
		envFile = ".env"
		if _, err := os.Stat(envFile); err != nil {
			return nil
		}
	}
	return godotenv.Load(envFile)
}

func validateConfig(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" failed "+fe.Tag())
			}
		} else {
			fields = append(fields, err.Error())
		}
		return errors.ConfigInvalid(strings.Join(fields, "; "))
	}
	return nil
}
