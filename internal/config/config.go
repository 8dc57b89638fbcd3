package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	DatabaseURL    string `validate:"required"`
	APIPort        int    `validate:"min=1,max=65535"`
	MaxImportBytes int    `validate:"min=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func New() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		APIPort:        4567,
		MaxImportBytes: 8 << 20,
	}

	var err error
	cfg.APIPort, err = getEnvAsInt("API_PORT", cfg.APIPort)
	if err != nil {
		return nil, err
	}

	cfg.MaxImportBytes, err = getEnvAsInt("MAX_IMPORT_BYTES", cfg.MaxImportBytes)
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}

	return value, nil
}
