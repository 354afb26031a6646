package app

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
	"github.com/smartmeal/smartmeal-backend/internal/utils"
)

// Config carries service settings. Values come from an optional YAML file
// (CONFIG_PATH) overridden by environment variables; store credentials stay
// env-only.
type Config struct {
	HTTPAddr    string `yaml:"http_addr"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`

	InsightsHorizonDays int `yaml:"insights_horizon_days"`
	ExpiringWindowDays  int `yaml:"expiring_window_days"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		HTTPAddr:            ":8080",
		Environment:         "development",
		InsightsHorizonDays: 30,
		ExpiringWindowDays:  3,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("config file unreadable, using defaults", "path", path, "error", err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Warn("config file unparsable, using defaults", "path", path, "error", err)
		}
	}

	cfg.HTTPAddr = utils.GetEnv("HTTP_ADDR", cfg.HTTPAddr, log)
	cfg.Environment = utils.GetEnv("ENVIRONMENT", cfg.Environment, log)
	cfg.Version = utils.GetEnv("SERVICE_VERSION", cfg.Version, log)
	cfg.InsightsHorizonDays = utils.GetEnvAsInt("INSIGHTS_HORIZON_DAYS", cfg.InsightsHorizonDays, log)
	cfg.ExpiringWindowDays = utils.GetEnvAsInt("EXPIRING_WINDOW_DAYS", cfg.ExpiringWindowDays, log)

	return cfg
}
