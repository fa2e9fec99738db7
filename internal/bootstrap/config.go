package bootstrap

import (
	"flag"
	"fmt"

	"github.com/jonesrussell/keyword-monitor/internal/config"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
)

// LoadConfig loads configuration via the -config flag, defaulting to the
// CONFIG_PATH environment variable or config.yml.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// CreateLogger creates the service logger from configuration.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "keyword-monitor"),
		logger.String("version", version),
	), nil
}
