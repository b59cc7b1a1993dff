package main

import (
	"fmt"

	"talent-workflow-api/config"
	"talent-workflow-api/pkg/logger"

	"go.uber.org/zap"
)

// bootstrap loads configuration and builds the process logger. Flags only
// ever switch json/debug on.
func bootstrap(flags *rootFlags) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogJSON || flags.json, cfg.LogDebug || flags.debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, log, nil
}
