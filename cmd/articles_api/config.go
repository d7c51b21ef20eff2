package main

import (
	"log/slog"

	"github.com/DjordjeVuckovic/keypage/internal/storage/factory"
)

type AppConfig struct {
	StorageConfig *factory.StorageConfig
}

// LoadAppConfig reads storage settings; the server config has already
// loaded the .env file.
func LoadAppConfig() (*AppConfig, error) {
	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}
	return &AppConfig{StorageConfig: storageCfg}, nil
}
