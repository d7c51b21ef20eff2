package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const (
	AppEnvKey  = "APP_ENV"
	EnvPathKey = "ENV_PATH"
	Local      = "local"
)

// AppEnv returns APP_ENV, defaulting to local.
func AppEnv() string {
	if env := os.Getenv(AppEnvKey); env != "" {
		return env
	}
	return Local
}

// LoadDotEnv loads environment variables from a .env file.
// It uses the ENV_PATH environment variable to determine the path to the .env file.
// A missing file is only an error when running locally.
func LoadDotEnv(env string, defaultPath string) error {
	var envPath string
	if os.Getenv(EnvPathKey) != "" {
		envPath = os.Getenv(EnvPathKey)
	} else {
		slog.Info("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	err := godotenv.Load(envPath)
	if err != nil {
		if env == Local || env == "" {
			slog.Error("Failed to load environment variables in local mode", "error", err)
			return err
		}
		slog.Debug("Skipping .env ...")
	}

	return nil
}
