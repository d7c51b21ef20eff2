// Command articles_api serves keyset paginated article listings.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/DjordjeVuckovic/keypage/internal/api/router"
	apiserver "github.com/DjordjeVuckovic/keypage/internal/api/server"
	"github.com/DjordjeVuckovic/keypage/internal/storage/factory"
	pkgserver "github.com/DjordjeVuckovic/keypage/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := apiserver.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	cfg, err := LoadAppConfig()
	if err != nil {
		os.Exit(1)
	}

	store, err := factory.NewStore(context.Background(), cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create article store", "error", err, "type", cfg.StorageConfig.Type)
		os.Exit(1)
	}

	healthChecker := pkgserver.NewPingHealthChecker(store, pkgserver.DefaultPingTimeout)

	s := apiserver.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Articles API is running")
	})

	router.NewArticlesRouter(s.Echo, store).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	slog.Info("Starting articles API", "port", sCfg.Port, "storage", cfg.StorageConfig.Type)
	err = s.Start()

	if cerr := store.Close(context.Background()); cerr != nil {
		slog.Error("Failed to close article store", "error", cerr)
	}
	if err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
