package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"labrecord-backend/internal/logo"
	"labrecord-backend/internal/qr"
	"labrecord-backend/internal/records"
	"labrecord-backend/internal/services/health"
	"labrecord-backend/internal/shared/config"
	"labrecord-backend/internal/shared/server"
)

// App holds shared dependencies for the API and its tests.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	Logo    *logo.Store
	QR      *qr.Generator
	Records *records.Service
	Health  *health.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./data"
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	logoStore := logo.New(cfg.DataDir)
	generator := qr.NewGenerator()
	recordsSvc := records.NewService(logoStore, records.NewAssembler(generator))
	healthSvc := health.NewService(logoStore)
	recordsHandler := records.NewHandler(recordsSvc, logoStore)

	return &App{
		Config:  cfg,
		Router:  server.NewRouter(cfg, healthSvc, recordsHandler),
		Logo:    logoStore,
		QR:      generator,
		Records: recordsSvc,
		Health:  healthSvc,
	}, nil
}
