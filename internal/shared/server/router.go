package server

import (
	"github.com/gin-gonic/gin"

	"labrecord-backend/internal/records"
	"labrecord-backend/internal/services/health"
	"labrecord-backend/internal/shared/config"
	"labrecord-backend/internal/shared/server/middleware"
	"labrecord-backend/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// Routes live at the root to keep the service's historical paths.
func NewRouter(cfg config.Config, healthSvc *health.Service, recordsHandler *records.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, healthSvc.Root())
	})
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	recordsHandler.RegisterRoutes(r)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
