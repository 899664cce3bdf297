package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/avolkova/reviewbrain/internal/config"
	"github.com/avolkova/reviewbrain/internal/database"
	"github.com/avolkova/reviewbrain/internal/models"
)

// Checker reports readiness of the review store and model configuration.
type Checker struct {
	db     *database.Manager
	cfg    *config.Config
	logger *logrus.Logger
}

func NewChecker(db *database.Manager, cfg *config.Config, logger *logrus.Logger) *Checker {
	return &Checker{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Handler returns the /health endpoint. The model endpoint is not
// probed per check to avoid burning quota; its configuration presence
// stands in for it.
func (h *Checker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		statuses := map[string]string{
			"database": "healthy",
			"model":    "configured",
		}
		healthy := true

		if err := h.db.PingDatabase(); err != nil {
			h.logger.WithError(err).Warn("Database health check failed")
			statuses["database"] = "unhealthy: " + err.Error()
			healthy = false
		}

		if h.cfg.AzureOpenAI.Endpoint == "" || h.cfg.AzureOpenAI.Deployment == "" {
			statuses["model"] = "unconfigured"
			healthy = false
		}

		status := "ok"
		code := http.StatusOK
		if !healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, models.HealthResponse{
			Status:    status,
			Service:   "reviewbrain",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Services:  statuses,
		})
	}
}
