package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/ebookshelf/internal/logger"
)

// Pinger is implemented by every storage backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      Pinger
	uploads Pinger
	version string
}

func NewHealthController(db, uploads Pinger, version string) *HealthController {
	return &HealthController{db: db, uploads: uploads, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"database": check(ctx, "database", h.db),
		"uploads":  check(ctx, "uploads", h.uploads),
	}
	status := "healthy"
	for _, result := range checks {
		if result != "ok" && result != "not configured" {
			status = "unhealthy"
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	})
}

// check returns the public status of one dependency; failure details
// only go to the log.
func check(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "not configured"
	}
	if err := p.Ping(ctx); err != nil {
		logger.Get().Warn().Err(err).Str("check", name).Msg("health check failed")
		return "error"
	}
	return "ok"
}
