package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/shiraberu/pricing-go/internal/application/dto"
)

// HealthHandler reports process and database health.
type HealthHandler struct {
	db      *sql.DB
	version string
	started time.Time
}

// NewHealthHandler creates a health handler.
//
// Parameters:
//   - db: database handle to ping
//   - version: build version string
func NewHealthHandler(db *sql.DB, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
		started: time.Now(),
	}
}

// Health handles GET /health. The endpoint reports degraded (503) when the
// database does not answer a ping.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]dto.HealthCheckResult{}
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.db.PingContext(r.Context()); err != nil {
		checks["database"] = dto.HealthCheckResult{
			Status:  "unhealthy",
			Message: err.Error(),
		}
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["database"] = dto.HealthCheckResult{Status: "healthy"}
	}

	render.Status(r, httpStatus)
	render.JSON(w, r, dto.HealthResponse{
		Status:  status,
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Checks:  checks,
	})
}
