package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ecomdash/internal/services"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// HealthHandler handles health-related HTTP requests.
type HealthHandler struct {
	service *services.DashboardService
	logger  *slog.Logger
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service *services.DashboardService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
		started: time.Now(),
	}
}

// HealthCheck handles GET /api/health. The service is healthy once the
// dataset snapshot is loaded, so this reports dataset bounds alongside
// liveness.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	meta := h.service.DatasetMeta(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status":  "healthy",
		"version": Version,
		"uptime":  time.Since(h.started).String(),
		"dataset": map[string]interface{}{
			"min_purchase_date": meta.MinPurchaseDate,
			"max_purchase_date": meta.MaxPurchaseDate,
			"orders":            meta.RowCounts["orders"],
		},
	})
}

// Version handles GET /api/version.
func (h *HealthHandler) VersionInfo(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"version": Version})
}
