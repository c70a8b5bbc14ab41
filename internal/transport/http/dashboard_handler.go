package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "ecomdash/internal/errors"
	"ecomdash/internal/services"
)

// DashboardHandler serves the aggregated dashboard views.
type DashboardHandler struct {
	service *services.DashboardService
	exports *services.ExportService
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *services.DashboardService, exports *services.ExportService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		exports: exports,
		logger:  logger.With(slog.String("component", "dashboard_handler")),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/dashboard", h.GetDashboard)
	r.Get("/categories", h.GetCategories)
	r.Get("/locations", h.GetLocations)
	r.Get("/purchases", h.GetPurchases)
	r.Get("/payments", h.GetPayments)
	r.Get("/reviews", h.GetReviews)
	r.Get("/meta", h.GetMeta)
	r.Post("/export", h.Export)

	return r
}

func rangeParams(r *http.Request) services.DateRangeParams {
	return services.DateRangeParams{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
}

// writeServiceError maps service sentinel errors onto API errors.
func (h *DashboardHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)

	var apiErr *apierrors.APIError
	switch {
	case errors.Is(err, services.ErrInvalidDateRange):
		apiErr = apierrors.ErrValidation("from/to", "Dates must be formatted as YYYY-MM-DD")
	case errors.Is(err, services.ErrInvalidOrder):
		apiErr = apierrors.ErrValidation("order", "Order must be one of: top, bottom")
	case errors.Is(err, services.ErrInvalidPersonKind):
		apiErr = apierrors.ErrValidation("person", "Person must be one of: customer, seller")
	case errors.Is(err, services.ErrInvalidGranularity):
		apiErr = apierrors.ErrValidation("granularity", "Granularity must be one of: hour, weekday, day")
	case errors.Is(err, services.ErrInvalidScore):
		apiErr = apierrors.ErrValidation("score", "Score must be an integer between 1 and 5")
	case errors.Is(err, services.ErrInvalidFormat):
		apiErr = apierrors.ErrValidation("format", "Format must be one of: csv, xlsx")
	default:
		apiErr = apierrors.ErrInternalServer
	}

	apierrors.WriteError(w, apiErr)
}

// GetDashboard handles GET /api/dashboard.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.BuildDashboard(r.Context(), rangeParams(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   dashboard,
	})
}

// GetCategories handles GET /api/categories?order=top|bottom.
func (h *DashboardHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Categories(r.Context(), rangeParams(r), r.URL.Query().Get("order"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   counts,
		"count":  len(counts),
	})
}

// GetLocations handles GET /api/locations?person=customer|seller.
func (h *DashboardHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Locations(r.Context(), rangeParams(r), r.URL.Query().Get("person"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   counts,
		"count":  len(counts),
	})
}

// GetPurchases handles GET /api/purchases?granularity=hour|weekday|day.
func (h *DashboardHandler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.service.Purchases(r.Context(), rangeParams(r), r.URL.Query().Get("granularity"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   buckets,
		"count":  len(buckets),
	})
}

// GetPayments handles GET /api/payments.
func (h *DashboardHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.Payments(r.Context(), rangeParams(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summaries,
		"count":  len(summaries),
	})
}

// GetReviews handles GET /api/reviews?score=1..5.
func (h *DashboardHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(r.URL.Query().Get("score"))
	if err != nil {
		h.writeServiceError(w, r, services.ErrInvalidScore)
		return
	}

	comments, err := h.service.Reviews(r.Context(), rangeParams(r), score)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   comments,
		"count":  len(comments),
	})
}

// GetMeta handles GET /api/meta.
func (h *DashboardHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.DatasetMeta(r.Context()),
	})
}

// exportRequest is the POST /api/export body.
type exportRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Format string `json:"format"`
}

// Export handles POST /api/export.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidRequest)
		return
	}

	result, err := h.exports.Export(r.Context(), services.DateRangeParams{From: req.From, To: req.To}, req.Format)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}
