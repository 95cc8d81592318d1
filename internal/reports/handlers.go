package reports

import (
	"net/http"
	"time"

	"github.com/noah-isme/phoneshop-api/internal/common"
)

// Handler exposes reporting endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Dashboard handles GET /api/v1/reports/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": stats})
}

// InventorySummary handles GET /api/v1/reports/inventory-summary.
func (h *Handler) InventorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.InventorySummary(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": summary})
}

// SalesReport handles GET /api/v1/reports/sales?period=day&date=2024-03-09.
func (h *Handler) SalesReport(w http.ResponseWriter, r *http.Request) {
	var anchor time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			common.WriteError(w, common.ValidationError("date must be YYYY-MM-DD"))
			return
		}
		anchor = parsed
	}
	report, err := h.service.SalesReport(r.Context(), r.URL.Query().Get("period"), anchor)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": report})
}
