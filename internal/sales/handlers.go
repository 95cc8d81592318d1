package sales

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/phoneshop-api/internal/common"
)

// Handler exposes sale endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Checkout handles POST /api/v1/sales. The response keeps the
// success/error envelope the point-of-sale frontend expects.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		writeCheckoutError(w, err)
		return
	}
	result, err := h.service.Checkout(r.Context(), req)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, result)
}

// ListSales handles GET /api/v1/sales with optional from/to RFC 3339 bounds.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	from, ok := timeParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := timeParam(w, r, "to")
	if !ok {
		return
	}
	list, err := h.service.ListSales(r.Context(), from, to)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": list})
}

// GetSale handles GET /api/v1/sales/{id}.
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		common.WriteError(w, common.ValidationError("id must be a positive integer"))
		return
	}
	sale, err := h.service.GetSale(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": sale})
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"
	if appErr, ok := common.AsAppError(err); ok {
		if appErr.HTTPStatus != 0 {
			status = appErr.HTTPStatus
		}
		if appErr.Message != "" {
			message = appErr.Message
		}
	}
	common.JSON(w, status, map[string]any{"success": false, "error": message})
}

func timeParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		common.WriteError(w, common.ValidationError(name+" must be RFC 3339"))
		return time.Time{}, false
	}
	return t, true
}
