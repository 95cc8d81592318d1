package ledger

import (
	"net/http"
	"strconv"

	"github.com/noah-isme/phoneshop-api/internal/common"
)

// Handler exposes the transaction log.
type Handler struct {
	store Store
}

// NewHandler constructs a Handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List handles GET /api/v1/transactions?limit=50.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			common.WriteError(w, common.ValidationError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	entries, err := h.store.List(r.Context(), limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entries})
}
