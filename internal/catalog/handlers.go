package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/phoneshop-api/internal/common"
)

// Handler exposes catalog reference endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Brands handles GET /api/v1/phone-types/brands.
func (h *Handler) Brands(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.service.Brands(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": grouped})
}

// ListPhoneTypes handles GET /api/v1/phone-types.
func (h *Handler) ListPhoneTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListPhoneTypes(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": types})
}

// AddPhoneType handles POST /api/v1/phone-types.
func (h *Handler) AddPhoneType(w http.ResponseWriter, r *http.Request) {
	var input PhoneTypeInput
	if err := common.DecodeJSON(r, &input); err != nil {
		common.WriteError(w, err)
		return
	}
	pt, err := h.service.AddPhoneType(r.Context(), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": pt})
}

// DeletePhoneType handles DELETE /api/v1/phone-types/{id}.
func (h *Handler) DeletePhoneType(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeletePhoneType(r.Context(), id); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// ListCategories handles GET /api/v1/accessory-categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": categories})
}

// AddCategory handles POST /api/v1/accessory-categories.
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var input CategoryInput
	if err := common.DecodeJSON(r, &input); err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.service.AddCategory(r.Context(), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": c})
}

// UpdateCategory handles PUT /api/v1/accessory-categories/{id}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input CategoryInput
	if err := common.DecodeJSON(r, &input); err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), id, input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// DeleteCategory handles DELETE /api/v1/accessory-categories/{id}.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		common.WriteError(w, common.ValidationError("id must be a positive integer"))
		return 0, false
	}
	return id, true
}
