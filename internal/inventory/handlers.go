package inventory

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/phoneshop-api/internal/common"
)

// Handler exposes inventory endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AddPhone handles POST /api/v1/phones.
func (h *Handler) AddPhone(w http.ResponseWriter, r *http.Request) {
	var input PhoneInput
	if err := common.DecodeJSON(r, &input); err != nil {
		common.WriteError(w, err)
		return
	}
	phone, err := h.service.AddPhone(r.Context(), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": phone})
}

// ListPhones handles GET /api/v1/phones.
func (h *Handler) ListPhones(w http.ResponseWriter, r *http.Request) {
	phones, err := h.service.ListPhones(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": phones})
}

// GetPhone handles GET /api/v1/phones/{id}.
func (h *Handler) GetPhone(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	phone, err := h.service.GetPhone(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": phone})
}

// GetPhoneByBarcode handles GET /api/v1/phones/barcode/{number}.
func (h *Handler) GetPhoneByBarcode(w http.ResponseWriter, r *http.Request) {
	phone, err := h.service.GetPhoneByBarcode(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": phone})
}

// BarcodeImage handles GET /api/v1/phones/barcode/{number}/image. It
// serves the label PNG rendered at intake time.
func (h *Handler) BarcodeImage(w http.ResponseWriter, r *http.Request) {
	phone, err := h.service.GetPhoneByBarcode(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if phone.BarcodePath == "" {
		common.WriteError(w, common.NotFoundError("no label rendered for this phone"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, phone.BarcodePath)
}

// DeletePhone handles DELETE /api/v1/phones/{id}.
func (h *Handler) DeletePhone(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeletePhone(r.Context(), id); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Search handles GET /api/v1/search?q=&condition=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Search(r.Context(), r.URL.Query().Get("q"), r.URL.Query().Get("condition"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}

// AddAccessory handles POST /api/v1/accessories.
func (h *Handler) AddAccessory(w http.ResponseWriter, r *http.Request) {
	var input AccessoryInput
	if err := common.DecodeJSON(r, &input); err != nil {
		common.WriteError(w, err)
		return
	}
	accessory, err := h.service.AddAccessory(r.Context(), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": accessory})
}

// ListAccessories handles GET /api/v1/accessories.
func (h *Handler) ListAccessories(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.ListAccessories(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": listing})
}

// GetAccessory handles GET /api/v1/accessories/{id}.
func (h *Handler) GetAccessory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	accessory, err := h.service.GetAccessory(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": accessory})
}

// UpdateAccessory handles PUT /api/v1/accessories/{id}.
func (h *Handler) UpdateAccessory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input AccessoryInput
	if err := common.DecodeJSON(r, &input); err != nil {
		common.WriteError(w, err)
		return
	}
	accessory, err := h.service.UpdateAccessory(r.Context(), id, input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": accessory})
}

// DeleteAccessory handles DELETE /api/v1/accessories/{id}.
func (h *Handler) DeleteAccessory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteAccessory(r.Context(), id); err != nil {
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
