package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
	"github.com/m-orlov/pairlist/internal/server/http/dto"
)

// PresetHandler manages saved order templates, categories and custom items.
type PresetHandler struct {
	facade PresetFacade
}

// NewPresetHandler constructs PresetHandler.
func NewPresetHandler(facade PresetFacade) *PresetHandler {
	return &PresetHandler{facade: facade}
}

// List handles GET /api/user/presets.
func (h *PresetHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	presets, err := h.facade.Presets(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.PresetResponse, 0, len(presets))
	for _, p := range presets {
		response = append(response, toPresetResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/user/presets.
func (h *PresetHandler) Create(c *gin.Context) {
	var req dto.PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	preset, err := h.facade.CreatePreset(c.Request.Context(), userID, req.Name, req.Category, toPresetItems(req.Items))
	if err != nil {
		h.writePresetError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPresetResponse(*preset))
}

// Update handles PUT /api/user/presets/:id.
func (h *PresetHandler) Update(c *gin.Context) {
	presetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	preset, err := h.facade.UpdatePreset(c.Request.Context(), userID, presetID, req.Name, req.Category, toPresetItems(req.Items))
	if err != nil {
		h.writePresetError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPresetResponse(*preset))
}

// Delete handles DELETE /api/user/presets/:id.
func (h *PresetHandler) Delete(c *gin.Context) {
	presetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	if err := h.facade.DeletePreset(c.Request.Context(), userID, presetID); err != nil {
		h.writePresetError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCategory handles POST /api/user/categories.
func (h *PresetHandler) AddCategory(c *gin.Context) {
	h.applyName(c, h.facade.AddCategory, http.StatusCreated)
}

// RemoveCategory handles DELETE /api/user/categories/:name.
func (h *PresetHandler) RemoveCategory(c *gin.Context) {
	userID := CurrentUserID(c)
	if err := h.facade.RemoveCategory(c.Request.Context(), userID, c.Param("name")); err != nil {
		h.writePresetError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCustomItem handles POST /api/user/items.
func (h *PresetHandler) AddCustomItem(c *gin.Context) {
	h.applyName(c, h.facade.AddCustomItem, http.StatusCreated)
}

// RemoveCustomItem handles DELETE /api/user/items/:name.
func (h *PresetHandler) RemoveCustomItem(c *gin.Context) {
	userID := CurrentUserID(c)
	if err := h.facade.RemoveCustomItem(c.Request.Context(), userID, c.Param("name")); err != nil {
		h.writePresetError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PresetHandler) applyName(c *gin.Context, op func(ctx context.Context, userID int64, name string) error, okStatus int) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	if err := op(c.Request.Context(), userID, req.Name); err != nil {
		h.writePresetError(c, err)
		return
	}
	c.Status(okStatus)
}

func (h *PresetHandler) writePresetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidItems):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrLimitReached):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toPresetItems(items []dto.PresetItemPayload) []model.PresetItem {
	out := make([]model.PresetItem, 0, len(items))
	for _, item := range items {
		out = append(out, model.PresetItem{Name: item.Name, Quantity: item.Quantity})
	}
	return out
}

func toPresetResponse(preset model.Preset) dto.PresetResponse {
	resp := dto.PresetResponse{
		ID:       preset.ID,
		Name:     preset.Name,
		Category: preset.Category,
	}
	for _, item := range preset.Items {
		resp.Items = append(resp.Items, dto.PresetItemPayload{Name: item.Name, Quantity: item.Quantity})
	}
	return resp
}
