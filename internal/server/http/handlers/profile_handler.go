package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
	"github.com/m-orlov/pairlist/internal/server/http/dto"
)

// ProfileHandler serves account queries and maintenance.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Me handles GET /api/user/me.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := CurrentUserID(c)
	user, err := h.facade.Profile(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(user))
}

// Update handles PATCH /api/user/profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	err := h.facade.UpdateProfile(c.Request.Context(), userID, req.DisplayName, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}

// RegisterPush handles POST /api/user/profile/push.
func (h *ProfileHandler) RegisterPush(c *gin.Context) {
	var req dto.PushEndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	if err := h.facade.RegisterPushEndpoint(c.Request.Context(), userID, req.Endpoint); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// Delete handles DELETE /api/user/profile.
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID := CurrentUserID(c)
	if err := h.facade.DeleteAccount(c.Request.Context(), userID); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func toProfileResponse(user *model.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:          user.ID,
		Login:       user.Login,
		Role:        string(user.Role),
		DisplayName: user.DisplayName,
		PartnerID:   user.PartnerID,
		Categories:  user.Categories,
		CustomItems: user.CustomItems,
	}
}
