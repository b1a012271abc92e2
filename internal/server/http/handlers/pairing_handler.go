package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/server/http/dto"
)

// PairingHandler manages sender/receiver linkage endpoints.
type PairingHandler struct {
	facade PairingFacade
}

// NewPairingHandler constructs PairingHandler.
func NewPairingHandler(facade PairingFacade) *PairingHandler {
	return &PairingHandler{facade: facade}
}

// Search handles GET /api/user/pair/search?login=...
func (h *PairingHandler) Search(c *gin.Context) {
	login := c.Query("login")
	if login == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	candidate, err := h.facade.SearchReceiver(c.Request.Context(), userID, login)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrForbidden):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.PairCandidateResponse{
		ID:          candidate.ID,
		Login:       candidate.Login,
		DisplayName: candidate.DisplayName,
	})
}

// Request handles POST /api/user/pair/request.
func (h *PairingHandler) Request(c *gin.Context) {
	h.resolve(c, h.facade.RequestPair)
}

// Accept handles POST /api/user/pair/accept.
func (h *PairingHandler) Accept(c *gin.Context) {
	h.resolve(c, h.facade.AcceptPair)
}

// Reject handles POST /api/user/pair/reject.
func (h *PairingHandler) Reject(c *gin.Context) {
	h.resolve(c, h.facade.RejectPair)
}

// Requests handles GET /api/user/pair/requests.
func (h *PairingHandler) Requests(c *gin.Context) {
	userID := CurrentUserID(c)
	requests, err := h.facade.PairRequests(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.PairRequestResponse, 0, len(requests))
	for _, r := range requests {
		response = append(response, dto.PairRequestResponse{
			SenderID:    r.SenderID,
			Login:       r.Login,
			DisplayName: r.DisplayName,
			RequestedAt: r.RequestedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *PairingHandler) resolve(c *gin.Context, op func(ctx context.Context, userID, targetID int64) error) {
	var req dto.PairTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	if err := op(c.Request.Context(), userID, req.UserID); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrForbidden), errors.Is(err, domainErrors.ErrInvalidRole):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}
