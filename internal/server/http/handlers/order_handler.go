package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/m-orlov/pairlist/internal/domain/model"
	"github.com/m-orlov/pairlist/internal/server/http/dto"
)

// OrderHandler serves order queue and history queries.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// PendingReceived handles GET /api/user/orders/pending.
func (h *OrderHandler) PendingReceived(c *gin.Context) {
	h.list(c, h.facade.PendingReceived)
}

// PendingSent handles GET /api/user/orders/sent.
func (h *OrderHandler) PendingSent(c *gin.Context) {
	h.list(c, h.facade.PendingSent)
}

// HistorySent handles GET /api/user/orders/history/sent.
func (h *OrderHandler) HistorySent(c *gin.Context) {
	h.list(c, h.facade.HistorySent)
}

// HistoryReceived handles GET /api/user/orders/history/received.
func (h *OrderHandler) HistoryReceived(c *gin.Context) {
	h.list(c, h.facade.HistoryReceived)
}

// Stats handles GET /api/user/orders/stats?role=sender|receiver.
func (h *OrderHandler) Stats(c *gin.Context) {
	role := model.Role(c.Query("role"))
	if !role.Valid() {
		c.Status(http.StatusBadRequest)
		return
	}

	userID := CurrentUserID(c)
	stats, err := h.facade.OrderStats(c.Request.Context(), userID, role)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		Acknowledged: stats.Acknowledged,
		Rejected:     stats.Rejected,
	})
}

func (h *OrderHandler) list(c *gin.Context, query func(ctx context.Context, userID int64) ([]model.Order, error)) {
	userID := CurrentUserID(c)
	orders, err := query(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:          order.ID,
		Items:       order.Items,
		Status:      string(order.Status),
		Counterpart: order.Counterpart,
		CreatedAt:   order.CreatedAt,
		CompletedAt: order.CompletedAt,
	}
	for _, f := range order.Feedback {
		resp.Feedback = append(resp.Feedback, dto.FeedbackEntryResponse{
			ItemName:  f.ItemName,
			Status:    string(f.Status),
			Timestamp: f.Timestamp,
		})
	}
	return resp
}
