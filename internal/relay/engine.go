// Package relay implements the order state machine over the live-connection
// protocol: it accepts inbound events, mutates the order store, and emits
// outbound events to the right connections via the presence registry.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/m-orlov/pairlist/internal/domain/errors"
	"github.com/m-orlov/pairlist/internal/domain/model"
	"github.com/m-orlov/pairlist/internal/domain/repository"
	"github.com/m-orlov/pairlist/internal/presence"
	"github.com/m-orlov/pairlist/internal/protocol"
)

// Notifier fires a best-effort out-of-band alert to a user. Implementations
// must never block or fail the calling event.
type Notifier interface {
	Notify(userID int64, title, body string)
}

// Engine is the relay state machine. It is the only writer of order state;
// malformed or stale client events (unknown order, wrong role, no partner)
// are logged and dropped without an error to the emitting client, since a
// lagging UI is expected during normal operation.
type Engine struct {
	users     repository.UserRepository
	orders    repository.OrderRepository
	registry  *presence.Registry
	admission *Admission
	retention *Retention
	notifier  Notifier
	logger    *slog.Logger
}

// NewEngine constructs the relay engine.
func NewEngine(
	users repository.UserRepository,
	orders repository.OrderRepository,
	registry *presence.Registry,
	admission *Admission,
	retention *Retention,
	notifier Notifier,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		users:     users,
		orders:    orders,
		registry:  registry,
		admission: admission,
		retention: retention,
		notifier:  notifier,
		logger:    logger,
	}
}

// HandleEvent dispatches one inbound event from a registered connection.
// userID is the identity bound to conn via register_socket.
func (e *Engine) HandleEvent(ctx context.Context, conn presence.Conn, userID int64, env protocol.Envelope) {
	switch env.Event {
	case protocol.EventSendOrder:
		payload, err := protocol.DecodeSendOrder(env)
		if err != nil {
			e.logger.Warn("dropped malformed event", slog.String("event", string(env.Event)), slog.String("error", err.Error()))
			return
		}
		e.sendOrder(ctx, conn, userID, payload)
	case protocol.EventAcknowledgeOrder:
		payload, err := protocol.DecodeOrderAction(env)
		if err != nil {
			e.logger.Warn("dropped malformed event", slog.String("event", string(env.Event)), slog.String("error", err.Error()))
			return
		}
		e.resolveOrder(ctx, userID, payload.OrderID, model.OrderStatusAcknowledged)
	case protocol.EventRejectOrder:
		payload, err := protocol.DecodeOrderAction(env)
		if err != nil {
			e.logger.Warn("dropped malformed event", slog.String("event", string(env.Event)), slog.String("error", err.Error()))
			return
		}
		e.resolveOrder(ctx, userID, payload.OrderID, model.OrderStatusRejected)
	case protocol.EventItemAcknowledged:
		payload, err := protocol.DecodeItemAction(env)
		if err != nil {
			e.logger.Warn("dropped malformed event", slog.String("event", string(env.Event)), slog.String("error", err.Error()))
			return
		}
		e.itemFeedback(ctx, userID, payload, model.FeedbackAcknowledged)
	case protocol.EventItemRejected:
		payload, err := protocol.DecodeItemAction(env)
		if err != nil {
			e.logger.Warn("dropped malformed event", slog.String("event", string(env.Event)), slog.String("error", err.Error()))
			return
		}
		e.itemFeedback(ctx, userID, payload, model.FeedbackRejected)
	case protocol.EventRegisterSocket:
		// Registration is handled by the transport before dispatch.
	default:
		e.logger.Warn("dropped unexpected event", slog.String("event", string(env.Event)), slog.Int64("user_id", userID))
	}
}

func (e *Engine) sendOrder(ctx context.Context, conn presence.Conn, userID int64, payload protocol.SendOrderPayload) {
	// Identity comes from the registered connection; the payload's senderId
	// exists for client-side symmetry only.
	if payload.SenderID != 0 && payload.SenderID != userID {
		e.logger.Warn("send_order sender mismatch",
			slog.Int64("registered", userID), slog.Int64("claimed", payload.SenderID))
	}

	sender, err := e.users.GetByID(ctx, userID)
	if err != nil {
		e.logger.Warn("send_order from unknown user", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return
	}
	if sender.Role != model.RoleSender {
		e.logger.Warn("send_order from non-sender", slog.Int64("user_id", userID))
		return
	}
	if sender.PartnerID == nil {
		e.logger.Warn("send_order without partner", slog.Int64("user_id", userID))
		return
	}
	if !validItems(payload.Items) {
		e.logger.Warn("send_order with invalid items", slog.Int64("user_id", userID))
		return
	}
	receiverID := *sender.PartnerID

	ok, err := e.admission.CanAdmit(ctx, receiverID)
	if err != nil {
		e.logger.Error("admission check failed", slog.Int64("receiver_id", receiverID), slog.String("error", err.Error()))
		e.send(conn, protocol.EventOrderError, protocol.OrderErrorPayload{Message: "could not process your request"})
		return
	}
	if !ok {
		e.send(conn, protocol.EventQueueFull, nil)
		return
	}

	order, created, err := e.orders.Create(ctx, userID, receiverID, payload.Items, e.admission.Limit())
	if err != nil {
		e.logger.Error("order create failed", slog.Int64("sender_id", userID), slog.String("error", err.Error()))
		e.send(conn, protocol.EventOrderError, protocol.OrderErrorPayload{Message: "could not process your request"})
		return
	}
	if !created {
		// Lost the admission race to a concurrent send.
		e.send(conn, protocol.EventQueueFull, nil)
		return
	}

	e.send(conn, protocol.EventOrderSaved, protocol.OrderSavedPayload{TempID: payload.TempID, OrderID: order.ID})
	e.pushPendingList(ctx, receiverID)
	e.notifier.Notify(receiverID, "New order", fmt.Sprintf("%s sent you a new order", sender.DisplayName))

	e.logger.Info("order relayed",
		slog.Int64("order_id", order.ID),
		slog.Int64("sender_id", userID),
		slog.Int64("receiver_id", receiverID))
}

func (e *Engine) resolveOrder(ctx context.Context, userID, orderID int64, status model.OrderStatus) {
	// The conditional update both enforces receiver ownership and makes a
	// second resolution a no-op: no pending row, no transition, no side
	// effects repeated.
	order, err := e.orders.Complete(ctx, orderID, userID, status)
	if err != nil {
		if err == domainErrors.ErrNotFound {
			e.logger.Info("stale order resolution ignored",
				slog.Int64("order_id", orderID), slog.Int64("user_id", userID))
		} else {
			e.logger.Error("order resolution failed",
				slog.Int64("order_id", orderID), slog.String("error", err.Error()))
		}
		return
	}

	if err := e.retention.Trim(ctx, order.SenderID, model.RoleSender); err != nil {
		e.logger.Error("history trim failed", slog.Int64("user_id", order.SenderID), slog.String("error", err.Error()))
	}
	if err := e.retention.Trim(ctx, order.ReceiverID, model.RoleReceiver); err != nil {
		e.logger.Error("history trim failed", slog.Int64("user_id", order.ReceiverID), slog.String("error", err.Error()))
	}

	event := protocol.EventOrderAcknowledged
	verb := "acknowledged"
	if status == model.OrderStatusRejected {
		event = protocol.EventOrderRejected
		verb = "rejected"
	}
	if senderConn, ok := e.registry.Lookup(order.SenderID); ok {
		e.send(senderConn, event, protocol.OrderResolvedPayload{OrderID: order.ID})
	}

	e.pushPendingList(ctx, order.ReceiverID)
	e.notifier.Notify(order.SenderID, "Order "+verb, fmt.Sprintf("your order was %s", verb))

	e.logger.Info("order resolved",
		slog.Int64("order_id", order.ID),
		slog.String("status", string(status)))
}

func (e *Engine) itemFeedback(ctx context.Context, userID int64, payload protocol.ItemActionPayload, status model.FeedbackStatus) {
	receiver, err := e.users.GetByID(ctx, userID)
	if err != nil {
		e.logger.Warn("item feedback from unknown user", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return
	}

	order, err := e.orders.GetByID(ctx, payload.OrderID)
	if err != nil {
		e.logger.Info("item feedback for unknown order", slog.Int64("order_id", payload.OrderID))
		return
	}
	if order.ReceiverID != userID {
		e.logger.Warn("item feedback from non-receiver",
			slog.Int64("order_id", order.ID), slog.Int64("user_id", userID))
		return
	}

	entry := model.ItemFeedback{ItemName: payload.ItemName, Status: status, Timestamp: time.Now().UTC()}
	if err := e.orders.AppendFeedback(ctx, order.ID, entry); err != nil {
		e.logger.Error("append item feedback failed",
			slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
		return
	}

	event := protocol.EventSenderItemAcknowledged
	if status == model.FeedbackRejected {
		event = protocol.EventSenderItemRejected
	}
	if senderConn, ok := e.registry.Lookup(order.SenderID); ok {
		e.send(senderConn, event, protocol.ItemFeedbackPayload{
			OrderID:      order.ID,
			ItemName:     payload.ItemName,
			ReceiverName: receiver.DisplayName,
		})
	}
}

// PushPendingList delivers the receiver's current pending list to its live
// connection, oldest first, if one is registered.
func (e *Engine) PushPendingList(ctx context.Context, receiverID int64) {
	e.pushPendingList(ctx, receiverID)
}

func (e *Engine) pushPendingList(ctx context.Context, receiverID int64) {
	conn, ok := e.registry.Lookup(receiverID)
	if !ok {
		return
	}

	pending, err := e.orders.ListPending(ctx, receiverID, e.admission.Limit())
	if err != nil {
		e.logger.Error("pending list fetch failed",
			slog.Int64("receiver_id", receiverID), slog.String("error", err.Error()))
		return
	}

	summaries := make([]protocol.OrderSummary, 0, len(pending))
	for _, o := range pending {
		summaries = append(summaries, toSummary(o))
	}
	e.send(conn, protocol.EventOrderListUpdated, summaries)
}

// PairRequested pushes a live pairing request to the receiver and fires a
// best-effort push alert.
func (e *Engine) PairRequested(sender *model.User, receiverID int64) {
	if conn, ok := e.registry.Lookup(receiverID); ok {
		e.send(conn, protocol.EventPairRequestReceived, protocol.PairRequestPayload{
			UserID:      sender.ID,
			DisplayName: sender.DisplayName,
			Message:     fmt.Sprintf("%s wants to connect with you", sender.DisplayName),
		})
	}
	e.notifier.Notify(receiverID, "Pair request", fmt.Sprintf("%s wants to connect with you", sender.DisplayName))
}

// PairAccepted notifies the requesting sender that the receiver has linked up.
func (e *Engine) PairAccepted(receiver *model.User, senderID int64) {
	if conn, ok := e.registry.Lookup(senderID); ok {
		e.send(conn, protocol.EventPairRequestAccepted, protocol.PairRequestPayload{
			UserID:      receiver.ID,
			DisplayName: receiver.DisplayName,
			Message:     fmt.Sprintf("%s has accepted your request", receiver.DisplayName),
		})
	}
	e.notifier.Notify(senderID, "Pair request accepted", fmt.Sprintf("%s has accepted your request", receiver.DisplayName))
}

// PairRejected notifies the requesting sender of the rejection.
func (e *Engine) PairRejected(receiver *model.User, senderID int64) {
	if conn, ok := e.registry.Lookup(senderID); ok {
		e.send(conn, protocol.EventPairRequestRejected, protocol.PairRequestPayload{
			UserID:      receiver.ID,
			DisplayName: receiver.DisplayName,
			Message:     fmt.Sprintf("%s has rejected your request", receiver.DisplayName),
		})
	}
}

func (e *Engine) send(conn presence.Conn, event protocol.EventType, payload any) {
	env, err := protocol.NewEnvelope(event, payload)
	if err != nil {
		e.logger.Error("encode outbound event failed", slog.String("event", string(event)), slog.String("error", err.Error()))
		return
	}
	if !conn.Send(env) {
		e.logger.Warn("outbound event dropped, connection not keeping up",
			slog.String("event", string(event)), slog.String("conn_id", conn.ID()))
	}
}

func toSummary(o model.Order) protocol.OrderSummary {
	summary := protocol.OrderSummary{
		ID:         o.ID,
		Items:      o.Items,
		Status:     string(o.Status),
		SenderID:   o.SenderID,
		ReceiverID: o.ReceiverID,
		CreatedAt:  o.CreatedAt,
	}
	for _, fb := range o.Feedback {
		summary.Feedback = append(summary.Feedback, protocol.FeedbackEntry{
			ItemName:  fb.ItemName,
			Status:    string(fb.Status),
			Timestamp: fb.Timestamp,
		})
	}
	return summary
}

func validItems(items map[string]int) bool {
	if len(items) == 0 {
		return false
	}
	for name, qty := range items {
		if name == "" || qty <= 0 {
			return false
		}
	}
	return true
}
