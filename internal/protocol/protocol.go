// Package protocol defines the live-connection wire contract: every event
// exchanged over a websocket is an Envelope carrying a typed payload keyed by
// event name.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EventType names one message of the live-connection protocol.
type EventType string

// Client-to-server events.
const (
	EventRegisterSocket   EventType = "register_socket"
	EventSendOrder        EventType = "send_order"
	EventAcknowledgeOrder EventType = "acknowledge_order"
	EventRejectOrder      EventType = "reject_order"
	EventItemAcknowledged EventType = "item_acknowledged"
	EventItemRejected     EventType = "item_rejected"
)

// Server-to-client events.
const (
	EventOrderSaved              EventType = "order_saved"
	EventQueueFull               EventType = "queue_full"
	EventOrderError              EventType = "order_error"
	EventOrderListUpdated        EventType = "order_list_updated"
	EventOrderAcknowledged       EventType = "order_acknowledged"
	EventOrderRejected           EventType = "order_rejected"
	EventSenderItemAcknowledged  EventType = "sender_item_acknowledged"
	EventSenderItemRejected      EventType = "sender_item_rejected"
	EventPairRequestReceived     EventType = "pair_request_received"
	EventPairRequestAccepted     EventType = "pair_request_accepted"
	EventPairRequestRejected     EventType = "pair_request_rejected"
)

// ErrUnknownEvent signals an event name outside the contract.
var ErrUnknownEvent = errors.New("unknown protocol event")

// Envelope frames every message on the wire.
type Envelope struct {
	Event   EventType       `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals payload into an Envelope. A nil payload produces an
// envelope with the event name only (e.g. queue_full).
func NewEnvelope(event EventType, payload any) (Envelope, error) {
	env := Envelope{Event: event}
	if payload == nil {
		return env, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	env.Payload = data
	return env, nil
}

// RegisterPayload binds a connection to a user.
type RegisterPayload struct {
	UserID int64 `json:"userId"`
}

// SendOrderPayload submits a new order. TempID is a client-supplied
// correlation token echoed back in order_saved.
type SendOrderPayload struct {
	Items    map[string]int `json:"items"`
	SenderID int64          `json:"senderId"`
	TempID   string         `json:"tempId"`
}

// OrderActionPayload resolves a whole order.
type OrderActionPayload struct {
	OrderID    int64 `json:"orderId"`
	ReceiverID int64 `json:"receiverId"`
}

// ItemActionPayload carries per-item feedback from the receiver.
type ItemActionPayload struct {
	OrderID    int64  `json:"orderId"`
	ItemName   string `json:"itemName"`
	ReceiverID int64  `json:"receiverId"`
}

// OrderSavedPayload acknowledges order creation to the sender.
type OrderSavedPayload struct {
	TempID  string `json:"tempId"`
	OrderID int64  `json:"dbId"`
}

// OrderErrorPayload reports a failed send so the sender can revert its
// optimistic UI state.
type OrderErrorPayload struct {
	Message string `json:"message"`
}

// OrderResolvedPayload notifies the sender of a terminal transition.
type OrderResolvedPayload struct {
	OrderID int64 `json:"orderId"`
}

// ItemFeedbackPayload relays one per-item signal to the sender.
type ItemFeedbackPayload struct {
	OrderID      int64  `json:"orderId"`
	ItemName     string `json:"itemName"`
	ReceiverName string `json:"receiverName"`
}

// FeedbackEntry is one entry of an order's per-item feedback log.
type FeedbackEntry struct {
	ItemName  string    `json:"itemName"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderSummary is the wire shape of an order inside order_list_updated.
type OrderSummary struct {
	ID         int64           `json:"id"`
	Items      map[string]int  `json:"items"`
	Status     string          `json:"status"`
	SenderID   int64           `json:"senderId"`
	ReceiverID int64           `json:"receiverId"`
	CreatedAt  time.Time       `json:"createdAt"`
	Feedback   []FeedbackEntry `json:"itemFeedback,omitempty"`
}

// PairRequestPayload announces a pairing event to the counterpart.
type PairRequestPayload struct {
	UserID      int64  `json:"userId"`
	DisplayName string `json:"displayName"`
	Message     string `json:"message,omitempty"`
}

// DecodeRegister parses a register_socket payload.
func DecodeRegister(env Envelope) (RegisterPayload, error) {
	var p RegisterPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return RegisterPayload{}, fmt.Errorf("decode register_socket: %w", err)
	}
	return p, nil
}

// DecodeSendOrder parses a send_order payload.
func DecodeSendOrder(env Envelope) (SendOrderPayload, error) {
	var p SendOrderPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return SendOrderPayload{}, fmt.Errorf("decode send_order: %w", err)
	}
	return p, nil
}

// DecodeOrderAction parses acknowledge_order and reject_order payloads.
func DecodeOrderAction(env Envelope) (OrderActionPayload, error) {
	var p OrderActionPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return OrderActionPayload{}, fmt.Errorf("decode %s: %w", env.Event, err)
	}
	return p, nil
}

// DecodeItemAction parses item_acknowledged and item_rejected payloads.
func DecodeItemAction(env Envelope) (ItemActionPayload, error) {
	var p ItemActionPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return ItemActionPayload{}, fmt.Errorf("decode %s: %w", env.Event, err)
	}
	return p, nil
}

// Inbound reports whether the event may legally arrive from a client.
func Inbound(event EventType) bool {
	switch event {
	case EventRegisterSocket, EventSendOrder, EventAcknowledgeOrder,
		EventRejectOrder, EventItemAcknowledged, EventItemRejected:
		return true
	default:
		return false
	}
}
