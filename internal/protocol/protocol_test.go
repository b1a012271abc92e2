package protocol

import (
	"encoding/json"
	"testing"
)

func TestNewEnvelopeWithPayload(t *testing.T) {
	env, err := NewEnvelope(EventOrderSaved, OrderSavedPayload{TempID: "tmp-1", OrderID: 42})
	if err != nil {
		t.Fatalf("new envelope: %v", err)
	}
	if env.Event != EventOrderSaved {
		t.Fatalf("unexpected event: %s", env.Event)
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}

	var decoded Envelope
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	var payload OrderSavedPayload
	if err := json.Unmarshal(decoded.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.TempID != "tmp-1" || payload.OrderID != 42 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestNewEnvelopeWithoutPayload(t *testing.T) {
	env, err := NewEnvelope(EventQueueFull, nil)
	if err != nil {
		t.Fatalf("new envelope: %v", err)
	}
	if env.Payload != nil {
		t.Fatalf("expected nil payload, got %s", env.Payload)
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	if string(data) != `{"event":"queue_full"}` {
		t.Fatalf("unexpected wire form: %s", data)
	}
}

func TestDecodeSendOrder(t *testing.T) {
	raw := []byte(`{"event":"send_order","payload":{"items":{"milk":2,"bread":1},"senderId":7,"tempId":"c-1"}}`)
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	payload, err := DecodeSendOrder(env)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.SenderID != 7 || payload.TempID != "c-1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Items["milk"] != 2 || payload.Items["bread"] != 1 {
		t.Fatalf("unexpected items: %v", payload.Items)
	}
}

func TestDecodeSendOrderMalformed(t *testing.T) {
	env := Envelope{Event: EventSendOrder, Payload: json.RawMessage(`{"items":"nope"}`)}
	if _, err := DecodeSendOrder(env); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestDecodeRegister(t *testing.T) {
	env := Envelope{Event: EventRegisterSocket, Payload: json.RawMessage(`{"userId":11}`)}
	payload, err := DecodeRegister(env)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.UserID != 11 {
		t.Fatalf("unexpected user id: %d", payload.UserID)
	}
}

func TestDecodeOrderAction(t *testing.T) {
	env := Envelope{Event: EventAcknowledgeOrder, Payload: json.RawMessage(`{"orderId":3,"receiverId":2}`)}
	payload, err := DecodeOrderAction(env)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.OrderID != 3 || payload.ReceiverID != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDecodeItemAction(t *testing.T) {
	env := Envelope{Event: EventItemRejected, Payload: json.RawMessage(`{"orderId":3,"itemName":"milk","receiverId":2}`)}
	payload, err := DecodeItemAction(env)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.OrderID != 3 || payload.ItemName != "milk" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestInbound(t *testing.T) {
	inbound := []EventType{
		EventRegisterSocket, EventSendOrder, EventAcknowledgeOrder,
		EventRejectOrder, EventItemAcknowledged, EventItemRejected,
	}
	for _, event := range inbound {
		if !Inbound(event) {
			t.Errorf("expected %s to be inbound", event)
		}
	}

	outbound := []EventType{
		EventOrderSaved, EventQueueFull, EventOrderError, EventOrderListUpdated,
		EventOrderAcknowledged, EventOrderRejected, EventPairRequestReceived,
		EventType("made_up"),
	}
	for _, event := range outbound {
		if Inbound(event) {
			t.Errorf("did not expect %s to be inbound", event)
		}
	}
}
