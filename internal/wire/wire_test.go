package wire

import "testing"

func TestDecodeEmptyPayloadIsNoop(t *testing.T) {
	var p JoinTablePayload
	if err := Decode(Envelope{Type: TypeJoinTable}, &p); err != nil {
		t.Fatalf("Decode empty payload: %v", err)
	}
	if p.PlayerID != "" {
		t.Fatalf("expected zero value, got %+v", p)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	env := Encode(TypeAction, ActionPayload{PlayerID: "a@example.com", Action: ActionRaise, Amount: 30})

	var p ActionPayload
	if err := Decode(env, &p); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.PlayerID != "a@example.com" || p.Action != ActionRaise || p.Amount != 30 {
		t.Fatalf("round trip mismatch: %+v", p)
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	env := Envelope{Type: TypeAction, Payload: []byte("not json")}
	var p ActionPayload
	if err := Decode(env, &p); err == nil {
		t.Fatalf("expected decode error for malformed payload")
	}
}

func TestNewErrorEnvelope(t *testing.T) {
	env := NewError("bad seat")
	if env.Type != TypeError {
		t.Fatalf("expected type %q, got %q", TypeError, env.Type)
	}
	var p ErrorPayload
	if err := Decode(env, &p); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Message != "bad seat" {
		t.Fatalf("expected message %q, got %q", "bad seat", p.Message)
	}
}
