package bot

import (
	"context"
	"errors"
	"testing"
)

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"27999999999", "5527999999999@c.us"},
		{"5527999999999", "5527999999999@c.us"},
		{"(27) 99999-9999", "5527999999999@c.us"},
		{"+55 27 99999-9999", "5527999999999@c.us"},
	}
	for _, tc := range cases {
		if got := formatPhone(tc.in); got != tc.want {
			t.Errorf("formatPhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEventStateMachine(t *testing.T) {
	c := New()

	c.handleEvent(gatewayEvent{Type: "qr", Code: "pairing-code"})
	st := c.Status()
	if st.Ready || st.QR != "pairing-code" {
		t.Fatalf("after qr event: %+v", st)
	}

	c.handleEvent(gatewayEvent{Type: "ready", Phone: "5527988887777"})
	st = c.Status()
	if !st.Ready || st.QR != "" || st.PhoneNumber != "5527988887777" {
		t.Fatalf("after ready event: %+v", st)
	}

	c.handleEvent(gatewayEvent{Type: "disconnected", Reason: "logout"})
	st = c.Status()
	if st.Ready || st.PhoneNumber != "" {
		t.Fatalf("after disconnected event: %+v", st)
	}
}

func TestSendRequiresReady(t *testing.T) {
	c := New()
	if err := c.SendMessage(context.Background(), "27999999999", "oi"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if err := c.SendGroupMessage(context.Background(), "group@g.us", "oi"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestQRPNG(t *testing.T) {
	c := New()
	if _, err := c.QRPNG(); err == nil {
		t.Fatal("expected error with no pending code")
	}

	c.handleEvent(gatewayEvent{Type: "qr", Code: "pairing-code"})
	png, err := c.QRPNG()
	if err != nil {
		t.Fatalf("QRPNG: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("expected PNG bytes")
	}
}
