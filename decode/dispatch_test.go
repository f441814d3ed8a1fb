package decode

import (
	"errors"
	"testing"

	"github.com/Sprinterfreak/ahoy"
)

func TestDispatchStatus(t *testing.T) {
	payload := make([]byte, 28)
	tel, events, err := Dispatch(ahoy.FamilyHM300, 0x0B, payload, false)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if events != nil {
		t.Fatalf("expected nil events for status dispatch")
	}
	if len(tel.Strings) != 1 {
		t.Fatalf("len(Strings) = %d, want 1", len(tel.Strings))
	}
}

func TestDispatchEvents(t *testing.T) {
	payload := make([]byte, 14)
	_, events, err := Dispatch(ahoy.FamilyHM600, 0x01, payload, false)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
}

func TestDispatchUnsupported(t *testing.T) {
	_, _, err := Dispatch(ahoy.FamilyHM300, 0x99, nil, false)
	if !errors.Is(err, ahoy.ErrUnsupportedReply) {
		t.Fatalf("Dispatch() error = %v, want ErrUnsupportedReply", err)
	}
}
