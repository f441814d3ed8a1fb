package ahoy

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuildParseFrameRoundTrip(t *testing.T) {
	target := [4]byte{0x72, 0x22, 0x01, 0x43}
	source := [4]byte{0x43, 0x78, 0x56, 0x34}
	data := []byte{0x00, 0x62, 0x6E, 0x60, 0xEE, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 0x00}

	raw, err := BuildFragment(0x15, target, source, []byte{0x0B}, data)
	if err != nil {
		t.Fatalf("BuildFragment: %v", err)
	}

	f, err := ParseFrame(raw)
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if f.Preamble != 0x15 {
		t.Fatalf("Preamble = %#02x, want 0x15", f.Preamble)
	}
	if f.Target != target {
		t.Fatalf("Target = % x, want % x", f.Target, target)
	}
	if f.Source != source {
		t.Fatalf("Source = % x, want % x", f.Source, source)
	}
	if f.Seq != 0x0B {
		t.Fatalf("Seq = %#02x, want 0x0b", f.Seq)
	}
	if !bytes.Equal(f.Data, data) {
		t.Fatalf("Data = % x, want % x", f.Data, data)
	}
}

func TestParseFrameBadCRC(t *testing.T) {
	target := [4]byte{0x72, 0x22, 0x01, 0x43}
	source := [4]byte{0x43, 0x78, 0x56, 0x34}
	raw, err := BuildFragment(0x15, target, source, []byte{0x0B}, nil)
	if err != nil {
		t.Fatalf("BuildFragment: %v", err)
	}
	raw[len(raw)-1] ^= 0xFF

	_, err = ParseFrame(raw)
	if !errors.Is(err, ErrBadFrame) {
		t.Fatalf("ParseFrame() error = %v, want ErrBadFrame", err)
	}
}

func TestFrameTerminalBitAndCount(t *testing.T) {
	f := Frame{Seq: 0x83}
	if !f.IsTerminal() {
		t.Fatalf("expected terminal fragment")
	}
	if f.FragmentCount() != 3 {
		t.Fatalf("FragmentCount() = %d, want 3", f.FragmentCount())
	}

	f2 := Frame{Seq: 0x02}
	if f2.IsTerminal() {
		t.Fatalf("did not expect terminal fragment")
	}
}

func TestBuildFragmentRejectsOversizedData(t *testing.T) {
	var target, source [4]byte
	_, err := BuildFragment(0x15, target, source, []byte{0x0B}, make([]byte, 17))
	if err == nil {
		t.Fatalf("expected error for oversized data")
	}
}
