package decode

import (
	"testing"
)

// putU16BE writes a big-endian u16 into b at off, for building synthetic
// status payloads that exercise a single field at its documented offset.
func putU16BE(b []byte, off int, v uint16) {
	b[off] = byte(v >> 8)
	b[off+1] = byte(v)
}

func TestDecodeHM600StatusFieldOffsets(t *testing.T) {
	payload := make([]byte, 42)
	putU16BE(payload, 2, 334)   // dc_voltage_0 = 33.4V
	putU16BE(payload, 4, 157)   // dc_current_0 = 1.57A
	putU16BE(payload, 6, 522)   // dc_power_0 = 52.2W
	putU16BE(payload, 8, 336)   // dc_voltage_1 = 33.6V
	putU16BE(payload, 26, 2274) // ac_voltage = 227.4V
	putU16BE(payload, 28, 5001) // ac_frequency = 50.01Hz
	putU16BE(payload, 38, 216)  // temperature = 21.6C

	tel, err := DecodeHM600Status(payload)
	if err != nil {
		t.Fatalf("DecodeHM600Status: %v", err)
	}

	approx := func(got, want, tol float64) bool {
		d := got - want
		if d < 0 {
			d = -d
		}
		return d <= tol
	}

	if len(tel.Strings) != 2 {
		t.Fatalf("len(Strings) = %d, want 2", len(tel.Strings))
	}
	s0 := tel.Strings[0]
	if !approx(s0.VoltageV, 33.4, 0.01) {
		t.Errorf("string0 voltage = %v, want 33.4", s0.VoltageV)
	}
	if !approx(s0.CurrentA, 1.57, 0.001) {
		t.Errorf("string0 current = %v, want 1.57", s0.CurrentA)
	}
	if !approx(s0.PowerW, 52.2, 0.01) {
		t.Errorf("string0 power = %v, want 52.2", s0.PowerW)
	}
	if !approx(tel.Strings[1].VoltageV, 33.6, 0.01) {
		t.Errorf("string1 voltage = %v, want 33.6", tel.Strings[1].VoltageV)
	}

	if len(tel.Phases) != 1 {
		t.Fatalf("len(Phases) = %d, want 1", len(tel.Phases))
	}
	ac := tel.Phases[0]
	if !approx(ac.VoltageV, 227.4, 0.01) {
		t.Errorf("AC voltage = %v, want 227.4", ac.VoltageV)
	}
	if !approx(tel.FrequencyHz, 50.01, 0.001) {
		t.Errorf("frequency = %v, want 50.01", tel.FrequencyHz)
	}
	if !approx(tel.TempC, 21.6, 0.01) {
		t.Errorf("temperature = %v, want 21.6", tel.TempC)
	}
	if tel.PowerFactor == nil {
		t.Fatalf("expected PowerFactor to be set for HM600")
	}
	if tel.EventCount == nil {
		t.Fatalf("expected EventCount to be set for HM600")
	}
}

func TestDecodeHM300StatusTooShort(t *testing.T) {
	if _, err := DecodeHM300Status(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for short payload")
	}
}

func TestDecodeHM1200DuplicateOffsets(t *testing.T) {
	payload := make([]byte, 62)
	// dc_voltage_0 at offset 2.
	payload[2], payload[3] = 0x01, 0x40 // 320 -> 32.0V
	tel, err := DecodeHM1200Status(payload)
	if err != nil {
		t.Fatalf("DecodeHM1200Status: %v", err)
	}
	if tel.Strings[0].VoltageV != tel.Strings[1].VoltageV {
		t.Fatalf("expected dc_voltage_1 to duplicate dc_voltage_0 verbatim: %v != %v",
			tel.Strings[0].VoltageV, tel.Strings[1].VoltageV)
	}
}
