package decode

import "testing"

func TestDecodeEventsSingleChunk(t *testing.T) {
	// Header bytes (offset 0-1) are opaque to the events decoder; the
	// chunk itself starts at offset 2 (spec §4.8, §8 scenario 6).
	payload := []byte{
		0x00, 0x00, // header, ignored
		0x01, 0x01, 0x00, 0x01, 0x00, 0x2C, 0x03, 0xE8, 0x00, 0xD8, 0x00, 0x06,
	}

	records, err := DecodeEvents(payload)
	if err != nil {
		t.Fatalf("DecodeEvents: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	r := records[0]
	if r.Opcode != 1 {
		t.Errorf("Opcode = %d, want 1", r.Opcode)
	}
	if r.AlarmCode != 1 {
		t.Errorf("AlarmCode = %d, want 1", r.AlarmCode)
	}
	if r.AlarmText != "Inverter start" {
		t.Errorf("AlarmText = %q, want %q", r.AlarmText, "Inverter start")
	}
	if r.AlarmCount != 1 {
		t.Errorf("AlarmCount = %d, want 1", r.AlarmCount)
	}
	if r.Uptime1 != 44 {
		t.Errorf("Uptime1 = %d, want 44", r.Uptime1)
	}
	if r.Uptime2 != 1000 {
		t.Errorf("Uptime2 = %d, want 1000", r.Uptime2)
	}
}

func TestDecodeEventsStripsTrailingCRC(t *testing.T) {
	// Same chunk as TestDecodeEventsSingleChunk, but with its Modbus CRC-16
	// still attached, as a direct caller bypassing Transaction.GetPayload
	// (which already strips it) would see.
	payload := []byte{
		0x00, 0x00,
		0x01, 0x01, 0x00, 0x01, 0x00, 0x2C, 0x03, 0xE8, 0x00, 0xD8, 0x00, 0x06,
		0x71, 0xD2,
	}

	records, err := DecodeEvents(payload)
	if err != nil {
		t.Fatalf("DecodeEvents: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].AlarmCode != 1 {
		t.Errorf("AlarmCode = %d, want 1", records[0].AlarmCode)
	}
}

func TestAlarmTextUnknownCode(t *testing.T) {
	if got := AlarmText(0xFFFF); got != "N/A" {
		t.Errorf("AlarmText(unknown) = %q, want N/A", got)
	}
}
