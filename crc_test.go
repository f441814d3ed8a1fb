package ahoy

import "testing"

func TestCrc8CheckValue(t *testing.T) {
	// Standard CRC catalog "check" input, verified against the Williams
	// bit-by-bit model replicating crcmod.mkCrcFun(0x101, initCrc=0, xorOut=0).
	got := crc8([]byte("123456789"))
	if got != 0x31 {
		t.Fatalf("crc8(\"123456789\") = %#02x, want 0x31", got)
	}
}

func TestCrc16ModbusCheckValue(t *testing.T) {
	got := crc16Modbus([]byte("123456789"))
	if got != 0x4B37 {
		t.Fatalf("crc16Modbus(\"123456789\") = %#04x, want 0x4b37", got)
	}
}

func TestCrc8RoundTrip(t *testing.T) {
	data := []byte{0x15, 0x72, 0x22, 0x01, 0x43, 0x43, 0x78, 0x56, 0x34, 0x01}
	c := crc8(data)
	if crc8(append(append([]byte{}, data...), c)[:len(data)]) != c {
		t.Fatalf("crc8 not deterministic")
	}
}
