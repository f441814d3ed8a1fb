package ahoy

import (
	"fmt"
	"strings"
)

// FormatFrame renders a parsed Frame as a human-readable one-liner for
// transaction/debug logging, in the spirit of the original driver's
// hexify_payload helper.
func FormatFrame(f Frame) string {
	return fmt.Sprintf("preamble=%#02x target=%s source=%s seq=%#02x data=%s",
		f.Preamble, hexBytes(f.Target[:]), hexBytes(f.Source[:]), f.Seq, hexBytes(f.Data))
}

// FieldView is one row of a debug field-view table: a byte offset, its
// raw bytes, and the big-endian u16 those bytes form.
type FieldView struct {
	Offset int
	Raw    []byte
	U16    uint16
}

// FormatFieldTable renders payload as a table of every 2-byte big-endian
// field offset, mirroring the original driver's print_table_unpack debug
// helper used when no decoder matches a reply (spec §4.6 "Debug decoder").
func FormatFieldTable(payload []byte) string {
	var b strings.Builder
	for off := 0; off+1 < len(payload); off += 2 {
		v := uint16(payload[off])<<8 | uint16(payload[off+1])
		fmt.Fprintf(&b, "%3d: %02x %02x  = %5d\n", off, payload[off], payload[off+1], v)
	}
	if len(payload)%2 == 1 {
		fmt.Fprintf(&b, "%3d: %02x\n", len(payload)-1, payload[len(payload)-1])
	}
	return b.String()
}
