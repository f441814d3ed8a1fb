package ahoy

import "fmt"

// Frame is a parsed ESB fragment: preamble(1) || target(4) || source(4) ||
// opcode(1..k) || data(<=16) || crc8(1) (spec §3/§4.2).
//
// Accessor naming follows the on-air convention for a *reply*: Src is the
// address occupying the on-air target field and Dst the on-air source
// field, because a reply's target field carries the inverter's hm_addr
// (what the transaction filters its scratch set by) while the source field
// carries the DTU's. Requests are built with the opposite intent (target =
// inverter, source = DTU) via BuildFragment's explicit target/source
// parameters; only the parsed-reply accessors use the Src/Dst names (spec
// §4.2 rationale, DESIGN.md).
type Frame struct {
	Preamble byte
	Target   [4]byte
	Source   [4]byte
	Seq      byte
	Data     []byte
}

// MainCmd is the leading byte of Data, mirroring the original driver's
// main_cmd property. It is only meaningful on the terminal fragment of a
// reassembled reply.
func (f Frame) MainCmd() byte {
	if len(f.Data) == 0 {
		return 0
	}
	return f.Data[0]
}

// Src is the hm_addr occupying the on-air target field (see type doc).
func (f Frame) Src() [4]byte { return f.Target }

// Dst is the hm_addr occupying the on-air source field (see type doc).
func (f Frame) Dst() [4]byte { return f.Source }

// IsTerminal reports whether this fragment's sequence byte has the
// terminal bit (0x80) set.
func (f Frame) IsTerminal() bool { return f.Seq&0x80 != 0 }

// FragmentCount returns N, the total number of fragments, valid only when
// IsTerminal is true.
func (f Frame) FragmentCount() int { return int(f.Seq &^ 0x80) }

// BuildFragment assembles one ESB fragment's on-air bytes from its fields
// and appends the CRC-8 trailer (spec §4.2). opcode may be one or more
// bytes (a main command byte, optionally followed by a sub-command byte);
// data must be at most 16 bytes.
func BuildFragment(preamble byte, target, source [4]byte, opcode []byte, data []byte) ([]byte, error) {
	if len(data) > 16 {
		return nil, fmt.Errorf("ahoy: fragment data length %d exceeds 16 bytes", len(data))
	}
	buf := make([]byte, 0, 1+4+4+len(opcode)+len(data)+1)
	buf = append(buf, preamble)
	buf = append(buf, target[:]...)
	buf = append(buf, source[:]...)
	buf = append(buf, opcode...)
	buf = append(buf, data...)
	buf = append(buf, crc8(buf))
	return buf, nil
}

// ParseFrame validates the trailing CRC-8 and decodes the on-air layout
// into a Frame. Returns ErrBadFrame if the CRC does not match, or an error
// if b is too short to hold a valid fragment.
func ParseFrame(b []byte) (Frame, error) {
	// preamble(1) + target(4) + source(4) + seq(1) + crc8(1) is the minimum
	// frame: zero-length data is valid (e.g. retransmit requests).
	const minLen = 1 + 4 + 4 + 1 + 1
	if len(b) < minLen {
		return Frame{}, fmt.Errorf("ahoy: fragment too short: %d bytes", len(b))
	}
	want := crc8(b[:len(b)-1])
	got := b[len(b)-1]
	if want != got {
		return Frame{}, ErrBadFrame
	}
	var f Frame
	f.Preamble = b[0]
	copy(f.Target[:], b[1:5])
	copy(f.Source[:], b[5:9])
	f.Seq = b[9]
	data := b[10 : len(b)-1]
	if len(data) > 0 {
		f.Data = append([]byte(nil), data...)
	}
	return f, nil
}
