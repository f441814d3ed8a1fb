package ahoy

import (
	"encoding/binary"
	"fmt"
)

// composerMTU is the canonical per-fragment data size for multi-fragment
// requests. The original driver's single-fragment path used MTU=17 while
// its multi-fragment path used MTU=16 (spec §9 Open Questions); 16 is
// canonicalized here and used for every fragment Composer emits.
const composerMTU = 16

// endpointKind distinguishes the two ways a Composer can be told a frame
// endpoint: a serial number to derive hm_addr from, or an already-known
// hm_addr (spec §9 Open Questions: the retransmit helper's composer takes
// either, with an explicit tag).
type endpointKind int

const (
	endpointSerial endpointKind = iota
	endpointAddr
)

// Endpoint names one side (target or source) of a composed frame.
type Endpoint struct {
	kind   endpointKind
	serial uint64
	addr   [4]byte
}

// Serial builds an Endpoint from a decimal inverter or DTU serial number.
func Serial(serial uint64) Endpoint {
	return Endpoint{kind: endpointSerial, serial: serial}
}

// Addr builds an Endpoint from an already-derived 4-byte hm_addr.
func Addr(addr [4]byte) Endpoint {
	return Endpoint{kind: endpointAddr, addr: addr}
}

func (e Endpoint) hmAddr() [4]byte {
	if e.kind == endpointAddr {
		return e.addr
	}
	return SerialToHMAddr(e.serial)
}

// Composer splits a logical command payload into a sequence of ESB
// fragments addressed between two endpoints (spec §4.3).
type Composer struct {
	Preamble byte
	Target   Endpoint
	Source   Endpoint
}

// NewComposer returns a Composer with the request preamble (0x15) used for
// DTU-to-inverter traffic.
func NewComposer(target, source Endpoint) Composer {
	return Composer{Preamble: 0x15, Target: target, Source: source}
}

// Compose appends a Modbus CRC-16 trailer to payload (payload's first byte
// is expected to already be the main command byte, per spec §4.3's set-time
// example) and splits the result into composerMTU-byte fragments, numbered
// 1..N with the terminal fragment's sequence byte OR-ed with 0x80.
func (c Composer) Compose(payload []byte) ([][]byte, error) {
	crc := crc16Modbus(payload)
	full := make([]byte, len(payload)+2)
	copy(full, payload)
	binary.BigEndian.PutUint16(full[len(payload):], crc)

	n := (len(full) + composerMTU - 1) / composerMTU
	if n == 0 {
		n = 1
	}
	if n > 0x7F {
		return nil, fmt.Errorf("ahoy: payload requires %d fragments, exceeds 127", n)
	}

	target := c.Target.hmAddr()
	source := c.Source.hmAddr()

	fragments := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		start := i * composerMTU
		end := start + composerMTU
		if end > len(full) {
			end = len(full)
		}
		seq := byte(i + 1)
		if i == n-1 {
			seq = 0x80 | byte(n)
		}
		frag, err := BuildFragment(c.Preamble, target, source, []byte{seq}, full[start:end])
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, frag)
	}
	return fragments, nil
}

// ComposeSetTimePayload builds the logical "set time" command payload for
// timestamp (seconds since the Unix epoch), per spec §8 scenario 3. The
// trailing CRC-16 is appended by Composer.Compose, not by this function.
func ComposeSetTimePayload(timestamp uint32) []byte {
	payload := make([]byte, 14)
	payload[0] = 0x0B
	payload[1] = 0x00
	binary.BigEndian.PutUint32(payload[2:6], timestamp)
	// Trailing fixed fields observed in the original driver: a 5-second
	// grace window followed by four reserved zero bytes.
	copy(payload[6:], []byte{0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 0x00})
	return payload
}

// BuildRetransmitRequest builds a zero-data fragment requesting retransmit
// of fragment seq (spec §4.4 "Retransmit request"). opcode is 0x80+seq.
func BuildRetransmitRequest(target, source Endpoint, seq int) ([]byte, error) {
	return BuildFragment(0x15, target.hmAddr(), source.hmAddr(), []byte{byte(0x80 + seq)}, nil)
}
