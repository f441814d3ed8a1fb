package decode

import (
	"fmt"

	"github.com/Sprinterfreak/ahoy"
)

// statusTable and eventsTable together form the explicit decoder dispatch
// table this package uses in place of the original driver's
// reflection-based lookup by decoder class name (spec §4.6, REDESIGN FLAGS
// "dynamic reflection on decoder class names"). Status replies dispatch by
// family alone (main command is always 0x0B); events replies dispatch by
// command alone (the chunk layout does not vary by family, so every entry
// points at the same DecodeEvents).
var statusTable = map[ahoy.Family]StatusDecoder{
	ahoy.FamilyHM300:  DecodeHM300Status,
	ahoy.FamilyHM600:  DecodeHM600Status,
	ahoy.FamilyHM1200: DecodeHM1200Status,
}

// eventsTable are the main command bytes that route to the events decoder
// regardless of family (spec §4.6).
var eventsTable = map[byte]EventsDecoder{
	0x01: DecodeEvents,
	0x02: DecodeEvents,
	0x11: DecodeEvents,
	0x12: DecodeEvents,
}

// Dispatch selects a decoder for (family, mainCmd) and applies it to
// payload. Status replies (main command 0x0B) return a populated Telemetry
// and a nil events slice; events replies (0x01/0x02/0x11/0x12) return a
// zero Telemetry and the decoded events. Returns ahoy.ErrUnsupportedReply if
// no decoder matches and debug is false.
func Dispatch(family ahoy.Family, mainCmd byte, payload []byte, debug bool) (ahoy.Telemetry, []ahoy.EventRecord, error) {
	if dec, ok := eventsTable[mainCmd]; ok {
		events, err := dec(payload)
		return ahoy.Telemetry{}, events, err
	}

	if mainCmd == 0x0B {
		if dec, ok := statusTable[family]; ok {
			t, err := dec(payload)
			return t, nil, err
		}
	}

	if debug {
		return ahoy.Telemetry{}, nil, fmt.Errorf("decode: no decoder for family=%v cmd=%#02x, payload=% x", family, mainCmd, payload)
	}

	return ahoy.Telemetry{}, nil, fmt.Errorf("%w: family=%v cmd=%#02x", ahoy.ErrUnsupportedReply, family, mainCmd)
}
