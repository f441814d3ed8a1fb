// Package decode turns reassembled inverter payloads into telemetry
// records, selecting a decoder by (family, main command) through an
// explicit dispatch table rather than reflection on class names (spec
// §4.6, REDESIGN FLAGS).
package decode

import "github.com/Sprinterfreak/ahoy"

// StatusDecoder reads a reassembled 0x0B status payload into a Telemetry
// record using straight-line field reads at fixed offsets (spec §4.7,
// REDESIGN FLAGS "property-based field accessors over offsets").
type StatusDecoder func(payload []byte) (ahoy.Telemetry, error)

// EventsDecoder reads a reassembled events/alarm-log payload into a
// sequence of EventRecords (spec §4.8).
type EventsDecoder func(payload []byte) ([]ahoy.EventRecord, error)

func u16(b []byte, off int) uint16 {
	return uint16(b[off])<<8 | uint16(b[off+1])
}

func u32(b []byte, off int) uint32 {
	return uint32(b[off])<<24 | uint32(b[off+1])<<16 | uint32(b[off+2])<<8 | uint32(b[off+3])
}
