package ahoy

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Family identifies an inverter's HM-300/600/1200 generation, distinguished
// by the decimal serial prefix (GLOSSARY, spec §4.1).
type Family int

const (
	FamilyUnknown Family = iota
	FamilyHM300
	FamilyHM600
	FamilyHM1200
)

func (f Family) String() string {
	switch f {
	case FamilyHM300:
		return "HM300"
	case FamilyHM600:
		return "HM600"
	case FamilyHM1200:
		return "HM1200"
	default:
		return "unknown"
	}
}

// SerialToHMAddr takes the last 8 decimal digits of a serial, interprets them
// as hexadecimal (BCD-style), and returns the resulting 4-byte big-endian
// on-air address (spec §3/§4.1).
func SerialToHMAddr(serial uint64) [4]byte {
	s := strconv.FormatUint(serial, 10)
	if len(s) > 8 {
		s = s[len(s)-8:]
	}
	bcd, _ := strconv.ParseUint(s, 16, 32)
	var addr [4]byte
	binary.BigEndian.PutUint32(addr[:], uint32(bcd))
	return addr
}

// SerialToESBAddr derives the 5-byte Enhanced ShockBurst pipe address for a
// serial: hm_addr reversed, with 0x01 appended, reversed again — equivalently
// 0x01 || hm_addr (spec §3).
func SerialToESBAddr(serial uint64) [5]byte {
	hm := SerialToHMAddr(serial)
	var esb [5]byte
	esb[0] = 0x01
	copy(esb[1:], hm[:])
	return esb
}

// AddrToESBAddr derives the 5-byte ESB pipe address directly from an already
// computed 4-byte hm_addr, for callers that hold a cached address instead of
// a serial (spec §9 Open Questions, composer interface).
func AddrToESBAddr(addr [4]byte) [5]byte {
	var esb [5]byte
	esb[0] = 0x01
	copy(esb[1:], addr[:])
	return esb
}

// ClassifyFamily determines the inverter family from a decimal serial's
// prefix: 1121 -> HM300, 1141 -> HM600, 1161 -> HM1200. Returns
// ErrUnknownModel for any other prefix.
func ClassifyFamily(serial uint64) (Family, error) {
	s := strconv.FormatUint(serial, 10)
	switch {
	case len(s) >= 4 && s[:4] == "1121":
		return FamilyHM300, nil
	case len(s) >= 4 && s[:4] == "1141":
		return FamilyHM600, nil
	case len(s) >= 4 && s[:4] == "1161":
		return FamilyHM1200, nil
	default:
		return FamilyUnknown, fmt.Errorf("%w: serial %d", ErrUnknownModel, serial)
	}
}

// FormatAddr renders a serial alongside its derived hm_addr and ESB address,
// matching the original driver's print_addr debug helper.
func FormatAddr(serial uint64) string {
	hm := SerialToHMAddr(serial)
	esb := SerialToESBAddr(serial)
	return fmt.Sprintf("ser# %d -> HM %s -> ESB %s", serial, hexBytes(hm[:]), hexBytes(esb[:]))
}

func hexBytes(b []byte) string {
	out := make([]byte, 0, len(b)*3)
	for i, v := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		const hexdigits = "0123456789abcdef"
		out = append(out, hexdigits[v>>4], hexdigits[v&0xf])
	}
	return string(out)
}
