package decode

import (
	"fmt"

	"github.com/Sprinterfreak/ahoy"
)

// DecodeHM300Status decodes a 0x0B status reply from an HM300 (single
// string, single phase) per the offset table in spec §4.7.
func DecodeHM300Status(payload []byte) (ahoy.Telemetry, error) {
	const minLen = 28
	if len(payload) < minLen {
		return ahoy.Telemetry{}, fmt.Errorf("decode: HM300 status payload too short: %d bytes", len(payload))
	}
	t := ahoy.Telemetry{
		Strings: []ahoy.DCString{
			{
				VoltageV:    float64(u16(payload, 2)) / 10,
				CurrentA:    float64(u16(payload, 4)) / 100,
				PowerW:      float64(u16(payload, 6)) / 10,
				EnergyTotal: float64(u32(payload, 8)),
				EnergyDaily: float64(u16(payload, 12)),
			},
		},
		Phases: []ahoy.ACPhase{
			{
				VoltageV: float64(u16(payload, 14)) / 10,
				PowerW:   float64(u16(payload, 18)) / 10,
				CurrentA: float64(u16(payload, 22)) / 100,
			},
		},
		FrequencyHz: float64(u16(payload, 16)) / 100,
		TempC:       float64(u16(payload, 26)) / 10,
	}
	return t, nil
}

// DecodeHM600Status decodes a 0x0B status reply from an HM600 (two
// strings, single phase) per the offset table in spec §4.7.
func DecodeHM600Status(payload []byte) (ahoy.Telemetry, error) {
	const minLen = 42
	if len(payload) < minLen {
		return ahoy.Telemetry{}, fmt.Errorf("decode: HM600 status payload too short: %d bytes", len(payload))
	}
	pf := float64(u16(payload, 36)) / 1000
	ec := int(u16(payload, 40))
	t := ahoy.Telemetry{
		Strings: []ahoy.DCString{
			{
				VoltageV:    float64(u16(payload, 2)) / 10,
				CurrentA:    float64(u16(payload, 4)) / 100,
				PowerW:      float64(u16(payload, 6)) / 10,
				EnergyTotal: float64(u32(payload, 14)),
				EnergyDaily: float64(u16(payload, 22)),
			},
			{
				VoltageV:    float64(u16(payload, 8)) / 10,
				CurrentA:    float64(u16(payload, 10)) / 100,
				PowerW:      float64(u16(payload, 12)) / 10,
				EnergyTotal: float64(u32(payload, 18)),
				EnergyDaily: float64(u16(payload, 24)),
			},
		},
		Phases: []ahoy.ACPhase{
			{
				VoltageV: float64(u16(payload, 26)) / 10,
				PowerW:   float64(u16(payload, 30)) / 10,
				CurrentA: float64(u16(payload, 34)) / 100,
			},
		},
		FrequencyHz: float64(u16(payload, 28)) / 100,
		TempC:       float64(u16(payload, 38)) / 10,
		PowerFactor: &pf,
		EventCount:  &ec,
	}
	return t, nil
}

// DecodeHM1200Status decodes a 0x0B status reply from an HM1200 (four
// strings, single phase) per the offset table in spec §4.7.
//
// dc_voltage_1 and dc_voltage_3 reuse the offsets of dc_voltage_0 and
// dc_voltage_2 respectively, reproduced verbatim from the source this
// table was transcribed from (spec §9 Open Questions: likely a
// transcription bug, kept and flagged rather than silently "corrected").
func DecodeHM1200Status(payload []byte) (ahoy.Telemetry, error) {
	const minLen = 62
	if len(payload) < minLen {
		return ahoy.Telemetry{}, fmt.Errorf("decode: HM1200 status payload too short: %d bytes", len(payload))
	}
	pf := float64(u16(payload, 56)) / 1000
	ec := int(u16(payload, 60))
	t := ahoy.Telemetry{
		Strings: []ahoy.DCString{
			{
				VoltageV:    float64(u16(payload, 2)) / 10,
				CurrentA:    float64(u16(payload, 4)) / 100,
				PowerW:      float64(u16(payload, 8)) / 10,
				EnergyTotal: float64(u32(payload, 12)),
				EnergyDaily: float64(u16(payload, 20)),
			},
			{
				// dc_voltage_1 duplicates offset 2 (dc_voltage_0) verbatim.
				VoltageV:    float64(u16(payload, 2)) / 10,
				CurrentA:    float64(u16(payload, 6)) / 100,
				PowerW:      float64(u16(payload, 10)) / 10,
				EnergyTotal: float64(u32(payload, 16)),
				EnergyDaily: float64(u16(payload, 22)),
			},
			{
				VoltageV:    float64(u16(payload, 24)) / 10,
				CurrentA:    float64(u16(payload, 26)) / 100,
				PowerW:      float64(u16(payload, 30)) / 10,
				EnergyTotal: float64(u32(payload, 34)),
				EnergyDaily: float64(u16(payload, 42)),
			},
			{
				// dc_voltage_3 duplicates offset 24 (dc_voltage_2) verbatim.
				VoltageV:    float64(u16(payload, 24)) / 10,
				CurrentA:    float64(u16(payload, 28)) / 100,
				PowerW:      float64(u16(payload, 32)) / 10,
				EnergyTotal: float64(u32(payload, 38)),
				EnergyDaily: float64(u16(payload, 44)),
			},
		},
		Phases: []ahoy.ACPhase{
			{
				VoltageV: float64(u16(payload, 46)) / 10,
				PowerW:   float64(u16(payload, 50)) / 10,
				CurrentA: float64(u16(payload, 54)) / 100,
			},
		},
		FrequencyHz: float64(u16(payload, 48)) / 100,
		TempC:       float64(u16(payload, 58)) / 10,
		PowerFactor: &pf,
		EventCount:  &ec,
	}
	return t, nil
}
