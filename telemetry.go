package ahoy

import "time"

// DCString is one PV string's decoded measurements (spec §3 "Telemetry
// record").
type DCString struct {
	VoltageV    float64 `json:"voltage"`
	CurrentA    float64 `json:"current"`
	PowerW      float64 `json:"power"`
	EnergyTotal float64 `json:"energy_total"`
	EnergyDaily float64 `json:"energy_daily"`
}

// ACPhase is one AC output phase's decoded measurements.
type ACPhase struct {
	VoltageV float64 `json:"voltage"`
	CurrentA float64 `json:"current"`
	PowerW   float64 `json:"power"`
}

// Telemetry is the decoded record produced by a successful 0x0B status
// reply (spec §3, §6).
type Telemetry struct {
	InverterSer uint64    `json:"inverter_ser"`
	DTUSer      uint64    `json:"dtu_ser"`
	Time        time.Time `json:"time"`

	Strings []DCString `json:"strings"`
	Phases  []ACPhase  `json:"phases"`

	FrequencyHz float64  `json:"frequency"`
	TempC       float64  `json:"temperature"`
	PowerFactor *float64 `json:"powerfactor,omitempty"`
	EventCount  *int     `json:"event_count,omitempty"`
}

// EventRecord is one decoded entry from an events/alarm-log reply (spec
// §3, §4.8).
type EventRecord struct {
	Opcode     byte   `json:"opcode"`
	AlarmCode  uint16 `json:"alarm_code"`
	AlarmText  string `json:"alarm_text"`
	AlarmCount uint16 `json:"alarm_count"`
	Uptime1    uint16 `json:"uptime1"`
	Uptime2    uint16 `json:"uptime2"`
}
