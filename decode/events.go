package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/Sprinterfreak/ahoy"
)

// alarmText maps an alarm_code to its human-readable description, carried
// verbatim from the original driver's EventsResponse.alarm_codes (spec §3,
// §4.8). Any code not present here renders as "N/A".
var alarmText = map[uint16]string{
	1:    "Inverter start",
	2:    "DTU command failed",
	121:  "Over temperature protection",
	125:  "Grid configuration parameter error",
	126:  "Software error code 126",
	127:  "Firmware error",
	128:  "Software error code 128",
	129:  "Software error code 129",
	130:  "Offline",
	141:  "Grid overvoltage",
	142:  "Average grid overvoltage",
	143:  "Grid undervoltage",
	144:  "Grid overfrequency",
	145:  "Grid underfrequency",
	146:  "Rapid grid frequency change",
	147:  "Power grid outage",
	148:  "Grid disconnection",
	149:  "Island detected",
	205:  "Input port 1 & 2 overvoltage",
	206:  "Input port 3 & 4 overvoltage",
	207:  "Input port 1 & 2 undervoltage",
	208:  "Input port 3 & 4 undervoltage",
	209:  "Port 1 no input",
	210:  "Port 2 no input",
	211:  "Port 3 no input",
	212:  "Port 4 no input",
	213:  "PV-1 & PV-2 abnormal wiring",
	214:  "PV-3 & PV-4 abnormal wiring",
	215:  "PV-1 Input overvoltage",
	216:  "PV-1 Input undervoltage",
	217:  "PV-2 Input overvoltage",
	218:  "PV-2 Input undervoltage",
	219:  "PV-3 Input overvoltage",
	220:  "PV-3 Input undervoltage",
	221:  "PV-4 Input overvoltage",
	222:  "PV-4 Input undervoltage",
	301:  "Hardware error code 301",
	302:  "Hardware error code 302",
	303:  "Hardware error code 303",
	304:  "Hardware error code 304",
	305:  "Hardware error code 305",
	306:  "Hardware error code 306",
	307:  "Hardware error code 307",
	308:  "Hardware error code 308",
	309:  "Hardware error code 309",
	310:  "Hardware error code 310",
	311:  "Hardware error code 311",
	312:  "Hardware error code 312",
	313:  "Hardware error code 313",
	314:  "Hardware error code 314",
	5041: "Error code-04 Port 1",
	5042: "Error code-04 Port 2",
	5043: "Error code-04 Port 3",
	5044: "Error code-04 Port 4",
	5051: "PV Input 1 Overvoltage/Undervoltage",
	5052: "PV Input 2 Overvoltage/Undervoltage",
	5053: "PV Input 3 Overvoltage/Undervoltage",
	5054: "PV Input 4 Overvoltage/Undervoltage",
	5060: "Abnormal bias",
	5070: "Over temperature protection",
	5080: "Grid Overvoltage/Undervoltage",
	5090: "Grid Overfrequency/Underfrequency",
	5100: "Island detected",
	5120: "EEPROM reading and writing error",
	5150: "10 min value grid overvoltage",
	5200: "Firmware error",
	8310: "Shut down",
	9000: "Microinverter is suspected of being stolen",
}

// AlarmText returns the human-readable description for code, or "N/A" if
// code is not in the table.
func AlarmText(code uint16) string {
	if s, ok := alarmText[code]; ok {
		return s
	}
	return "N/A"
}

// chunkLen is the size of one events-log entry, starting at offset 2 of
// the reassembled payload (spec §4.8).
const chunkLen = 12

// DecodeEvents decodes a reassembled events/alarm-log payload (main
// commands 0x01/0x02/0x11/0x12) into a sequence of EventRecords. If payload
// still carries a trailing Modbus CRC-16 (a direct caller bypassing
// Transaction.GetPayload, which already strips it), that trailer is
// verified and stripped first, mirroring the original driver's
// validate_crc_m. Each 12-byte chunk starting at offset 2 is unpacked as
// (opcode u8, alarm_code u8, alarm_count u16, uptime1 u16, uptime2 u16,
// _ u16, _ u16), matching the original driver's ">BBHHHHH" struct format
// (spec §4.8).
func DecodeEvents(payload []byte) ([]ahoy.EventRecord, error) {
	if len(payload) < 2 {
		return nil, fmt.Errorf("decode: events payload too short: %d bytes", len(payload))
	}
	if len(payload) >= 4 {
		rest, trailer := payload[:len(payload)-2], payload[len(payload)-2:]
		if ahoy.CRC16Modbus(rest) == binary.BigEndian.Uint16(trailer) {
			payload = rest
		}
	}
	body := payload[2:]
	n := len(body) / chunkLen
	if n == 0 {
		return nil, fmt.Errorf("decode: events payload has no complete chunks")
	}

	records := make([]ahoy.EventRecord, 0, n)
	for i := 0; i < n; i++ {
		c := body[i*chunkLen : (i+1)*chunkLen]
		code := uint16(c[1])
		records = append(records, ahoy.EventRecord{
			Opcode:     c[0],
			AlarmCode:  code,
			AlarmText:  AlarmText(code),
			AlarmCount: binary.BigEndian.Uint16(c[2:4]),
			Uptime1:    binary.BigEndian.Uint16(c[4:6]),
			Uptime2:    binary.BigEndian.Uint16(c[6:8]),
		})
	}
	return records, nil
}
