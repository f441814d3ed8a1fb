// Package nrf24 abstracts the nRF24L01+ radio as a capability interface
// (spec §4.5/§6, REDESIGN FLAGS "Radio library choice at import time").
// Concrete SPI/GPIO wiring is outside this package's scope; callers supply
// whatever Radio implementation matches their hardware, or use Fake for
// tests and demos.
package nrf24

import "fmt"

// Address is a 5-byte ESB pipe address.
type Address [5]byte

// DataRate selects the nRF24L01+ on-air bit rate.
type DataRate int

const (
	DataRate1Mbps DataRate = iota
	DataRate2Mbps
	DataRate250kbps
)

// CRCLength selects the hardware CRC width used by ESB auto-ack.
type CRCLength int

const (
	CRCDisabled CRCLength = iota
	CRC8Bit
	CRC16Bit
)

// PALevel selects the transmit power amplifier setting.
type PALevel int

const (
	PAMin PALevel = iota
	PALow
	PAHigh
	PAMax
)

// ErrNoAck is returned by Write when the nRF24L01+ exhausts its configured
// retries without receiving a hardware ACK.
var ErrNoAck = fmt.Errorf("nrf24: no ack received")

// Radio is the set of operations the core depends on (spec §6). A real
// implementation wraps a concrete SPI/GPIO driver; Fake provides an
// in-memory stand-in for tests.
type Radio interface {
	// Begin initializes the chip. Returns an error if the radio cannot be
	// reached (spec §7 RadioUnavailable).
	Begin() error
	// PowerDown puts the chip into its lowest-power standby state.
	PowerDown()

	SetChannel(ch uint8)
	SetDataRate(rate DataRate)
	SetPALevel(level PALevel)
	SetCRCLength(length CRCLength)
	// SetAutoAck enables or disables hardware auto-ack. pipe selects which
	// pipe the setting applies to; -1 (or any implementation-defined
	// sentinel) may mean "all pipes" — callers here always pass 0.
	SetAutoAck(enabled bool, pipe int)
	SetRetries(delay, count int)
	EnableDynamicPayloads()

	OpenWritingPipe(addr Address)
	OpenReadingPipe(pipe int, addr Address)

	StartListening()
	StopListening()

	// AvailablePipe reports whether a payload is ready to read and on
	// which pipe.
	AvailablePipe() (has bool, pipe int)
	// Read returns up to n bytes from the radio's RX FIFO.
	Read(n int) ([]byte, error)
	// GetDynamicPayloadSize returns the length of the next pending payload.
	GetDynamicPayloadSize() int

	// Write transmits packet on the currently open writing pipe, blocking
	// until the hardware reports ACK or exhausts its configured retries.
	// Returns ErrNoAck (wrapped) on exhaustion.
	Write(packet []byte) (acked bool, err error)
}
