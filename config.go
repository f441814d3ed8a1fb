package ahoy

import "time"

// LogPrintf is the logging hook threaded through Config and Transaction; the
// decoder dispatcher takes no logger. A nil LogPrintf is replaced by a no-op at construction
// time, the same convention sx1231.RadioOpts and sx1276.RadioOpts use.
type LogPrintf func(format string, v ...interface{})

// PALevel selects the nRF24L01+ transmit power amplifier setting.
type PALevel int

const (
	PAMin PALevel = iota
	PALow
	PAHigh
	PAMax
)

func (p PALevel) String() string {
	switch p {
	case PAMin:
		return "min"
	case PALow:
		return "low"
	case PAHigh:
		return "high"
	case PAMax:
		return "max"
	default:
		return "unknown"
	}
}

// DefaultTXChannels is the default single-element TX hop list.
var DefaultTXChannels = []int{40}

// DefaultRXChannels is the default RX channel hop list the receive loop
// cycles through while searching for a reply.
var DefaultRXChannels = []int{3, 23, 40, 61, 75}

// DefaultReceiveTimeout is the default deadline for a receive cycle with no
// contact at all.
const DefaultReceiveTimeout = 1200 * time.Millisecond

// rxAckExtension is how far the receive deadline is pushed out every time a
// fragment arrives, so a productive exchange isn't cut short by the initial
// timeout.
const rxAckExtension = 500 * time.Millisecond

// rxPollInterval is the delay between empty polls of the radio.
const rxPollInterval = 5 * time.Millisecond

// Config carries the options recognized by the core (spec §6). Zero value is
// not directly usable; call DefaultConfig to get a struct with the documented
// defaults, then override individual fields.
type Config struct {
	CEPin      int     `toml:"ce_pin"`
	CSPin      int     `toml:"cs_pin"`
	SPISpeedHz int64   `toml:"spispeed"`
	TXPower    PALevel `toml:"-"`

	TXChannels []int `toml:"tx_channels"`
	RXChannels []int `toml:"rx_channels"`

	ReceiveTimeout time.Duration `toml:"-"`

	TransactionLogging bool `toml:"transaction_logging"`
	DebugLogging       bool `toml:"debug_logging"`

	Logger LogPrintf `toml:"-"`
}

// DefaultConfig returns a Config populated with the documented defaults.
func DefaultConfig() Config {
	return Config{
		CEPin:          22,
		CSPin:          0,
		SPISpeedHz:     1_000_000,
		TXPower:        PAMax,
		TXChannels:     append([]int(nil), DefaultTXChannels...),
		RXChannels:     append([]int(nil), DefaultRXChannels...),
		ReceiveTimeout: DefaultReceiveTimeout,
		Logger:         func(string, ...interface{}) {},
	}
}

// logger returns a usable, never-nil LogPrintf.
func (c Config) logger() LogPrintf {
	if c.Logger != nil {
		return c.Logger
	}
	return func(string, ...interface{}) {}
}
