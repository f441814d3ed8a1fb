package ahoy

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the frame, transaction, address and decoder
// layers (spec §7). Inside the receive loop a fragment that fails ParseFrame
// is dropped and polling continues, so ErrBadFrame reaches only direct
// ParseFrame callers; the others propagate to a caller driving a
// Transaction or decoding its result.
var (
	// ErrBadFrame is returned by ParseFrame when the trailing CRC-8 does not
	// match the bytes that precede it.
	ErrBadFrame = errors.New("ahoy: frame CRC-8 mismatch")

	// ErrCrcMismatch is returned by Transaction.GetPayload when the
	// reassembled payload's trailing Modbus CRC-16 does not match.
	ErrCrcMismatch = errors.New("ahoy: payload CRC-16 mismatch")

	// ErrUnknownModel is returned by the address codec when a serial's
	// decimal prefix does not match any known inverter family.
	ErrUnknownModel = errors.New("ahoy: unknown inverter model for serial")

	// ErrUnsupportedReply is returned by decode.Dispatch when no decoder is
	// registered for the (family, command) pair and debug decoding is off.
	ErrUnsupportedReply = errors.New("ahoy: no decoder for this family/command")

	// ErrRadioUnavailable is returned when a Radio could not be opened; it is
	// fatal to the session, per spec §7.
	ErrRadioUnavailable = errors.New("ahoy: radio unavailable")

	// ErrNoWork is returned by Transaction.Rxtx when the tx queue is empty or
	// no Radio is attached.
	ErrNoWork = errors.New("ahoy: nothing queued to transmit")
)

// MissingFragmentError reports that reassembly is missing a specific
// fragment. A retransmit request for Seq has already been enqueued on the
// owning Transaction by the time this error is returned.
type MissingFragmentError struct {
	Seq int // sequence number of the missing fragment (1-based)
}

func (e *MissingFragmentError) Error() string {
	return fmt.Sprintf("ahoy: missing fragment %d, retransmit requested", e.Seq)
}

// Is allows errors.Is(err, ErrMissingFragment) to match any
// *MissingFragmentError regardless of which sequence number it carries.
func (e *MissingFragmentError) Is(target error) bool {
	return target == ErrMissingFragment
}

// ErrMissingFragment is the comparison target for errors.Is against any
// *MissingFragmentError; use errors.As to recover the specific Seq.
var ErrMissingFragment = errors.New("ahoy: missing fragment")
