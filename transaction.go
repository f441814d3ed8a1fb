package ahoy

import (
	"encoding/binary"
	"time"

	"github.com/Sprinterfreak/ahoy/nrf24"
	"github.com/Sprinterfreak/ahoy/thread"
)

// scratchKey identifies a fragment in the scratch set by both its source
// address and sequence number, so fragments from a concurrent or stale
// transaction never collide with the one being reassembled (spec §3, §8
// scenario 4).
type scratchKey struct {
	src [4]byte
	seq byte
}

// Result is the tagged outcome of Transaction.GetPayload, modeling the
// original driver's exception-for-control-flow reassembly as an explicit
// sum type the caller switches on (spec §9 re-architecture guidance).
type Result struct {
	MainCmd byte
	Payload []byte
	Err     error // one of ErrCrcMismatch or *MissingFragmentError (errors.Is ErrMissingFragment)
}

// Ok reports whether the reassembly succeeded.
func (r Result) Ok() bool { return r.Err == nil }

// Transaction owns the TX queue and RX scratch set for one logical exchange
// with a single inverter (spec §3 "Transaction", §4.4).
type Transaction struct {
	Radio nrf24.Radio
	Power PALevel

	Inverter  Endpoint
	DTU       Endpoint
	inverterA [4]byte
	dtuA      [4]byte

	TXChannels []int
	RXChannels []int

	ReceiveTimeout time.Duration

	Logger LogPrintf
	Trace  *Tracer

	txQueue [][]byte
	scratch map[scratchKey]Frame // keyed by (src, seq); order-independent reassembly (spec §3/§4.4)

	lastRX time.Time

	rxChanIdx int
	beginErr  error
}

// NewTransaction creates a Transaction bound to radio, targeting inverter
// and speaking as dtu, using cfg's channel lists, timeout and logger. If
// radio is non-nil, it is initialized via Begin; the error, if any, is
// stashed and surfaced by the first Rxtx call (spec §7: radio-open failure
// is fatal to the session).
func NewTransaction(radio nrf24.Radio, cfg Config, inverter, dtu Endpoint) *Transaction {
	t := &Transaction{
		Radio:          radio,
		Power:          cfg.TXPower,
		Inverter:       inverter,
		DTU:            dtu,
		inverterA:      inverter.hmAddr(),
		dtuA:           dtu.hmAddr(),
		TXChannels:     append([]int(nil), cfg.TXChannels...),
		RXChannels:     append([]int(nil), cfg.RXChannels...),
		ReceiveTimeout: cfg.ReceiveTimeout,
		Logger:         cfg.logger(),
		scratch:        make(map[scratchKey]Frame),
	}
	if cfg.TransactionLogging || cfg.DebugLogging {
		t.Trace = NewTracer()
	}
	if radio != nil {
		if err := radio.Begin(); err != nil {
			t.log("ahoy: radio.Begin failed: %v", err)
			t.beginErr = err
		}
	}
	return t
}

// Enqueue appends a composed request (one or more fragments) to the TX
// queue, FIFO.
func (t *Transaction) Enqueue(fragments [][]byte) {
	t.txQueue = append(t.txQueue, fragments...)
}

func (t *Transaction) log(format string, v ...interface{}) {
	if t.Logger != nil {
		t.Logger(format, v...)
	}
}

// Rxtx pops the head of the TX queue, transmits it, then polls the radio
// with channel hopping until the receive deadline, appending every validly
// framed fragment to the scratch set (spec §4.4 rxtx()). It returns whether
// any fragment was received ("contacted"), or ErrNoWork if the queue is
// empty or no radio is attached.
func (t *Transaction) Rxtx() (bool, error) {
	if t.beginErr != nil {
		return false, ErrRadioUnavailable
	}
	if t.Radio == nil || len(t.txQueue) == 0 {
		return false, ErrNoWork
	}

	packet := t.txQueue[0]
	t.txQueue = t.txQueue[1:]

	t.Trace.Pushf("tx %d bytes", len(packet))
	if err := t.transmit(packet); err != nil {
		t.log("ahoy: transmit failed: %v", err)
		t.Trace.Pushf("transmit failed: %v", err)
	}

	contacted := t.receive()
	t.Trace.Pushf("rxtx contacted=%v", contacted)
	return contacted, nil
}

func (t *Transaction) transmit(packet []byte) error {
	r := t.Radio
	r.StopListening()
	r.SetAutoAck(true, 0)
	r.SetRetries(3, 15)
	r.SetDataRate(nrf24.DataRate250kbps)
	r.SetCRCLength(nrf24.CRC16Bit)
	r.EnableDynamicPayloads()
	r.SetPALevel(paToRadio(t.Power))

	chans := t.TXChannels
	if len(chans) == 0 {
		chans = DefaultTXChannels
	}
	r.SetChannel(uint8(chans[0]))

	r.OpenReadingPipe(1, nrf24.Address(AddrToESBAddr(t.dtuA)))
	r.OpenWritingPipe(nrf24.Address(AddrToESBAddr(t.inverterA)))

	_, err := r.Write(packet)
	return err
}

// receive implements the channel-hopping receive loop (spec §4.5). It
// returns true if at least one well-formed fragment was appended to the
// scratch set.
func (t *Transaction) receive() bool {
	r := t.Radio
	r.SetAutoAck(false, 0)
	r.SetRetries(0, 0)
	r.EnableDynamicPayloads()
	r.SetCRCLength(nrf24.CRC16Bit)

	chans := t.RXChannels
	if len(chans) == 0 {
		chans = DefaultRXChannels
	}
	timeout := t.ReceiveTimeout
	if timeout == 0 {
		timeout = DefaultReceiveTimeout
	}

	r.SetChannel(uint8(chans[t.rxChanIdx%len(chans)]))
	r.StartListening()

	deadline := time.Now().Add(timeout)
	contacted := false
	misses := 0
	acked := false

	for time.Now().Before(deadline) {
		has, pipe := r.AvailablePipe()
		if has {
			n := r.GetDynamicPayloadSize()
			raw, err := r.Read(n)
			if err != nil {
				t.log("ahoy: radio read failed on pipe %d: %v", pipe, err)
				continue
			}
			f, err := ParseFrame(raw)
			if err != nil {
				t.log("ahoy: dropping bad frame: %v", err)
				misses++
			} else {
				t.scratch[scratchKey{src: f.Src(), seq: f.Seq}] = f
				t.lastRX = time.Now()
				contacted = true
				acked = true
				misses = 0
				deadline = time.Now().Add(rxAckExtension)
				t.Trace.Pushf("rx %s", FormatFrame(f))
			}
		} else {
			misses++
		}

		if misses >= 2 {
			acked = false
		}
		if !acked {
			t.rxChanIdx = (t.rxChanIdx + 1) % len(chans)
			r.StopListening()
			r.SetChannel(uint8(chans[t.rxChanIdx]))
			r.StartListening()
		}

		time.Sleep(rxPollInterval)
	}

	r.StopListening()
	return contacted
}

// GetPayload attempts to reassemble the scratch set into a complete
// payload for fragments whose Src matches src (spec §4.4 get_payload()).
// On success MainCmd/Payload are set and Err is nil. On a missing
// fragment, Err is a *MissingFragmentError and a retransmit request for
// the missing sequence has already been enqueued.
func (t *Transaction) GetPayload(src [4]byte) Result {
	var terminal *Frame
	var lastSeq byte
	for k, f := range t.scratch {
		if k.src != src {
			continue
		}
		if f.IsTerminal() {
			tf := f
			terminal = &tf
		}
		if k.seq > lastSeq {
			lastSeq = k.seq
		}
	}

	if terminal == nil {
		missing := int(lastSeq) + 1
		t.enqueueRetransmit(missing)
		return Result{Err: &MissingFragmentError{Seq: missing}}
	}

	n := terminal.FragmentCount()
	payload := make([]byte, 0, n*16)
	for i := 1; i < n; i++ {
		f, ok := t.scratch[scratchKey{src: src, seq: byte(i)}]
		if !ok {
			t.enqueueRetransmit(i)
			return Result{Err: &MissingFragmentError{Seq: i}}
		}
		payload = append(payload, f.Data...)
	}
	payload = append(payload, terminal.Data...)

	if len(payload) < 2 {
		return Result{Err: ErrCrcMismatch}
	}
	body, trailer := payload[:len(payload)-2], payload[len(payload)-2:]
	want := binary.BigEndian.Uint16(trailer)
	if crc16Modbus(body) != want {
		return Result{Err: ErrCrcMismatch}
	}

	return Result{MainCmd: terminal.MainCmd(), Payload: body}
}

// enqueueRetransmit builds and enqueues a retransmit request for the given
// fragment sequence number, addressed inverter<-DTU (spec §4.4).
func (t *Transaction) enqueueRetransmit(seq int) {
	raw, err := BuildRetransmitRequest(Addr(t.inverterA), Addr(t.dtuA), seq)
	if err != nil {
		t.log("ahoy: could not build retransmit request for seq %d: %v", seq, err)
		return
	}
	t.txQueue = append(t.txQueue, raw)
}

// Run drives Rxtx in a loop at realtime scheduling priority (thread.Realtime,
// mirroring the teacher's receive-loop timing guarantees) until GetPayload
// succeeds, a non-retryable error occurs, or attempts is exhausted.
func (t *Transaction) Run(attempts int) Result {
	if err := thread.Realtime(); err != nil {
		t.log("ahoy: could not elevate to realtime scheduling: %v", err)
	}

	var last Result
	for i := 0; i < attempts; i++ {
		_, err := t.Rxtx()
		if err == ErrRadioUnavailable {
			return Result{Err: err}
		}
		if err != nil && len(t.txQueue) == 0 {
			break
		}
		last = t.GetPayload(t.inverterA)
		if last.Ok() {
			return last
		}
		if last.Err == ErrCrcMismatch {
			return last
		}
	}
	return last
}

func paToRadio(p PALevel) nrf24.PALevel {
	switch p {
	case PAMin:
		return nrf24.PAMin
	case PALow:
		return nrf24.PALow
	case PAHigh:
		return nrf24.PAHigh
	default:
		return nrf24.PAMax
	}
}
