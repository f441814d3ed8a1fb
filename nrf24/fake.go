package nrf24

import "sync"

// Fake is an in-memory Radio for tests and the --simulate demo mode. Queued
// payloads are delivered only while Fake is listening on the channel they
// were queued for, so tests can exercise the channel-hopping receive loop
// deterministically.
type Fake struct {
	mu sync.Mutex

	began       bool
	listening   bool
	channel     uint8
	dataRate    DataRate
	crcLength   CRCLength
	paLevel     PALevel
	autoAck     bool
	retryDelay  int
	retryCount  int
	writingPipe Address
	readingPipe [6]Address

	inbox map[uint8][][]byte

	// Sent records every packet passed to Write, for test assertions.
	Sent [][]byte
	// AckWrites, when true (the default), makes Write report success.
	AckWrites bool
}

// NewFake returns a ready-to-use Fake.
func NewFake() *Fake {
	return &Fake{inbox: make(map[uint8][][]byte), AckWrites: true}
}

// QueueOnChannel arranges for payload to be returned by AvailablePipe/Read
// the next time the Fake is listening on ch.
func (f *Fake) QueueOnChannel(ch uint8, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inbox[ch] = append(f.inbox[ch], append([]byte(nil), payload...))
}

func (f *Fake) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.began = true
	return nil
}

func (f *Fake) PowerDown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listening = false
}

func (f *Fake) SetChannel(ch uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channel = ch
}

func (f *Fake) SetDataRate(rate DataRate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dataRate = rate
}

func (f *Fake) SetPALevel(level PALevel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paLevel = level
}

func (f *Fake) SetCRCLength(length CRCLength) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.crcLength = length
}

func (f *Fake) SetAutoAck(enabled bool, pipe int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.autoAck = enabled
}

func (f *Fake) SetRetries(delay, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retryDelay, f.retryCount = delay, count
}

func (f *Fake) EnableDynamicPayloads() {}

func (f *Fake) OpenWritingPipe(addr Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writingPipe = addr
}

func (f *Fake) OpenReadingPipe(pipe int, addr Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pipe >= 0 && pipe < len(f.readingPipe) {
		f.readingPipe[pipe] = addr
	}
}

func (f *Fake) StartListening() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listening = true
}

func (f *Fake) StopListening() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listening = false
}

func (f *Fake) AvailablePipe() (bool, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.listening {
		return false, 0
	}
	q := f.inbox[f.channel]
	if len(q) == 0 {
		return false, 0
	}
	return true, 1
}

func (f *Fake) Read(n int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := f.inbox[f.channel]
	if len(q) == 0 {
		return nil, nil
	}
	payload := q[0]
	f.inbox[f.channel] = q[1:]
	if n < len(payload) {
		payload = payload[:n]
	}
	return payload, nil
}

func (f *Fake) GetDynamicPayloadSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := f.inbox[f.channel]
	if len(q) == 0 {
		return 0
	}
	return len(q[0])
}

func (f *Fake) Write(packet []byte) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, append([]byte(nil), packet...))
	if !f.AckWrites {
		return false, ErrNoAck
	}
	return true, nil
}

var _ Radio = (*Fake)(nil)
