// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package ahoy

import (
	"fmt"
	"sync"
	"time"
)

// traceEvent is one recorded line in a Tracer's buffer.
type traceEvent struct {
	at  time.Time
	txt string
}

// Tracer accumulates timestamped lines describing a transaction's frame
// traffic, for later inspection when Config.TransactionLogging or
// Config.DebugLogging is enabled. A nil *Tracer is safe to use; all methods
// become no-ops.
type Tracer struct {
	mu  sync.Mutex
	buf []traceEvent
}

// NewTracer returns an empty Tracer.
func NewTracer() *Tracer {
	return &Tracer{}
}

// Push records txt with the current time.
func (t *Tracer) Push(txt string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, traceEvent{time.Now(), txt})
}

// Pushf records a formatted line.
func (t *Tracer) Pushf(format string, v ...interface{}) {
	if t == nil {
		return
	}
	t.Push(fmt.Sprintf(format, v...))
}

// Dump returns every recorded line formatted as seconds-since-first-event,
// and clears the buffer. Dumping an empty or nil Tracer returns "no events
// recorded".
func (t *Tracer) Dump() string {
	if t == nil {
		return "no events recorded"
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.buf) == 0 {
		return "no events recorded"
	}

	t0 := t.buf[0].at
	out := ""
	for _, ev := range t.buf {
		out += fmt.Sprintf("%.6fs: %s\n", ev.at.Sub(t0).Seconds(), ev.txt)
	}
	t.buf = nil
	return out
}
