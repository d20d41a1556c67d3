// Package chain implements the event-chain analyzer (spec §4.3): a
// bounded, time-trimmed ring of recent events, plus the five-pattern
// behavioral matcher.
//
// Grounded on the teacher's alert_system.go bounded-history ring
// (slice append + trim-on-overflow) and behavioral_analysis.go's
// windowed-timestamp aggregation style.
package chain

import (
	"sync"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// Ring is a process-wide (one per SDK instance), mutex-guarded sliding
// window of recent events: capped at MaxChainEvents and time-trimmed to
// ChainWindowSeconds (spec §3). Entries are always kept in
// non-decreasing timestamp order.
type Ring struct {
	mu     sync.Mutex
	events []threatmodel.Event
}

// NewRing returns an empty ring.
func NewRing() *Ring {
	return &Ring{}
}

// Ingest inserts ev after every entry whose timestamp is not later than
// its own (a plain append for in-order arrivals), evicts entries older
// than now-ChainWindowSeconds, and trims to MaxChainEvents if still over
// capacity. now is the timestamp to trim relative to — normally
// ev.Timestamp, since events arrive in caller-submission order (spec §5).
func (r *Ring) Ingest(ev threatmodel.Event, now float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := len(r.events)
	for i > 0 && r.events[i-1].Timestamp > ev.Timestamp {
		i--
	}
	r.events = append(r.events, threatmodel.Event{})
	copy(r.events[i+1:], r.events[i:])
	r.events[i] = ev
	r.trimLocked(now)
}

func (r *Ring) trimLocked(now float64) {
	cutoff := now - threatmodel.ChainWindowSeconds
	i := 0
	for i < len(r.events) && r.events[i].Timestamp < cutoff {
		i++
	}
	if i > 0 {
		r.events = append([]threatmodel.Event(nil), r.events[i:]...)
	}
	if len(r.events) > threatmodel.MaxChainEvents {
		overflow := len(r.events) - threatmodel.MaxChainEvents
		r.events = append([]threatmodel.Event(nil), r.events[overflow:]...)
	}
}

// Snapshot returns a copy of the current ring contents, oldest first.
func (r *Ring) Snapshot() []threatmodel.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]threatmodel.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Len reports the current number of entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
