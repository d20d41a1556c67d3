package health

import (
	"sync"
	"time"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// Thresholds from spec §4.7.
const (
	fullErrorRateMax     = 0.05
	fullP95LatencyMS     = 100.0
	degradedErrorRateMax = 0.20
	degradedP95LatencyMS = 500.0
	minimalErrorRateMax  = 0.50
)

// StateMachine derives and holds the current SDKMode from rolling
// health snapshots, with sustained-healthy recovery hysteresis (spec
// §4.7: "recovery requires sustained healthy metrics for 30s before
// stepping back toward full").
type StateMachine struct {
	mu           sync.Mutex
	mode         threatmodel.SDKMode
	healthySince time.Time
	lastEvalMode threatmodel.SDKMode
}

// NewStateMachine starts in ModeFull.
func NewStateMachine() *StateMachine {
	return &StateMachine{mode: threatmodel.ModeFull}
}

// Mode returns the current SDK mode.
func (s *StateMachine) Mode() threatmodel.SDKMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// targetModeFor computes the mode the snapshot alone would justify,
// ignoring hysteresis (spec §4.7's threshold table, evaluated from most
// to least severe so the worst matching condition wins).
func targetModeFor(snap Snapshot) threatmodel.SDKMode {
	switch {
	case snap.ErrorRate1m >= minimalErrorRateMax:
		return threatmodel.ModeEmergency
	case snap.ErrorRate1m >= degradedErrorRateMax:
		return threatmodel.ModeMinimal
	case snap.ErrorRate1m >= fullErrorRateMax || snap.P95LatencyMS >= degradedP95LatencyMS:
		return threatmodel.ModeDegraded
	case snap.P95LatencyMS >= fullP95LatencyMS:
		return threatmodel.ModeDegraded
	default:
		return threatmodel.ModeFull
	}
}

// Evaluate feeds one fresh snapshot through the state machine and
// returns the resulting mode. Degradation is immediate; recovery toward
// a less-degraded mode only takes effect once the target mode has been
// continuously justified for recoveryHoldTime.
func (s *StateMachine) Evaluate(now time.Time, snap Snapshot) threatmodel.SDKMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := targetModeFor(snap)

	if target.MoreDegradedThan(s.mode) || target == s.mode {
		s.mode = target
		s.healthySince = time.Time{}
		s.lastEvalMode = target
		return s.mode
	}

	// target is less degraded than current mode: start or continue the
	// recovery hold.
	if s.lastEvalMode != target || s.healthySince.IsZero() {
		s.healthySince = now
		s.lastEvalMode = target
	}
	if now.Sub(s.healthySince) >= recoveryHoldTime {
		s.mode = target
	}
	return s.mode
}
