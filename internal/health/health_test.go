package health

import (
	"testing"
	"time"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

func TestMonitor_ErrorRate(t *testing.T) {
	m := NewMonitor()
	base := time.Unix(1000, 0)
	for i := 0; i < 10; i++ {
		isErr := i < 2
		m.Record(base.Add(time.Duration(i)*time.Second), 10*time.Millisecond, isErr)
	}
	snap := m.Snapshot(base.Add(9*time.Second), 0)
	if snap.ErrorRate1m < 0.19 || snap.ErrorRate1m > 0.21 {
		t.Fatalf("expected ~0.2 error rate, got %v", snap.ErrorRate1m)
	}
}

func TestMonitor_TrimsOldSamples(t *testing.T) {
	m := NewMonitor()
	base := time.Unix(1000, 0)
	m.Record(base, 5*time.Millisecond, true)
	later := base.Add(10 * time.Minute)
	m.Record(later, 5*time.Millisecond, false)
	snap := m.Snapshot(later, 0)
	if snap.ErrorRate5m != 0 {
		t.Fatalf("expected old error sample to be trimmed, got rate %v", snap.ErrorRate5m)
	}
}

func TestMonitor_Percentiles(t *testing.T) {
	m := NewMonitor()
	base := time.Unix(2000, 0)
	for i := 1; i <= 100; i++ {
		m.Record(base.Add(time.Duration(i)*time.Millisecond), time.Duration(i)*time.Millisecond, false)
	}
	snap := m.Snapshot(base.Add(100*time.Millisecond), 0)
	if snap.P50LatencyMS <= 0 || snap.P95LatencyMS < snap.P50LatencyMS || snap.P99LatencyMS < snap.P95LatencyMS {
		t.Fatalf("percentile ordering violated: %+v", snap)
	}
}

func TestStateMachine_StaysFullWhenHealthy(t *testing.T) {
	sm := NewStateMachine()
	now := time.Unix(5000, 0)
	mode := sm.Evaluate(now, Snapshot{ErrorRate1m: 0.01, P95LatencyMS: 20})
	if mode != threatmodel.ModeFull {
		t.Fatalf("expected full, got %s", mode)
	}
}

func TestStateMachine_DegradesImmediately(t *testing.T) {
	sm := NewStateMachine()
	now := time.Unix(5000, 0)
	mode := sm.Evaluate(now, Snapshot{ErrorRate1m: 0.60})
	if mode != threatmodel.ModeEmergency {
		t.Fatalf("expected emergency for 60%% error rate, got %s", mode)
	}
}

func TestStateMachine_RecoveryRequiresSustainedHealth(t *testing.T) {
	sm := NewStateMachine()
	now := time.Unix(5000, 0)

	sm.Evaluate(now, Snapshot{ErrorRate1m: 0.60})
	if sm.Mode() != threatmodel.ModeEmergency {
		t.Fatalf("expected emergency after spike")
	}

	// Immediately healthy again: should not recover yet.
	mode := sm.Evaluate(now.Add(1*time.Second), Snapshot{ErrorRate1m: 0.0, P95LatencyMS: 10})
	if mode != threatmodel.ModeEmergency {
		t.Fatalf("expected no immediate recovery, got %s", mode)
	}

	// After the hold time of sustained health, should step down to full.
	mode = sm.Evaluate(now.Add(1*time.Second+recoveryHoldTime), Snapshot{ErrorRate1m: 0.0, P95LatencyMS: 10})
	if mode != threatmodel.ModeFull {
		t.Fatalf("expected recovery to full after sustained health, got %s", mode)
	}
}

func TestStateMachine_RecoveryResetsOnRelapse(t *testing.T) {
	sm := NewStateMachine()
	now := time.Unix(5000, 0)
	sm.Evaluate(now, Snapshot{ErrorRate1m: 0.60})

	sm.Evaluate(now.Add(5*time.Second), Snapshot{ErrorRate1m: 0.0})
	// Relapse before the hold completes resets the healthy timer, so
	// the same elapsed duration that would have completed the original
	// hold must not be enough this time.
	sm.Evaluate(now.Add(10*time.Second), Snapshot{ErrorRate1m: 0.60})
	mode := sm.Evaluate(now.Add(10*time.Second+recoveryHoldTime), Snapshot{ErrorRate1m: 0.0})
	if mode != threatmodel.ModeEmergency {
		t.Fatalf("expected relapse to delay recovery past the original hold window, got %s", mode)
	}
}
