package ingress

import "testing"

func TestRateLimiter_BurstOf200Allows100(t *testing.T) {
	rl := NewRateLimiter()

	allowed := 0
	denied := 0
	for i := 0; i < 200; i++ {
		ok, _ := rl.Acquire()
		if ok {
			allowed++
		} else {
			denied++
		}
	}

	if allowed != 100 {
		t.Fatalf("got %d allowed, want exactly 100", allowed)
	}
	if denied != 100 {
		t.Fatalf("got %d denied, want exactly 100", denied)
	}
}

func TestRateLimiter_UtilizationTracksConsumption(t *testing.T) {
	rl := NewRateLimiter()
	if u := rl.Utilization(); u != 0 {
		t.Fatalf("fresh bucket utilization = %v, want 0", u)
	}
	rl.Acquire()
	if u := rl.Utilization(); u <= 0 {
		t.Fatalf("utilization after one acquire = %v, want > 0", u)
	}
}
