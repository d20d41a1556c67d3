package chain

import (
	"testing"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

func ev(kind threatmodel.EventKind, ts float64, loc string) threatmodel.Event {
	return threatmodel.Event{Kind: kind, Timestamp: ts, Location: loc}
}

func TestMatch_ActiveBreakIn(t *testing.T) {
	events := []threatmodel.Event{
		ev(threatmodel.KindGlassBreak, 0, "living_room"),
		ev(threatmodel.KindMotion, 10, "living_room"),
	}
	p := Match(events, 10)
	if p.Kind != threatmodel.PatternActiveBreakIn || p.Delta != deltaActiveBreakIn {
		t.Fatalf("got %+v", p)
	}
}

func TestMatch_ForcedEntry(t *testing.T) {
	events := []threatmodel.Event{
		ev(threatmodel.KindDoor, 0, "back_door"),
		ev(threatmodel.KindDoor, 3, "back_door"),
		ev(threatmodel.KindDoor, 6, "back_door"),
		ev(threatmodel.KindDoor, 9, "back_door"),
	}
	p := Match(events, 9)
	if p.Kind != threatmodel.PatternForcedEntry || p.Delta != deltaForcedEntry {
		t.Fatalf("got %+v", p)
	}
}

func TestMatch_Intrusion(t *testing.T) {
	events := []threatmodel.Event{
		ev(threatmodel.KindMotion, 0, "backyard"),
		ev(threatmodel.KindDoor, 10, "back_door"),
		ev(threatmodel.KindMotion, 20, "hallway"),
	}
	p := Match(events, 20)
	if p.Kind != threatmodel.PatternIntrusion || p.Delta != deltaIntrusion {
		t.Fatalf("got %+v", p)
	}
}

func TestMatch_Prowler(t *testing.T) {
	events := []threatmodel.Event{
		ev(threatmodel.KindMotion, 0, "backyard"),
		ev(threatmodel.KindMotion, 20, "side_yard"),
		ev(threatmodel.KindMotion, 40, "driveway"),
	}
	p := Match(events, 40)
	if p.Kind != threatmodel.PatternProwler || p.Delta != deltaProwler {
		t.Fatalf("got %+v", p)
	}
}

func TestMatch_DeliveryTentativeThenConfirmed(t *testing.T) {
	events := []threatmodel.Event{
		ev(threatmodel.KindDoorbellChime, 0, "front_door"),
		ev(threatmodel.KindMotion, 3, "front_door"),
	}

	// Less than 15s since motion: tentative, no delta applied yet.
	p := Match(events, 10)
	if p.Kind != threatmodel.PatternDelivery || !p.Tentative {
		t.Fatalf("expected tentative delivery, got %+v", p)
	}

	// >= 15s of silence since motion: confirmed.
	p = Match(events, 20)
	if p.Kind != threatmodel.PatternDelivery || p.Tentative || p.Delta != deltaDelivery {
		t.Fatalf("expected confirmed delivery, got %+v", p)
	}
}

func TestMatch_None(t *testing.T) {
	events := []threatmodel.Event{
		ev(threatmodel.KindMotion, 0, "hallway"),
	}
	p := Match(events, 0)
	if p.Kind != threatmodel.PatternNone {
		t.Fatalf("got %+v", p)
	}
}

func TestRing_TrimsOldAndCapsSize(t *testing.T) {
	r := NewRing()
	for i := 0; i < threatmodel.MaxChainEvents+10; i++ {
		r.Ingest(ev(threatmodel.KindMotion, float64(i), "hallway"), float64(i))
	}
	if r.Len() > threatmodel.MaxChainEvents {
		t.Fatalf("ring len %d exceeds cap %d", r.Len(), threatmodel.MaxChainEvents)
	}

	snap := r.Snapshot()
	now := snap[len(snap)-1].Timestamp
	for _, e := range snap {
		if now-e.Timestamp > threatmodel.ChainWindowSeconds {
			t.Fatalf("ring retained entry older than window: age=%v", now-e.Timestamp)
		}
	}
}
