package zone

import (
	"testing"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label string
		tier  threatmodel.ZoneTier
	}{
		{"front_door", threatmodel.TierEntry},
		{"Front_Door", threatmodel.TierEntry}, // case-insensitive exact match
		{"backyard", threatmodel.TierPerimeter},
		{"living_room", threatmodel.TierInterior},
		{"street", threatmodel.TierPublic},
		{"garage_door", threatmodel.TierEntry}, // substring "door"
		{"side_garden", threatmodel.TierPerimeter},
		{"guest_bedroom", threatmodel.TierInterior},
		{"attic", threatmodel.TierInterior}, // unrecognized -> fallback
	}
	for _, tc := range tests {
		got := Classify(tc.label)
		if got.Tier != tc.tier {
			t.Errorf("Classify(%q).Tier = %s, want %s", tc.label, got.Tier, tc.tier)
		}
		if got.Risk <= 0 || got.Risk > 1 {
			t.Errorf("Classify(%q).Risk = %v out of (0,1]", tc.label, got.Risk)
		}
	}
}

func TestEscalation_Breach(t *testing.T) {
	seq := []TierObservation{
		{Tier: threatmodel.TierEntry, Label: "front_door", Timestamp: 0},
		{Tier: threatmodel.TierInterior, Label: "living_room", Timestamp: 5},
	}
	if got := Escalation(seq); got != multBreach {
		t.Fatalf("got %v, want breach multiplier %v", got, multBreach)
	}
}

func TestEscalation_Approach(t *testing.T) {
	seq := []TierObservation{
		{Tier: threatmodel.TierPerimeter, Label: "driveway", Timestamp: 0},
		{Tier: threatmodel.TierEntry, Label: "front_door", Timestamp: 5},
	}
	if got := Escalation(seq); got != multApproach {
		t.Fatalf("got %v, want approach multiplier %v", got, multApproach)
	}
}

func TestEscalation_Surveillance(t *testing.T) {
	seq := []TierObservation{
		{Tier: threatmodel.TierPerimeter, Label: "backyard", Timestamp: 0},
		{Tier: threatmodel.TierPerimeter, Label: "side_yard", Timestamp: 20},
		{Tier: threatmodel.TierPerimeter, Label: "driveway", Timestamp: 40},
	}
	if got := Escalation(seq); got != multSurveillance {
		t.Fatalf("got %v, want surveillance multiplier %v", got, multSurveillance)
	}
}

func TestEscalation_None(t *testing.T) {
	seq := []TierObservation{
		{Tier: threatmodel.TierInterior, Label: "living_room", Timestamp: 0},
		{Tier: threatmodel.TierInterior, Label: "hallway", Timestamp: 5},
	}
	if got := Escalation(seq); got != multNone {
		t.Fatalf("got %v, want no escalation", got)
	}
}
