// Package zone implements the zone classifier (spec §4.2): mapping
// free-text location labels to risk tiers, and detecting escalation
// across sequences of recent locations.
//
// Grounded on the teacher's timing_analysis.go classification-table
// style (switch over derived categories with attached confidence) and
// its exact-then-substring-then-fallback matching chain.
package zone

import (
	"strings"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// table holds the static exact-match label → descriptor table (spec
// §3). Each risk value lies within its tier's published range.
var table = map[string]threatmodel.ZoneDescriptor{
	"front_door": {Tier: threatmodel.TierEntry, Risk: 0.75},
	"back_door":  {Tier: threatmodel.TierEntry, Risk: 0.73},
	"side_door":  {Tier: threatmodel.TierEntry, Risk: 0.70},

	"backyard":  {Tier: threatmodel.TierPerimeter, Risk: 0.66},
	"side_yard": {Tier: threatmodel.TierPerimeter, Risk: 0.63},
	"driveway":  {Tier: threatmodel.TierPerimeter, Risk: 0.60},

	"living_room": {Tier: threatmodel.TierInterior, Risk: 0.35},
	"bedroom":     {Tier: threatmodel.TierInterior, Risk: 0.38},
	"hallway":     {Tier: threatmodel.TierInterior, Risk: 0.30},

	"street":   {Tier: threatmodel.TierPublic, Risk: 0.30},
	"sidewalk": {Tier: threatmodel.TierPublic, Risk: 0.30},
}

// fallbackDescriptor is used for any label that matches neither the
// exact table nor a tier keyword (spec §3, §4.2).
var fallbackDescriptor = threatmodel.ZoneDescriptor{Tier: threatmodel.TierInterior, Risk: 0.35}

// Classify maps a free-text location label to a ZoneDescriptor: first a
// case-insensitive exact match against the static table, then a
// substring match against tier keywords, then the interior/0.35
// fallback.
func Classify(label string) threatmodel.ZoneDescriptor {
	norm := strings.ToLower(strings.TrimSpace(label))

	if d, ok := table[norm]; ok {
		d.Label = label
		return d
	}

	switch {
	case strings.Contains(norm, "door"):
		return descriptorFor(label, threatmodel.TierEntry, 0.70)
	case strings.Contains(norm, "yard"), strings.Contains(norm, "garden"):
		return descriptorFor(label, threatmodel.TierPerimeter, 0.60)
	case strings.Contains(norm, "room"), strings.Contains(norm, "hall"), strings.Contains(norm, "kitchen"):
		return descriptorFor(label, threatmodel.TierInterior, 0.35)
	}

	d := fallbackDescriptor
	d.Label = label
	return d
}

func descriptorFor(label string, tier threatmodel.ZoneTier, risk float64) threatmodel.ZoneDescriptor {
	return threatmodel.ZoneDescriptor{Label: label, Tier: tier, Risk: risk}
}
