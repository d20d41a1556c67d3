package threatmodel

// ZoneTier is a coarse proximity-to-entry classification for a location
// label (spec §3).
type ZoneTier string

const (
	TierEntry     ZoneTier = "entry"
	TierPerimeter ZoneTier = "perimeter"
	TierInterior  ZoneTier = "interior"
	TierPublic    ZoneTier = "public"
)

// ZoneDescriptor is the classification result for a single location
// label: its tier and a base risk in [0,1].
type ZoneDescriptor struct {
	Label string   `json:"label"`
	Tier  ZoneTier `json:"tier"`
	Risk  float64  `json:"risk"`
}
