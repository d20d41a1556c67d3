package threatmodel

// ChainPatternKind names one of the five recognized behavioral templates
// an event-chain can match, or PatternNone.
type ChainPatternKind string

const (
	PatternDelivery      ChainPatternKind = "delivery"
	PatternIntrusion     ChainPatternKind = "intrusion"
	PatternForcedEntry   ChainPatternKind = "forced_entry"
	PatternActiveBreakIn ChainPatternKind = "active_break_in"
	PatternProwler       ChainPatternKind = "prowler"
	PatternNone          ChainPatternKind = "none"
)

// ChainPattern is a matched pattern together with its signed threat-score
// contribution (spec §4.3). Delta is 0 for PatternNone.
type ChainPattern struct {
	Kind  ChainPatternKind `json:"kind"`
	Delta float64          `json:"threat_delta"`
	// Tentative is true for a delivery match still inside its
	// prospective silence window (spec §4.3): the pattern has been
	// recognized but its (negative) delta must not be applied yet.
	Tentative bool `json:"tentative"`
}

// MaxChainEvents bounds the event-chain ring (spec §3).
const MaxChainEvents = 100

// ChainWindowSeconds is the time-trim window for the event-chain ring
// (spec §3).
const ChainWindowSeconds = 60.0
