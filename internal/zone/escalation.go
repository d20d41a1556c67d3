package zone

import "github.com/rawblock/threatcore/pkg/threatmodel"

// TierObservation is one (tier, label, timestamp) observation from the
// recent event chain, ordered oldest-first.
type TierObservation struct {
	Tier      threatmodel.ZoneTier
	Label     string
	Timestamp float64
}

// Escalation multipliers (spec §4.2).
const (
	multBreach       = 2.0 // entry -> interior
	multApproach     = 1.8 // perimeter -> entry
	multSurveillance = 1.4 // >=3 distinct perimeter zones within 60s
	multNone         = 1.0
)

// windowSeconds bounds the surveillance rule's lookback (spec §4.2:
// "within 60 s").
const windowSeconds = 60.0

// Escalation inspects the ordered tier sequence over the recent chain
// window and returns the multiplier of the first matching rule, in
// priority order (spec §4.2):
//  1. entry -> interior: x2.0 (breach)
//  2. perimeter -> entry: x1.8 (approach)
//  3. >=3 distinct perimeter zones within 60s: x1.4 (surveillance)
//  4. otherwise x1.0
func Escalation(seq []TierObservation) float64 {
	if len(seq) < 2 {
		return multNone
	}

	for i := 1; i < len(seq); i++ {
		prev, cur := seq[i-1].Tier, seq[i].Tier
		if prev == threatmodel.TierEntry && cur == threatmodel.TierInterior {
			return multBreach
		}
	}
	for i := 1; i < len(seq); i++ {
		prev, cur := seq[i-1].Tier, seq[i].Tier
		if prev == threatmodel.TierPerimeter && cur == threatmodel.TierEntry {
			return multApproach
		}
	}

	if hasSurveillancePattern(seq) {
		return multSurveillance
	}

	return multNone
}

// hasSurveillancePattern reports whether >=3 distinct perimeter-tier
// zone labels were observed within any windowSeconds span.
func hasSurveillancePattern(seq []TierObservation) bool {
	var perimeter []TierObservation
	for _, o := range seq {
		if o.Tier == threatmodel.TierPerimeter {
			perimeter = append(perimeter, o)
		}
	}
	if len(perimeter) < 3 {
		return false
	}
	for i := range perimeter {
		distinct := map[string]bool{perimeter[i].Label: true}
		for j := i + 1; j < len(perimeter); j++ {
			if perimeter[j].Timestamp-perimeter[i].Timestamp > windowSeconds {
				break
			}
			distinct[perimeter[j].Label] = true
			if len(distinct) >= 3 {
				return true
			}
		}
	}
	return false
}
