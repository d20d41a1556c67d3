package sdk

import (
	"math"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// halfLifeDays is the retention policy for delivery-hour learning (spec
// §9, Open Question #1): exponential decay, 7-day half-life, applied
// lazily at read/write time rather than via a background sweeper.
const halfLifeDays = 7.0

// familiarityMaxWeight is the decayed weight at which an hour bucket is
// considered fully "familiar" (spec §9, Open Question #2's mental-model
// term derives from this).
const familiarityMaxWeight = 3.0

func decayFactor(lastObservedAt, now float64) float64 {
	ageDays := (now - lastObservedAt) / 86400.0
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Pow(0.5, ageDays/halfLifeDays)
}

// observeDelivery decays the profile's existing hour-weights by the
// elapsed time since LastObservedAt, then records one new confirmed
// delivery observation at hour.
func observeDelivery(p *threatmodel.UserPatternProfile, hour int, now float64) {
	if p.LastObservedAt > 0 {
		d := decayFactor(p.LastObservedAt, now)
		for i := range p.DeliveryHourWeight {
			p.DeliveryHourWeight[i] *= d
		}
	}
	p.DeliveryHourWeight[hour] += 1.0
	p.LastObservedAt = now
}

// familiarityAt reports how strongly the profile supports "a delivery
// at this hour is routine", in [0,1], after applying read-time decay.
func familiarityAt(p *threatmodel.UserPatternProfile, hour int, now float64) float64 {
	if p == nil {
		return 0
	}
	w := p.DeliveryHourWeight[hour]
	if p.LastObservedAt > 0 {
		w *= decayFactor(p.LastObservedAt, now)
	}
	f := w / familiarityMaxWeight
	if f > 1 {
		f = 1
	}
	if f < 0 {
		f = 0
	}
	return f
}

// mentalModelAdjustment derives the capped additive rule-score term
// (spec §9, Open Question #2) from learned familiarity and false-positive
// feedback: a familiar delivery pattern and each recorded false positive
// for the event kind nudge the score down. The term is never positive; a
// novel kind/hour combination adds nothing. Clamped to [-0.10, 0.10]
// here and again by fusion.Score.
func mentalModelAdjustment(familiarity float64, falsePositives int) float64 {
	adj := -0.10 * familiarity
	if falsePositives > 0 {
		adj -= 0.02 * float64(falsePositives)
	}
	if adj < -0.10 {
		adj = -0.10
	}
	if adj > 0.10 {
		adj = 0.10
	}
	return adj
}
