package fusion

import "github.com/rawblock/threatcore/pkg/threatmodel"

// overrideFloor is the minimum score for the four override-kind events
// (spec §4.5).
const overrideFloor = 0.85

// CombineInput gathers every fusion sub-computation ready to be
// combined into a single calibrated score (spec §4.5).
type CombineInput struct {
	Bayesian          float64 // B
	Rules             float64 // R
	ChainDelta        float64 // nominal Δc (0 if pattern tentative or none)
	ZoneMultiplier    float64 // Zm
	TemporalDampening float64 // Dt, in [-0.4, 0.4]
	IsOverride        bool    // glass_break, fire, co2, water_leak
}

// CombineResult is the fused score plus the per-stage sub-scores, built
// so that Bayesian+Rules+ChainAdjustment+ZoneRisk+TemporalDampening
// reconstructs Score exactly (spec §8: audit sub-scores sum to
// final_score within 1e-6). Each sub-score after Bayesian/Rules records
// the *actual* effect of that stage (post-clamp), not the nominal input,
// so the identity holds even when a stage saturates at a [0,1] boundary.
type CombineResult struct {
	Score     float64
	SubScores threatmodel.SubScores
}

// Combine applies the fixed formula from spec §4.5:
//
//	raw   = clamp(0.55*B + 0.45*R, 0, 1)
//	s1    = clamp(raw + Δc, 0, 1)
//	s2    = clamp(s1 * Zm, 0, 1)
//	score = clamp(s2 + Dt, 0, 1)
//
// Override kinds bypass dampening entirely and floor the score at 0.85
// (spec §4.5); the floor-raise, if any, is still attributed to the
// temporal-dampening sub-score bucket so the audit identity holds.
func Combine(in CombineInput) CombineResult {
	bayesianSub := 0.55 * in.Bayesian
	rulesSub := 0.45 * in.Rules
	raw := clamp(bayesianSub+rulesSub, 0, 1)

	s1 := clamp(raw+in.ChainDelta, 0, 1)
	chainSub := s1 - raw

	s2 := clamp(s1*in.ZoneMultiplier, 0, 1)
	zoneSub := s2 - s1

	var score float64
	if in.IsOverride {
		score = s2
		if score < overrideFloor {
			score = overrideFloor
		}
	} else {
		score = clamp(s2+in.TemporalDampening, 0, 1)
	}
	temporalSub := score - s2

	return CombineResult{
		Score: score,
		SubScores: threatmodel.SubScores{
			Bayesian:          bayesianSub,
			Rules:             rulesSub,
			ChainAdjustment:   chainSub,
			ZoneRisk:          zoneSub,
			TemporalDampening: temporalSub,
		},
	}
}

// Confidence computes the confidence score: the max of event confidence,
// motion-classifier confidence, and |score-0.5|*2, clamped to [0,1]
// (spec §4.5).
func Confidence(eventConfidence, motionConfidence, score float64) float64 {
	c := eventConfidence
	if motionConfidence > c {
		c = motionConfidence
	}
	if spread := absf(score-0.5) * 2; spread > c {
		c = spread
	}
	return clamp(c, 0, 1)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
