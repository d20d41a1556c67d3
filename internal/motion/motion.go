// Package motion implements the motion classifier (spec §4.4): deriving
// one of six activity categories from either raw vector samples (via
// energy/variance/L2-norm) or summary metadata.
//
// Modeled as a sum type with a single Analyze operation dispatching on
// the variant (spec §9: "avoid class-hierarchy style inheritance"),
// grounded on the teacher's entropy_analysis.go numeric feature
// extraction and realtime_risk.go's threshold decision-table shape.
package motion

import (
	"math"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// energyScale is the fixed normalization constant E0 from spec §4.4.
const energyScale = 4.0

// defaultMetadataVariance is used for the metadata path when no height
// is present (spec §4.4).
const defaultMetadataVariance = 0.5

// Source is the sum type over the two motion-classifier input variants.
// Exactly one of RawSamples or Metadata is populated.
type Source struct {
	RawSamples *RawSamples
	Metadata   *MetadataSummary
}

// RawSamples is the raw-vector-sample variant (spec §4.4).
type RawSamples struct {
	Samples    []float32
	SampleRate float64
	DurationS  float64
}

// MetadataSummary is the summary-metadata variant (spec §4.4).
type MetadataSummary struct {
	DurationS float64
	Energy    float64
	Height    *float64 // optional; nil means "use default variance"
}

// Analyze dispatches on the populated variant and returns the
// classified MotionFeatures.
func Analyze(src Source) threatmodel.MotionFeatures {
	var duration, energy, variance float64

	switch {
	case src.RawSamples != nil:
		duration, energy, variance = analyzeRaw(*src.RawSamples)
	case src.Metadata != nil:
		duration, energy, variance = analyzeMetadata(*src.Metadata)
	default:
		return threatmodel.MotionFeatures{Activity: threatmodel.ActivityUnknown, Confidence: 0.40}
	}

	activity, confidence := classify(duration, energy, variance)
	return threatmodel.MotionFeatures{
		Activity:   activity,
		DurationS:  duration,
		Energy:     energy,
		Variance:   variance,
		Confidence: confidence,
	}
}

// analyzeRaw computes L2-norm-derived mean energy (normalized to [0,1]
// via the fixed scale E0) and coefficient-of-variation from raw samples.
// Deterministic and order-invariant: both E and V are computed from
// order-independent sums (spec §4.4).
func analyzeRaw(rs RawSamples) (duration, energy, variance float64) {
	n := len(rs.Samples)
	if n == 0 {
		return rs.DurationS, 0, 0
	}

	var sumSq, sum float64
	for _, x := range rs.Samples {
		v := float64(x)
		sumSq += v * v
		sum += v
	}
	mean := sum / float64(n)
	e := sumSq / float64(n) // mean energy, Sigma x^2 / N
	energy = clamp01(e / energyScale)

	// Coefficient of variation: stdev / mean. Guard against a
	// near-zero mean (flat signal) to avoid blowing up to +-Inf.
	var sumSqDiff float64
	for _, x := range rs.Samples {
		d := float64(x) - mean
		sumSqDiff += d * d
	}
	stdev := math.Sqrt(sumSqDiff / float64(n))
	if math.Abs(mean) < 1e-9 {
		variance = 0
	} else {
		variance = clamp01(math.Abs(stdev / mean))
	}

	return rs.DurationS, energy, variance
}

func analyzeMetadata(m MetadataSummary) (duration, energy, variance float64) {
	v := defaultMetadataVariance
	if m.Height != nil {
		v = clamp01(*m.Height)
	}
	return m.DurationS, clamp01(m.Energy), v
}

// classify applies the activity decision table from spec §4.4: first
// match wins, in the order the table is published.
func classify(duration, energy, variance float64) (threatmodel.MotionActivity, float64) {
	low := variance < 0.4
	high := variance >= 0.6
	medium := variance >= 0.3 && variance <= 0.7

	switch {
	case duration < 10 && energy < 0.4 && low:
		return threatmodel.ActivityPackageDrop, 0.88
	case duration < 15 && energy < 0.5 && high:
		return threatmodel.ActivityPet, 0.82
	case energy > 0.7 && medium:
		return threatmodel.ActivityRunning, 0.90
	case duration > 5 && energy > 0.85 && low:
		return threatmodel.ActivityVehicle, 0.75
	case duration > 30 && energy >= 0.3 && energy <= 0.6 && low:
		return threatmodel.ActivityLoitering, 0.85
	case duration > 5 && energy >= 0.3 && energy <= 0.7 && medium:
		return threatmodel.ActivityWalking, 0.80
	default:
		return threatmodel.ActivityUnknown, 0.40
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
