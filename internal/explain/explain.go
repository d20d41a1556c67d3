// Package explain composes the human-readable summary, reasoning, and
// recommendation attached to every assessment result (spec §4.6).
//
// Grounded on the teacher's internal/heuristics/alert_system.go:
// buildDescription's string-concatenation-over-active-signals shape for
// Reasoning, and EmitFromAssessment's severity-to-title selection for
// the opening/recommendation tables.
package explain

import (
	"fmt"
	"strings"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// TimeBucket names a coarse time-of-day bucket used for tone selection.
type TimeBucket string

const (
	BucketMorning   TimeBucket = "morning"
	BucketAfternoon TimeBucket = "afternoon"
	BucketEvening   TimeBucket = "evening"
	BucketNight     TimeBucket = "night"
)

// TimeBucketForHour maps a local hour-of-day (0-23) to its bucket.
func TimeBucketForHour(hour int) TimeBucket {
	switch {
	case hour >= 5 && hour < 12:
		return BucketMorning
	case hour >= 12 && hour < 17:
		return BucketAfternoon
	case hour >= 17 && hour < 22:
		return BucketEvening
	default:
		return BucketNight
	}
}

// Factor is one contributing signal that actually fired, used to build
// the declining-weight reasoning string. Weight is the absolute
// magnitude of its contribution — sign is irrelevant to ordering.
type Factor struct {
	Label  string
	Weight float64
}

// Input gathers everything the composer needs. Fields correspond
// directly to the selection axes named in spec §4.6: threat level,
// chain pattern, motion activity, zone tier, time-of-day bucket, and
// home mode.
type Input struct {
	Level     threatmodel.ThreatLevel
	Chain     threatmodel.ChainPatternKind
	Motion    threatmodel.MotionActivity
	Zone      threatmodel.ZoneDescriptor
	Bucket    TimeBucket
	Mode      threatmodel.HomeMode
	EventKind threatmodel.EventKind

	// Factors lists every signal that actually fired, contributing to
	// the final score. Order does not matter — Compose sorts by
	// declining |Weight|.
	Factors []Factor
}

const (
	minSummaryLen = 40
	maxSummaryLen = 200
)

// Output is the composed summary/reasoning/recommendation triple.
type Output struct {
	Summary        string
	Reasoning      string
	Recommendation string
}

// Compose builds the deterministic, template-free explanation (spec
// §4.6). Identical Input always yields identical Output.
func Compose(in Input) Output {
	opening := selectOpening(in)
	details := selectDetails(in)
	recommendation := selectRecommendation(in)

	summary := opening
	if details != "" {
		summary = strings.TrimSpace(opening + " " + details)
	}
	summary = boundSummary(summary, in)

	return Output{
		Summary:        summary,
		Reasoning:      buildReasoning(in),
		Recommendation: recommendation,
	}
}

func selectOpening(in Input) string {
	switch in.Level {
	case threatmodel.LevelCritical:
		return criticalOpening(in)
	case threatmodel.LevelElevated:
		return elevatedOpening(in)
	case threatmodel.LevelStandard:
		return standardOpening(in)
	default:
		return lowOpening(in)
	}
}

func criticalOpening(in Input) string {
	switch in.EventKind {
	case threatmodel.KindFire:
		return "Fire alert: possible fire detected."
	case threatmodel.KindCO2:
		return "CO2 alert: elevated carbon monoxide detected."
	case threatmodel.KindGlassBreak:
		return "Intruder alert: glass break detected."
	default:
		return "Intruder alert: high-confidence threat detected."
	}
}

func elevatedOpening(in Input) string {
	switch in.Chain {
	case threatmodel.PatternProwler:
		return "Suspicious movement around the perimeter this " + string(in.Bucket) + "."
	case threatmodel.PatternForcedEntry, threatmodel.PatternIntrusion:
		return "Suspicious activity at an entry point this " + string(in.Bucket) + "."
	default:
		return "Suspicious movement this " + string(in.Bucket) + "."
	}
}

func standardOpening(in Input) string {
	switch in.EventKind {
	case threatmodel.KindDoorbellChime:
		return "Someone rang the bell this " + string(in.Bucket) + "."
	case threatmodel.KindDoor, threatmodel.KindWindow:
		return "Door or window activity this " + string(in.Bucket) + "."
	default:
		return "Activity detected this " + string(in.Bucket) + "."
	}
}

func lowOpening(in Input) string {
	switch {
	case in.Chain == threatmodel.PatternDelivery, in.Motion == threatmodel.ActivityPackageDrop:
		return "Package delivered this " + string(in.Bucket) + "."
	case in.Motion == threatmodel.ActivityPet:
		return "Pet movement detected."
	default:
		return "Routine activity this " + string(in.Bucket) + "."
	}
}

func selectDetails(in Input) string {
	var parts []string
	if in.Zone.Label != "" {
		parts = append(parts, "Location: "+in.Zone.Label+".")
	}
	if in.Motion != "" && in.Motion != threatmodel.ActivityUnknown {
		parts = append(parts, "Motion classified as "+string(in.Motion)+".")
	}
	return strings.Join(parts, " ")
}

func selectRecommendation(in Input) string {
	switch in.Level {
	case threatmodel.LevelCritical:
		return "Check the camera feed immediately and contact authorities if the threat is confirmed."
	case threatmodel.LevelElevated:
		return "Review the camera feed and consider enabling additional monitoring."
	case threatmodel.LevelStandard:
		return "No action required; review at your convenience."
	default:
		return "No action needed."
	}
}

// boundSummary enforces the 40-200 character bound (spec §4.6) by
// padding with neutral zone/mode clauses or cutting the text at a fixed
// offset and appending an ellipsis. Padding is always content — a clause describing the zone
// tier or home mode — never literal whitespace, so a summary that
// still reads short never looks truncated or broken.
func boundSummary(s string, in Input) string {
	if len(s) < minSummaryLen {
		s = s + fmt.Sprintf(" (%s zone, %s mode).", in.Zone.Tier, in.Mode)
	}
	if len(s) > maxSummaryLen {
		s = strings.TrimSpace(s[:maxSummaryLen-1]) + "…"
	}
	if len(s) < minSummaryLen {
		s = s + " No further detail is available for this assessment."
	}
	if len(s) > maxSummaryLen {
		s = strings.TrimSpace(s[:maxSummaryLen-1]) + "…"
	}
	return s
}

// buildReasoning concatenates the factors that actually fired in
// declining |weight| order, then appends the four fixed context clauses
// spec §4.6 requires (time, location, motion/chain finding, mode) —
// never citing any of these unless the corresponding field is actually
// populated.
func buildReasoning(in Input) string {
	factors := append([]Factor(nil), in.Factors...)
	sortFactorsDescending(factors)

	var b strings.Builder
	for i, f := range factors {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Label)
	}

	var clauses []string
	if in.Bucket != "" {
		clauses = append(clauses, "time: "+string(in.Bucket))
	}
	if in.Zone.Label != "" {
		clauses = append(clauses, fmt.Sprintf("location: %s (%s)", in.Zone.Label, in.Zone.Tier))
	}
	if in.Chain != "" && in.Chain != threatmodel.PatternNone {
		clauses = append(clauses, "chain: "+string(in.Chain))
	} else if in.Motion != "" {
		clauses = append(clauses, "motion: "+string(in.Motion))
	}
	if in.Mode != "" {
		clauses = append(clauses, "mode: "+string(in.Mode))
	}

	if b.Len() > 0 && len(clauses) > 0 {
		b.WriteString("; ")
	}
	b.WriteString(strings.Join(clauses, "; "))
	return b.String()
}

func sortFactorsDescending(f []Factor) {
	for i := 1; i < len(f); i++ {
		for j := i; j > 0 && absf(f[j].Weight) > absf(f[j-1].Weight); j-- {
			f[j], f[j-1] = f[j-1], f[j]
		}
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
