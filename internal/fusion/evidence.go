// Package fusion implements the multi-stage fusion pipeline (spec
// §4.5): Bayesian evidence scoring in log-odds form, a rule-based
// feature extractor, and their deterministic combination with chain
// adjustment, zone escalation, and temporal dampening.
//
// Grounded on the teacher's llr_engine.go (ProbToLLR: converting a
// probability into a log-likelihood-ratio weight) generalized from a
// single CIOH factor to a fixed evidence-factor table, and
// realtime_risk.go's accumulate-then-classify pipeline shape.
package fusion

import "math"

// Context is the read-only evidence surface every factor predicate
// inspects. It is built once per assessment by the caller (pkg/sdk) from
// the event, motion features, zone descriptor, and chain pattern.
type Context struct {
	IsGlassBreak            bool
	IsFire                  bool
	IsCO2                   bool
	IsWaterLeak             bool
	IsDoorbellChime         bool
	IsDoorOrWindow          bool
	IsDoorEvent             bool // event kind is specifically "door", not "window"
	IsWindowEvent           bool // event kind is specifically "window", not "door"
	IsMotionEventKind       bool // event kind is "motion" (independent of the activity classifier's verdict)
	IsVehicleEvent          bool
	IsUnknownKind           bool
	IsAwayMode              bool
	IsHomeMode              bool
	IsNightMode             bool
	IsUnknownHomeMode       bool
	IsNightHours            bool // 22:00-06:00 UTC by default
	IsDaytimeHours          bool // 09:00-18:00 UTC by default
	IsWeekday               bool
	IsEntryZone             bool
	IsPerimeterZone         bool
	IsInteriorZone          bool
	IsPublicZone            bool
	HighZoneRisk            bool // zone base risk >= 0.65
	LowZoneRisk             bool // zone base risk < 0.35
	IsPetClassified         bool
	IsRunning               bool
	IsLoitering             bool
	IsWalking               bool
	IsPackageDrop           bool
	MotionUnknownActivity   bool // motion classifier could not assign an activity
	MotionHighEnergy        bool // motion energy > 0.7
	MotionLowEnergy         bool // motion energy < 0.2
	MotionLongDuration      bool // motion duration > 30s
	MotionShortDuration     bool // motion duration in (0s, 3s) — a brief blip
	HighConfidence          bool // event confidence > 0.8
	LowConfidence           bool // event confidence < 0.3
	IsEscalationPattern     bool // chain pattern is one of intrusion/forced_entry/active_break_in/prowler
	IsIntrusionPattern      bool
	IsForcedEntryPattern    bool
	IsActiveBreakInPattern  bool
	IsProwlerPattern        bool
	IsNoPattern             bool // no chain pattern matched — an isolated, uncorroborated event
	IsDeliveryPattern       bool // chain pattern is delivery, tentative or resolved
	RepeatWithinWindow      bool // same event kind seen earlier in the chain window
	FamiliarDeliveryPattern bool // user has a strong learned delivery habit at this hour
}

// evidenceFactor is one (P(e|threat), P(e|¬threat), weight) entry from
// the fixed 54-factor table (spec §4.5). ID fixes the summation order so
// replaying identical input yields bit-identical posteriors regardless
// of which factors evaluate true (spec §9: determinism).
type evidenceFactor struct {
	id      string
	applies func(Context) bool
	pTrue   float64 // P(e|threat)
	pFalse  float64 // P(e|not-threat)
	weight  float64
}

// factorTable is the fixed 54-entry evidence table, declared in the
// order its weighted log-likelihood-ratios are always summed (spec
// §9). It covers the seven factors spec.md §4.5 names explicitly, one
// factor per remaining EventKind/MotionActivity/ZoneTier/ChainPattern
// value, threshold factors over the zone risk score and motion
// energy/duration the pipeline already computes, and a handful of
// interaction factors (e.g. an entry-zone event at night) that
// correct for the independence naive log-odds summation otherwise
// assumes between correlated cues.
//
// Chain pattern kinds are scored individually (intrusion/forced_entry/
// active_break_in/prowler) rather than through the generic
// IsEscalationPattern flag, so severity differs per pattern instead of
// collapsing four kinds onto one weight; IsEscalationPattern itself has
// no factor of its own here and is read only by the rule scorer's
// combined bonus and by two interaction factors (repeat_escalation,
// high_confidence_escalation).
var factorTable = []evidenceFactor{
	{"glass_break", func(c Context) bool { return c.IsGlassBreak }, 0.95, 0.05, 2.5},
	{"fire", func(c Context) bool { return c.IsFire }, 0.97, 0.03, 2.6},
	{"co2", func(c Context) bool { return c.IsCO2 }, 0.93, 0.07, 2.3},
	{"water_leak", func(c Context) bool { return c.IsWaterLeak }, 0.70, 0.20, 1.2},
	{"away_mode", func(c Context) bool { return c.IsAwayMode }, 0.90, 0.10, 2.0},
	{"home_mode", func(c Context) bool { return c.IsHomeMode }, 0.10, 0.40, 0.9},
	{"unknown_home_mode", func(c Context) bool { return c.IsUnknownHomeMode }, 0.50, 0.50, 0.1},
	{"night_mode", func(c Context) bool { return c.IsNightMode }, 0.55, 0.25, 1.1},
	{"night_hours", func(c Context) bool { return c.IsNightHours }, 0.80, 0.30, 1.5},
	{"daytime_hours", func(c Context) bool { return c.IsDaytimeHours }, 0.30, 0.55, 0.6},
	{"weekday", func(c Context) bool { return c.IsWeekday }, 0.50, 0.55, 0.2},
	{"entry_zone", func(c Context) bool { return c.IsEntryZone }, 0.75, 0.35, 1.4},
	{"perimeter_zone", func(c Context) bool { return c.IsPerimeterZone }, 0.60, 0.40, 1.0},
	{"interior_zone", func(c Context) bool { return c.IsInteriorZone }, 0.25, 0.45, 0.5},
	{"public_zone", func(c Context) bool { return c.IsPublicZone }, 0.20, 0.40, 0.4},
	{"high_zone_risk", func(c Context) bool { return c.HighZoneRisk }, 0.70, 0.40, 1.0},
	{"low_zone_risk", func(c Context) bool { return c.LowZoneRisk }, 0.20, 0.45, 0.6},
	{"pet_classified", func(c Context) bool { return c.IsPetClassified }, 0.10, 0.90, 0.5},
	{"motion_running", func(c Context) bool { return c.IsRunning }, 0.65, 0.30, 1.0},
	{"motion_loitering", func(c Context) bool { return c.IsLoitering }, 0.70, 0.25, 1.1},
	{"motion_walking", func(c Context) bool { return c.IsWalking }, 0.30, 0.55, 0.5},
	{"motion_package_drop", func(c Context) bool { return c.IsPackageDrop }, 0.08, 0.85, 0.5},
	{"motion_unknown_activity", func(c Context) bool { return c.MotionUnknownActivity }, 0.45, 0.50, 0.2},
	{"motion_high_energy", func(c Context) bool { return c.MotionHighEnergy }, 0.65, 0.30, 0.9},
	{"motion_low_energy", func(c Context) bool { return c.MotionLowEnergy }, 0.20, 0.50, 0.5},
	{"motion_long_duration", func(c Context) bool { return c.MotionLongDuration }, 0.60, 0.35, 0.7},
	{"motion_short_duration", func(c Context) bool { return c.MotionShortDuration }, 0.25, 0.45, 0.4},
	{"vehicle_event", func(c Context) bool { return c.IsVehicleEvent }, 0.40, 0.45, 0.3},
	{"doorbell_chime", func(c Context) bool { return c.IsDoorbellChime }, 0.45, 0.70, 0.6},
	{"delivery_window", func(c Context) bool { return c.IsDaytimeHours }, 0.35, 0.75, 0.8},
	{"door_or_window", func(c Context) bool { return c.IsDoorOrWindow }, 0.55, 0.40, 0.7},
	{"door_event", func(c Context) bool { return c.IsDoorEvent }, 0.55, 0.40, 0.5},
	{"window_event", func(c Context) bool { return c.IsWindowEvent }, 0.50, 0.40, 0.45},
	{"motion_event_kind", func(c Context) bool { return c.IsMotionEventKind }, 0.45, 0.50, 0.2},
	{"unknown_kind", func(c Context) bool { return c.IsUnknownKind }, 0.40, 0.50, 0.3},
	{"high_confidence", func(c Context) bool { return c.HighConfidence }, 0.60, 0.45, 0.4},
	{"low_confidence", func(c Context) bool { return c.LowConfidence }, 0.35, 0.55, 0.4},
	{"intrusion_pattern", func(c Context) bool { return c.IsIntrusionPattern }, 0.85, 0.15, 1.5},
	{"forced_entry_pattern", func(c Context) bool { return c.IsForcedEntryPattern }, 0.85, 0.18, 1.4},
	{"active_break_in_pattern", func(c Context) bool { return c.IsActiveBreakInPattern }, 0.90, 0.12, 1.6},
	{"prowler_pattern", func(c Context) bool { return c.IsProwlerPattern }, 0.75, 0.25, 1.0},
	{"no_pattern", func(c Context) bool { return c.IsNoPattern }, 0.45, 0.55, 0.3},
	{"delivery_pattern", func(c Context) bool { return c.IsDeliveryPattern }, 0.10, 0.75, 1.0},
	{"repeat_within_window", func(c Context) bool { return c.RepeatWithinWindow }, 0.55, 0.40, 0.6},
	{"familiar_delivery_pattern", func(c Context) bool { return c.FamiliarDeliveryPattern }, 0.05, 0.80, 0.9},
	{"entry_zone_at_night", func(c Context) bool { return c.IsEntryZone && c.IsNightHours }, 0.80, 0.25, 0.4},
	{"perimeter_zone_away", func(c Context) bool { return c.IsPerimeterZone && c.IsAwayMode }, 0.75, 0.30, 0.4},
	{"door_or_window_at_night", func(c Context) bool { return c.IsDoorOrWindow && c.IsNightHours }, 0.78, 0.28, 0.4},
	{"repeat_escalation", func(c Context) bool { return c.RepeatWithinWindow && c.IsEscalationPattern }, 0.88, 0.15, 0.5},
	{"familiar_and_daytime", func(c Context) bool { return c.FamiliarDeliveryPattern && c.IsDaytimeHours }, 0.04, 0.80, 0.5},
	{"high_confidence_escalation", func(c Context) bool { return c.HighConfidence && c.IsEscalationPattern }, 0.90, 0.15, 0.5},
	{"low_confidence_benign", func(c Context) bool { return c.LowConfidence && (c.IsPetClassified || c.IsPackageDrop) }, 0.05, 0.85, 0.4},
	{"running_at_night", func(c Context) bool { return c.IsRunning && c.IsNightHours }, 0.75, 0.25, 0.4},
	{"loitering_perimeter", func(c Context) bool { return c.IsLoitering && c.IsPerimeterZone }, 0.78, 0.22, 0.4},
}

// priorLogOdds is logit(0.15): the fixed prior that "most events are
// benign" (spec §4.5).
var priorLogOdds = logit(0.15)

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

// logistic is the inverse of logit, squashing a log-odds sum back to a
// probability in (0,1).
func logistic(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// BayesianScore computes P(threat | evidence) via the log-odds form:
// posterior log-odds = prior log-odds + sum over factors of
// weight * log(P(e|T)/P(e|notT)) for every factor that applies, summed
// in the fixed factorTable order. Summing in log-odds form avoids
// underflow and makes the combination commutative across evidence order
// (spec §4.5, §8).
func BayesianScore(ctx Context) float64 {
	logOdds := priorLogOdds
	for _, f := range factorTable {
		if !f.applies(ctx) {
			continue
		}
		llr := math.Log(f.pTrue / f.pFalse)
		logOdds += f.weight * llr
	}
	return logistic(logOdds)
}
