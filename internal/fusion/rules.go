package fusion

// RuleFeatures is the >=20-feature extraction the rule scorer consumes
// (spec §4.5): time bucket, home mode, zone tier, confidence band, chain
// pattern presence, repeat-within-window, user-pattern familiarity, and
// so on. It shares most of its fields with Context by design — the rule
// scorer and the Bayesian evidence engine look at the same evidence
// surface but combine it differently (additive decision-tree scoring
// here, log-odds there).
type RuleFeatures struct {
	Context

	// MentalModelAdjustment folds the spec's under-specified "mental
	// model" textual layer in as an additive term, capped to ±0.10
	// (spec §9, Open Question #2). Computed by the caller from
	// UserPatternProfile familiarity; 0 when no profile exists.
	MentalModelAdjustment float64
}

const (
	nightBoost         = 0.15
	entryPointBoost    = 0.10
	awayModeMultiplier = 1.2
	mentalModelCap     = 0.10
)

// RuleTriggered names one fired rule, recorded in the audit trail's
// rules_triggered list (spec §3).
type RuleTriggered struct {
	Name  string
	Delta float64
}

// Score runs the decision-tree-style rule scorer over RuleFeatures and
// returns a value in [0,1] plus the list of rules that actually fired
// (used verbatim in the audit trail — spec §7: "no factor may be cited
// that did not actually fire").
func Score(f RuleFeatures) (float64, []RuleTriggered) {
	var score float64
	var fired []RuleTriggered

	add := func(name string, delta float64) {
		score += delta
		fired = append(fired, RuleTriggered{Name: name, Delta: delta})
	}

	// Base contributions from event/context category.
	switch {
	case f.IsGlassBreak, f.IsFire, f.IsCO2:
		add("critical_signal", 0.65)
	case f.IsWaterLeak:
		add("hazard_signal", 0.35)
	case f.IsDoorOrWindow:
		add("entry_contact", 0.30)
	case f.IsDoorbellChime:
		add("doorbell", 0.15)
	}

	if f.IsRunning {
		add("running_motion", 0.25)
	}
	if f.IsLoitering {
		add("loitering_motion", 0.30)
	}
	if f.IsWalking {
		add("walking_motion", 0.10)
	}
	if f.IsVehicleEvent {
		add("vehicle_motion", 0.10)
	}
	if f.IsPetClassified || f.IsPackageDrop {
		add("benign_motion", -0.20)
	}
	if f.IsUnknownKind {
		add("unknown_kind", 0.05)
	}

	if f.IsEntryZone {
		add("entry_point", entryPointBoost)
	}
	if f.IsPerimeterZone {
		add("perimeter_zone", 0.08)
	}
	if f.IsPublicZone {
		add("public_zone", -0.05)
	}

	if f.IsNightHours {
		add("night_boost", nightBoost)
	}
	if f.IsDaytimeHours {
		add("delivery_window", -0.10)
	}

	if f.IsEscalationPattern {
		add("escalation_pattern", 0.30)
	}
	if f.IsDeliveryPattern {
		add("delivery_pattern", -0.15)
	}
	if f.RepeatWithinWindow {
		add("repeat_within_window", 0.10)
	}
	if f.FamiliarDeliveryPattern {
		add("familiar_delivery_pattern", -0.20)
	}

	if f.HighConfidence {
		add("high_confidence", 0.08)
	}
	if f.LowConfidence {
		add("low_confidence", -0.08)
	}

	if f.IsAwayMode {
		score *= awayModeMultiplier
		fired = append(fired, RuleTriggered{Name: "away_mode_multiplier", Delta: 0})
	}

	adj := clamp(f.MentalModelAdjustment, -mentalModelCap, mentalModelCap)
	if adj != 0 {
		add("mental_model_adjustment", adj)
	}

	return clamp(score, 0, 1), fired
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
