package fusion

// TemporalFeatures is the minimal evidence the dampening stage needs
// (spec §4.5): delivery-window timing, night-time perimeter/entry
// contact, and learned delivery familiarity.
type TemporalFeatures struct {
	IsDeliveryWindow        bool // daytime hours, home mode home or away
	IsNightPerimeterOrEntry bool // night hours and (perimeter or entry) zone
	FamiliarDeliveryPattern bool // strong learned delivery habit at this hour
}

// TemporalConfig holds the two caller-tunable magnitudes spec §6 exposes
// through configure({temporal: {...}}): daytime_dampening_factor and
// night_vigilance_boost. DefaultTemporalConfig matches the spec's
// "default" preset (0.25, 1.2).
type TemporalConfig struct {
	DaytimeDampeningFactor float64 // magnitude subtracted during a delivery window
	NightVigilanceBoost    float64 // multiplier applied to the night perimeter/entry boost's base 0.20
}

// DefaultTemporalConfig is the spec §6 "default" preset.
var DefaultTemporalConfig = TemporalConfig{DaytimeDampeningFactor: 0.25, NightVigilanceBoost: 1.2}

// AggressiveTemporalConfig is the spec §6 "aggressive" preset.
var AggressiveTemporalConfig = TemporalConfig{DaytimeDampeningFactor: 0.10, NightVigilanceBoost: 1.4}

// ConservativeTemporalConfig is the spec §6 "conservative" preset.
var ConservativeTemporalConfig = TemporalConfig{DaytimeDampeningFactor: 0.40, NightVigilanceBoost: 1.1}

const (
	nightPerimeterBase   = 0.20
	familiarDeliveryDamp = -0.15
)

// TemporalDampening computes Dt (spec §4.5): -DaytimeDampeningFactor
// during a delivery window, +(nightPerimeterBase*NightVigilanceBoost)
// for night-time perimeter/entry contact, with an additional -0.15
// layered in when the user has a familiar delivery habit at this hour.
// The two delivery-related terms can co-occur; the night boost is
// independent of them.
func TemporalDampening(f TemporalFeatures, cfg TemporalConfig) float64 {
	var d float64
	if f.IsDeliveryWindow {
		d -= cfg.DaytimeDampeningFactor
		if f.FamiliarDeliveryPattern {
			d += familiarDeliveryDamp
		}
	}
	if f.IsNightPerimeterOrEntry {
		d += nightPerimeterBase * cfg.NightVigilanceBoost
	}
	return clamp(d, -0.4, 0.4)
}
