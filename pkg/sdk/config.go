package sdk

import "github.com/rawblock/threatcore/internal/fusion"

// Config is the caller-tunable surface exposed through Configure (spec
// §6: `configure({ temporal: {...} })`).
type Config struct {
	Temporal TemporalConfig
}

// TemporalConfig names the six recognized temporal options from spec
// §6. DeliveryWindowStart/End and NightStart/End are hours-of-day
// [0,23]; the two factor fields feed fusion.TemporalConfig directly.
type TemporalConfig struct {
	DeliveryWindowStart    int
	DeliveryWindowEnd      int
	NightStart             int
	NightEnd               int
	DaytimeDampeningFactor float64
	NightVigilanceBoost    float64
}

func (c TemporalConfig) toFusionConfig() fusion.TemporalConfig {
	return fusion.TemporalConfig{
		DaytimeDampeningFactor: c.DaytimeDampeningFactor,
		NightVigilanceBoost:    c.NightVigilanceBoost,
	}
}

// The three named presets from spec §6: (dampening, boost) pairs of
// (0.25, 1.2), (0.10, 1.4), (0.40, 1.1), sharing the same 9-18/22-6
// window defaults.
var (
	DefaultConfig = Config{Temporal: TemporalConfig{
		DeliveryWindowStart: 9, DeliveryWindowEnd: 18,
		NightStart: 22, NightEnd: 6,
		DaytimeDampeningFactor: 0.25, NightVigilanceBoost: 1.2,
	}}
	AggressiveConfig = Config{Temporal: TemporalConfig{
		DeliveryWindowStart: 9, DeliveryWindowEnd: 18,
		NightStart: 22, NightEnd: 6,
		DaytimeDampeningFactor: 0.10, NightVigilanceBoost: 1.4,
	}}
	ConservativeConfig = Config{Temporal: TemporalConfig{
		DeliveryWindowStart: 9, DeliveryWindowEnd: 18,
		NightStart: 22, NightEnd: 6,
		DaytimeDampeningFactor: 0.40, NightVigilanceBoost: 1.1,
	}}
)

// inNightWindow reports whether hour falls in [NightStart,24) U
// [0,NightEnd) — the window wraps past midnight.
func (c TemporalConfig) inNightWindow(hour int) bool {
	if c.NightStart <= c.NightEnd {
		return hour >= c.NightStart && hour < c.NightEnd
	}
	return hour >= c.NightStart || hour < c.NightEnd
}

func (c TemporalConfig) inDeliveryWindow(hour int) bool {
	return hour >= c.DeliveryWindowStart && hour < c.DeliveryWindowEnd
}
