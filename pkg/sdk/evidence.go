package sdk

import (
	"github.com/rawblock/threatcore/internal/fusion"
	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// buildEvidenceContext maps one assessment's feature surface onto
// fusion.Context's evidence predicates. It is a pure function so the
// Bayesian stage stays reproducible given identical inputs (spec §9).
//
// isNight/isDelivery are the caller's already-computed spec §4.5 window
// checks (inNightWindow: 22:00-06:00, inDeliveryWindow: 09:00-18:00) —
// passed in rather than re-derived from the explain time bucket so the
// Bayesian/rule evidence and the temporal dampening stage always agree
// on which hours count as night/delivery within the same assessment.
func buildEvidenceContext(
	event threatmodel.Event,
	zoneDescriptor threatmodel.ZoneDescriptor,
	motionFeatures threatmodel.MotionFeatures,
	pattern threatmodel.ChainPattern,
	homeMode threatmodel.HomeMode,
	isNight bool,
	isDelivery bool,
	repeatWithinWindow bool,
	familiarity float64,
) fusion.Context {
	return fusion.Context{
		IsGlassBreak:      event.Kind == threatmodel.KindGlassBreak,
		IsFire:            event.Kind == threatmodel.KindFire,
		IsCO2:             event.Kind == threatmodel.KindCO2,
		IsWaterLeak:       event.Kind == threatmodel.KindWaterLeak,
		IsDoorbellChime:   event.Kind == threatmodel.KindDoorbellChime,
		IsDoorOrWindow:    event.Kind == threatmodel.KindDoor || event.Kind == threatmodel.KindWindow,
		IsDoorEvent:       event.Kind == threatmodel.KindDoor,
		IsWindowEvent:     event.Kind == threatmodel.KindWindow,
		IsMotionEventKind: event.Kind == threatmodel.KindMotion,
		IsVehicleEvent:    event.Kind == threatmodel.KindVehicle || motionFeatures.Activity == threatmodel.ActivityVehicle,
		IsUnknownKind:     event.Kind == threatmodel.KindUnknown,

		IsAwayMode:        homeMode == threatmodel.ModeAway,
		IsHomeMode:        homeMode == threatmodel.ModeHome,
		IsNightMode:       homeMode == threatmodel.ModeNight,
		IsUnknownHomeMode: homeMode == threatmodel.ModeUnknown,

		IsNightHours:   isNight,
		IsDaytimeHours: isDelivery,
		IsWeekday:      true,

		IsEntryZone:     zoneDescriptor.Tier == threatmodel.TierEntry,
		IsPerimeterZone: zoneDescriptor.Tier == threatmodel.TierPerimeter,
		IsInteriorZone:  zoneDescriptor.Tier == threatmodel.TierInterior,
		IsPublicZone:    zoneDescriptor.Tier == threatmodel.TierPublic,
		HighZoneRisk:    zoneDescriptor.Risk >= 0.65,
		LowZoneRisk:     zoneDescriptor.Risk < 0.35,

		IsPetClassified: motionFeatures.Activity == threatmodel.ActivityPet || event.Kind == threatmodel.KindPet,
		IsRunning:       motionFeatures.Activity == threatmodel.ActivityRunning,
		IsLoitering:     motionFeatures.Activity == threatmodel.ActivityLoitering,
		IsWalking:       motionFeatures.Activity == threatmodel.ActivityWalking,
		IsPackageDrop:   motionFeatures.Activity == threatmodel.ActivityPackageDrop,

		MotionUnknownActivity: motionFeatures.Activity == threatmodel.ActivityUnknown,
		MotionHighEnergy:      motionFeatures.Energy > 0.7,
		MotionLowEnergy:       motionFeatures.Energy < 0.2,
		MotionLongDuration:    motionFeatures.DurationS > 30,
		MotionShortDuration:   motionFeatures.DurationS > 0 && motionFeatures.DurationS < 3,

		HighConfidence: event.Confidence > 0.8,
		LowConfidence:  event.Confidence < 0.3,

		IsEscalationPattern: pattern.Kind == threatmodel.PatternIntrusion || pattern.Kind == threatmodel.PatternForcedEntry ||
			pattern.Kind == threatmodel.PatternActiveBreakIn || pattern.Kind == threatmodel.PatternProwler,
		IsIntrusionPattern:     pattern.Kind == threatmodel.PatternIntrusion,
		IsForcedEntryPattern:   pattern.Kind == threatmodel.PatternForcedEntry,
		IsActiveBreakInPattern: pattern.Kind == threatmodel.PatternActiveBreakIn,
		IsProwlerPattern:       pattern.Kind == threatmodel.PatternProwler,
		IsNoPattern:            pattern.Kind == threatmodel.PatternNone,
		IsDeliveryPattern:      pattern.Kind == threatmodel.PatternDelivery,
		RepeatWithinWindow:     repeatWithinWindow,

		FamiliarDeliveryPattern: familiarity > 0.5,
	}
}
