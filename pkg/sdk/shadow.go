package sdk

import (
	"github.com/rawblock/threatcore/internal/audit"
	"github.com/rawblock/threatcore/internal/chain"
	"github.com/rawblock/threatcore/internal/fusion"
	"github.com/rawblock/threatcore/internal/ingress"
	"github.com/rawblock/threatcore/internal/motion"
	"github.com/rawblock/threatcore/internal/obslog"
	"github.com/rawblock/threatcore/internal/zone"
	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// ShadowResult captures the divergence between the production temporal
// configuration and an experimental one scored against the same
// request, without ever influencing the caller-visible AssessmentResult
// or committing a second audit entry.
//
// Adapted from the teacher's shadow.ShadowRunner: where that type ran a
// production and an experimental clustering heuristic side by side and
// logged a flag-mismatch divergence, this runs the production and
// candidate TemporalConfig side by side and logs a level-mismatch
// divergence — same "never affects the live path, only observes it"
// posture, re-grounded on fusion.Combine instead of Bitcoin clustering.
type ShadowResult struct {
	RequestID       string               `json:"request_id"`
	ProductionLevel threatmodel.ThreatLevel `json:"production_level"`
	ShadowLevel     threatmodel.ThreatLevel `json:"shadow_level"`
	ProductionScore float64              `json:"production_score"`
	ShadowScore     float64              `json:"shadow_score"`
	DeltaScore      float64              `json:"delta_score"`
	Diverged        bool                 `json:"diverged"`
}

var shadowLogger = obslog.New("shadow")

// CompareFusion scores req under both the instance's current Config and
// candidate, using the same event/zone/motion/chain-pattern features for
// both, and reports the divergence. It does not ingest req into the
// chain ring or append an audit entry — a caller that wants the
// production assessment recorded should call Assess separately (or
// before) to produce the authoritative result; CompareFusion is strictly
// an observer.
func (s *Instance) CompareFusion(req ingress.RawRequest, candidate Config) (ShadowResult, *threatmodel.Error) {
	if verr := ingress.Validate(req); verr != nil {
		return ShadowResult{}, verr
	}

	event := ingress.ToEvent(req)
	snapshot := append(s.chainRing.Snapshot(), event)
	pattern := chain.Match(snapshot, event.Timestamp)

	zoneDescriptor := zone.Classify(event.Location)
	zoneSeq := s.zoneSequenceFor(snapshot)
	zoneMultiplier := zone.Escalation(zoneSeq)

	motionFeatures := motion.Analyze(motionSourceFor(event))

	hour := hourOfDay(event.Timestamp)

	homeMode := event.HomeMode
	if homeMode == threatmodel.ModeUnknown {
		homeMode = s.currentHomeMode()
	}

	userHash := s.currentUserHash()
	profile := s.userProfile(userHash)
	familiarity := familiarityAt(profile, hour, event.Timestamp)
	falsePositives := 0
	if profile != nil {
		falsePositives = profile.FalsePositiveByKind[event.Kind]
	}
	repeatWithinWindow := countKindInWindow(snapshot, event.Kind) > 1

	// Evidence is computed once against the production config's window
	// definitions and shared by both scoreUnder calls below — only the
	// temporal dampening stage varies per candidate TemporalConfig.
	production := s.currentConfig()
	isNight := production.Temporal.inNightWindow(hour)
	isDelivery := production.Temporal.inDeliveryWindow(hour)

	evCtx := buildEvidenceContext(event, zoneDescriptor, motionFeatures, pattern, homeMode, isNight, isDelivery, repeatWithinWindow, familiarity)
	bayesianScore := fusion.BayesianScore(evCtx)
	mentalAdj := mentalModelAdjustment(familiarity, falsePositives)
	ruleScore, _ := fusion.Score(fusion.RuleFeatures{Context: evCtx, MentalModelAdjustment: mentalAdj})

	chainDelta := 0.0
	if !pattern.Tentative {
		chainDelta = pattern.Delta
	}
	isOverride := overrideKind(event.Kind)

	prodResult := scoreUnder(production, bayesianScore, ruleScore, chainDelta, zoneMultiplier, isOverride, hour, zoneDescriptor.Tier, homeMode, familiarity)
	shadowResult := scoreUnder(candidate, bayesianScore, ruleScore, chainDelta, zoneMultiplier, isOverride, hour, zoneDescriptor.Tier, homeMode, familiarity)

	result := ShadowResult{
		RequestID:       audit.NewRequestID(),
		ProductionLevel: threatmodel.LevelForScore(prodResult),
		ShadowLevel:     threatmodel.LevelForScore(shadowResult),
		ProductionScore: prodResult,
		ShadowScore:     shadowResult,
		DeltaScore:      shadowResult - prodResult,
		Diverged:        threatmodel.LevelForScore(prodResult) != threatmodel.LevelForScore(shadowResult),
	}
	if result.Diverged {
		shadowLogger.Printf("DIVERGENCE kind=%s location=%s prod_level=%s shadow_level=%s delta=%.3f",
			event.Kind, event.Location, result.ProductionLevel, result.ShadowLevel, result.DeltaScore)
	}
	return result, nil
}

func scoreUnder(cfg Config, bayesian, rules, chainDelta, zoneMultiplier float64, isOverride bool, hour int, tier threatmodel.ZoneTier, homeMode threatmodel.HomeMode, familiarity float64) float64 {
	isNight := cfg.Temporal.inNightWindow(hour)
	isDelivery := cfg.Temporal.inDeliveryWindow(hour)

	temporalDampening := 0.0
	if !isOverride {
		temporalDampening = fusion.TemporalDampening(fusion.TemporalFeatures{
			IsDeliveryWindow:        isDelivery && (homeMode == threatmodel.ModeHome || homeMode == threatmodel.ModeAway),
			IsNightPerimeterOrEntry: isNight && (tier == threatmodel.TierPerimeter || tier == threatmodel.TierEntry),
			FamiliarDeliveryPattern: familiarity > 0.5,
		}, cfg.Temporal.toFusionConfig())
	}

	combined := fusion.Combine(fusion.CombineInput{
		Bayesian:          bayesian,
		Rules:             rules,
		ChainDelta:        chainDelta,
		ZoneMultiplier:    zoneMultiplier,
		TemporalDampening: temporalDampening,
		IsOverride:        isOverride,
	})
	return combined.Score
}
