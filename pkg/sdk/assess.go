package sdk

import (
	"sync/atomic"
	"time"

	"github.com/rawblock/threatcore/internal/audit"
	"github.com/rawblock/threatcore/internal/chain"
	"github.com/rawblock/threatcore/internal/explain"
	"github.com/rawblock/threatcore/internal/fusion"
	"github.com/rawblock/threatcore/internal/ingress"
	"github.com/rawblock/threatcore/internal/motion"
	"github.com/rawblock/threatcore/internal/zone"
	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// overrideKind reports whether kind always forces a critical-floor
// assessment, bypassing temporal dampening entirely (spec §4.5).
func overrideKind(kind threatmodel.EventKind) bool {
	switch kind {
	case threatmodel.KindGlassBreak, threatmodel.KindFire, threatmodel.KindCO2, threatmodel.KindWaterLeak:
		return true
	default:
		return false
	}
}

// Assess runs one request through the full pipeline: ingress guard,
// feature extraction, fusion, calibration, explanation, and audit
// recording (spec §2). It is the sole entry point a caller needs; every
// non-validation, non-rate-limit failure is absorbed into mode
// degradation so the caller always receives an AssessmentResult (spec
// §7).
func (s *Instance) Assess(req ingress.RawRequest) (threatmodel.AssessmentResult, *threatmodel.Error) {
	start := time.Now()

	if ok, retryAfter := s.rateLimiter.Acquire(); !ok {
		return threatmodel.AssessmentResult{}, threatmodel.RateLimited(retryAfter.Milliseconds())
	}

	if verr := ingress.Validate(req); verr != nil {
		return threatmodel.AssessmentResult{}, verr
	}

	gate := ingress.GateFor(s.mode())
	requestID := audit.NewRequestID()

	if gate.ShortCircuit {
		s.recordAssessment(time.Since(start), false)
		result := ingress.EmergencyFallback(requestID, msSince(start))
		return result, nil
	}

	event := ingress.ToEvent(req)
	cfg := s.currentConfig()

	s.chainRing.Ingest(event, event.Timestamp)
	snapshot := s.chainRing.Snapshot()
	pattern := chain.Match(snapshot, event.Timestamp)

	zoneDescriptor := zone.Classify(event.Location)
	zoneSeq := s.zoneSequenceFor(snapshot)
	zoneMultiplier := zone.Escalation(zoneSeq)

	motionFeatures := motion.Analyze(motionSourceFor(event))
	if event.Kind == threatmodel.KindPet {
		// A pet-sensor event is reported as pet activity whatever the
		// motion decision table makes of its metadata.
		motionFeatures.Activity = threatmodel.ActivityPet
	}

	hour := hourOfDay(event.Timestamp)
	bucket := timeBucketFor(hour)
	isNight := inWindow(cfg.Temporal, hour, true)
	isDelivery := inWindow(cfg.Temporal, hour, false)

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

	evCtx := buildEvidenceContext(event, zoneDescriptor, motionFeatures, pattern, homeMode, isNight, isDelivery, repeatWithinWindow, familiarity)

	var bayesianScore float64
	if gate.RunBayesian {
		bayesianScore = fusion.BayesianScore(evCtx)
	}

	mentalAdj := mentalModelAdjustment(familiarity, falsePositives)
	ruleScore, rulesFired := fusion.Score(fusion.RuleFeatures{Context: evCtx, MentalModelAdjustment: mentalAdj})
	if !gate.RunBayesian {
		bayesianScore = ruleScore
	}

	chainDelta := 0.0
	if !pattern.Tentative {
		chainDelta = pattern.Delta
	}

	isOverride := overrideKind(event.Kind)
	temporalDampening := 0.0
	if !isOverride {
		temporalDampening = fusion.TemporalDampening(fusion.TemporalFeatures{
			IsDeliveryWindow:        isDelivery && (homeMode == threatmodel.ModeHome || homeMode == threatmodel.ModeAway),
			IsNightPerimeterOrEntry: isNight && (zoneDescriptor.Tier == threatmodel.TierPerimeter || zoneDescriptor.Tier == threatmodel.TierEntry),
			FamiliarDeliveryPattern: familiarity > 0.5,
		}, cfg.Temporal.toFusionConfig())
	}

	combined := fusion.Combine(fusion.CombineInput{
		Bayesian:          bayesianScore,
		Rules:             ruleScore,
		ChainDelta:        chainDelta,
		ZoneMultiplier:    zoneMultiplier,
		TemporalDampening: temporalDampening,
		IsOverride:        isOverride,
	})
	level := threatmodel.LevelForScore(combined.Score)
	if isOverride && !level.AtLeast(threatmodel.LevelCritical) {
		level = threatmodel.LevelCritical
	}
	confidence := fusion.Confidence(event.Confidence, motionFeatures.Confidence, combined.Score)

	if gate.RunUserPatternLearning && pattern.Kind == threatmodel.PatternDelivery && !pattern.Tentative {
		observeDelivery(profile, hour, event.Timestamp)
		s.persistUserProfile(userHash, profile)
	}

	ruleNames := make([]string, 0, len(rulesFired)+1)
	factors := make([]explain.Factor, 0, len(rulesFired)+1)
	for _, r := range rulesFired {
		ruleNames = append(ruleNames, r.Name)
		factors = append(factors, explain.Factor{Label: r.Name, Weight: absf(r.Delta)})
	}
	if isOverride {
		ruleNames = append(ruleNames, "critical_override")
		factors = append(factors, explain.Factor{Label: "critical_override", Weight: 1.0})
	}

	out := explain.Compose(explain.Input{
		Level:     level,
		Chain:     pattern.Kind,
		Motion:    motionFeatures.Activity,
		Zone:      zoneDescriptor,
		Bucket:    bucket,
		Mode:      homeMode,
		EventKind: event.Kind,
		Factors:   factors,
	})

	processingMS := msSince(start)
	result := threatmodel.AssessmentResult{
		RequestID:      requestID,
		ThreatLevel:    level,
		Score:          combined.Score,
		Confidence:     confidence,
		Summary:        out.Summary,
		Reasoning:      out.Reasoning,
		Recommendation: out.Recommendation,
		ProcessingMS:   processingMS,
	}

	entry := threatmodel.AuditEntry{
		RequestID:      requestID,
		InputHash:      audit.InputHash(requestFields(req)),
		ConfigVersion:  configVersion,
		SDKMode:        s.mode(),
		EventKind:      event.Kind,
		Location:       event.Location,
		SubScores:      combined.SubScores,
		RulesTriggered: ruleNames,
		ChainPattern:   pattern.Kind,
		MotionActivity: motionFeatures.Activity,
		FinalLevel:     level,
		FinalScore:     combined.Score,
		Confidence:     confidence,
		ProcessingMS:   processingMS,
	}
	s.auditRing.Append(entry)

	atomic.AddInt64(&s.totalAssessments, 1)
	s.recordAssessment(time.Since(start), false)

	return result, nil
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func inWindow(t TemporalConfig, hour int, night bool) bool {
	if night {
		return t.inNightWindow(hour)
	}
	return t.inDeliveryWindow(hour)
}

func countKindInWindow(events []threatmodel.Event, kind threatmodel.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func requestFields(req ingress.RawRequest) map[string]any {
	return map[string]any{
		"type":       req.Type,
		"timestamp":  req.Timestamp,
		"confidence": req.Confidence,
		"location":   req.Metadata.Location,
		"home_mode":  req.Metadata.HomeMode,
	}
}
