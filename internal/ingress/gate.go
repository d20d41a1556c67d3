package ingress

import "github.com/rawblock/threatcore/pkg/threatmodel"

// FallbackSummary is the fixed explanation returned when the guard
// short-circuits in emergency mode (spec §4.1).
const FallbackSummary = "Assessment degraded: system is in emergency mode, returning a conservative default."

// EmergencyFallback builds the fixed standard-level assessment returned
// when SDKMode is ModeEmergency, bypassing fusion entirely.
func EmergencyFallback(requestID string, processingMS float64) threatmodel.AssessmentResult {
	return threatmodel.AssessmentResult{
		RequestID:      requestID,
		ThreatLevel:    threatmodel.LevelStandard,
		Score:          0.45,
		Confidence:     0.3,
		Summary:        FallbackSummary,
		Reasoning:      "sdk_mode=emergency: fusion bypassed, fixed standard-level fallback returned",
		Recommendation: "system operating in emergency mode; check device health",
		ProcessingMS:   processingMS,
	}
}

// Gate reports which pipeline stages the given mode permits (spec
// §4.1, §4.7). RunBayesian is false in ModeMinimal and ModeEmergency
// (minimal uses rule score only); RunUserPatternLearning is false from
// ModeDegraded and below.
type Gate struct {
	ShortCircuit            bool
	RunBayesian             bool
	RunUserPatternLearning  bool
}

// GateFor computes the stage gate for a given SDK mode.
func GateFor(mode threatmodel.SDKMode) Gate {
	switch mode {
	case threatmodel.ModeEmergency:
		return Gate{ShortCircuit: true}
	case threatmodel.ModeMinimal:
		return Gate{RunBayesian: false, RunUserPatternLearning: false}
	case threatmodel.ModeDegraded:
		return Gate{RunBayesian: true, RunUserPatternLearning: false}
	default: // ModeFull
		return Gate{RunBayesian: true, RunUserPatternLearning: true}
	}
}
