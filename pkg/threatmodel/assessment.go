package threatmodel

// ThreatLevel is the calibrated output level of the fusion pipeline
// (spec §4.5).
type ThreatLevel string

const (
	LevelLow       ThreatLevel = "low"
	LevelStandard  ThreatLevel = "standard"
	LevelElevated  ThreatLevel = "elevated"
	LevelCritical  ThreatLevel = "critical"
)

// rank orders threat levels for comparisons like "at least critical".
func (l ThreatLevel) rank() int {
	switch l {
	case LevelLow:
		return 0
	case LevelStandard:
		return 1
	case LevelElevated:
		return 2
	case LevelCritical:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether l is the same or a higher threat level than
// other.
func (l ThreatLevel) AtLeast(other ThreatLevel) bool {
	return l.rank() >= other.rank()
}

// LevelForScore maps a fused score in [0,1] to its threat level using the
// fixed table from spec §4.5.
func LevelForScore(score float64) ThreatLevel {
	switch {
	case score < 0.30:
		return LevelLow
	case score < 0.55:
		return LevelStandard
	case score < 0.80:
		return LevelElevated
	default:
		return LevelCritical
	}
}

// AssessmentResult is the caller-visible output of a successful
// assessment (spec §3).
type AssessmentResult struct {
	RequestID      string      `json:"request_id"`
	ThreatLevel    ThreatLevel `json:"threat_level"`
	Score          float64     `json:"score"`
	Confidence     float64     `json:"confidence"`
	Summary        string      `json:"summary"`
	Reasoning      string      `json:"reasoning"`
	Recommendation string      `json:"recommendation"`
	ProcessingMS   float64     `json:"processing_ms"`
}
