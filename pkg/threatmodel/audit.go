package threatmodel

// SubScores are the intermediate fusion contributions recorded for
// audit, so `audit_trail(request_id).sum ≈ final_score` (spec §8).
type SubScores struct {
	Bayesian          float64 `json:"bayesian"`
	Rules             float64 `json:"rules"`
	ChainAdjustment   float64 `json:"chain_adjustment"`
	ZoneRisk          float64 `json:"zone_risk"`
	TemporalDampening float64 `json:"temporal_dampening"`
}

// AuditEntry is the fixed-shape audit trail record for one assessment
// (spec §3).
type AuditEntry struct {
	RequestID       string           `json:"request_id"`
	InputHash       string           `json:"input_hash"`
	ConfigVersion   string           `json:"config_version"`
	SDKMode         SDKMode          `json:"sdk_mode"`
	EventKind       EventKind        `json:"event_kind"`
	Location        string           `json:"location"`
	SubScores       SubScores        `json:"sub_scores"`
	RulesTriggered  []string         `json:"rules_triggered"`
	ChainPattern    ChainPatternKind `json:"chain_pattern"`
	MotionActivity  MotionActivity   `json:"motion_activity"`
	FinalLevel      ThreatLevel      `json:"final_level"`
	FinalScore      float64          `json:"final_score"`
	Confidence      float64          `json:"confidence"`
	ProcessingMS    float64          `json:"processing_ms"`
}

// AuditRingCapacity bounds the audit ring (spec §3).
const AuditRingCapacity = 1000
