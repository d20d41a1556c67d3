package threatmodel

// UserPatternProfile is a bounded, per-hashed-user learned-behavior
// profile (spec §3). The original user id never appears here — only its
// SHA-256 hex digest, computed by the SDK and stored as the map key by
// the owner of this struct.
type UserPatternProfile struct {
	// DeliveryHourWeight records the decayed weight of confirmed
	// deliveries by hour-of-day (0-23), per the 7-day half-life policy
	// in DESIGN.md. Index 24 bins.
	DeliveryHourWeight [24]float64 `json:"delivery_hour_weight"`

	// FalsePositiveByKind counts false-positive feedback per event kind,
	// capped implicitly by the bounded vocabulary of EventKind.
	FalsePositiveByKind map[EventKind]int `json:"false_positive_by_kind"`

	// LastObservedAt is the monotonic timestamp (seconds) of the most
	// recent delivery observation, used as the decay reference point.
	LastObservedAt float64 `json:"last_observed_at"`
}

// NewUserPatternProfile returns a zero-value profile ready for use.
func NewUserPatternProfile() *UserPatternProfile {
	return &UserPatternProfile{
		FalsePositiveByKind: make(map[EventKind]int),
	}
}
