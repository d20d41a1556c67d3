// Package threatmodel holds the data types shared by every stage of the
// threat-assessment core: events, chain state, zone descriptors, motion
// features, assessments, and audit records. No package under internal/
// depends on another internal/ package's private types — they all speak
// threatmodel.
package threatmodel

// EventKind is a recognized security-event vocabulary token. Unknown
// kinds are accepted (they fall through to generic rule-based handling)
// and are represented as KindUnknown with the raw string preserved in
// RawKind.
type EventKind string

const (
	KindDoorbellChime EventKind = "doorbell_chime"
	KindMotion        EventKind = "motion"
	KindDoor          EventKind = "door"
	KindWindow        EventKind = "window"
	KindGlassBreak    EventKind = "glass_break"
	KindPet           EventKind = "pet"
	KindVehicle       EventKind = "vehicle"
	KindFire          EventKind = "fire"
	KindCO2           EventKind = "co2"
	KindWaterLeak     EventKind = "water_leak"
	KindUnknown       EventKind = "unknown"
)

// ParseEventKind maps a raw wire token to a recognized EventKind. Unknown
// tokens never produce an error — they map to KindUnknown.
func ParseEventKind(raw string) EventKind {
	switch EventKind(raw) {
	case KindDoorbellChime, KindMotion, KindDoor, KindWindow, KindGlassBreak,
		KindPet, KindVehicle, KindFire, KindCO2, KindWaterLeak:
		return EventKind(raw)
	default:
		return KindUnknown
	}
}

// HomeMode is the device context's current occupancy mode.
type HomeMode string

const (
	ModeHome    HomeMode = "home"
	ModeAway    HomeMode = "away"
	ModeNight   HomeMode = "night"
	ModeUnknown HomeMode = "unknown"
)

// ParseHomeMode maps a raw wire token to a recognized HomeMode, defaulting
// to ModeUnknown for anything unrecognized.
func ParseHomeMode(raw string) HomeMode {
	switch HomeMode(raw) {
	case ModeHome, ModeAway, ModeNight:
		return HomeMode(raw)
	default:
		return ModeUnknown
	}
}

// EventMetadata is the tagged subset of recognized metadata keys. Any
// other keys present on the wire are preserved only in RawKeys and never
// influence scoring.
type EventMetadata struct {
	Location         string    `json:"location,omitempty"`
	HomeMode         HomeMode  `json:"home_mode,omitempty"`
	Duration         *float64  `json:"duration,omitempty"`
	Energy           *float64  `json:"energy,omitempty"`
	RawMotionSamples []float32 `json:"raw_motion_samples,omitempty"`
	SampleRate       *float64  `json:"sample_rate,omitempty"`
	Height           *float64  `json:"height,omitempty"`

	// RawKeys preserves any unrecognized metadata keys verbatim, as an
	// unordered map. Neither scoring nor the audit input hash reads this
	// field: the hash covers only type, timestamp, confidence, location
	// and home_mode.
	RawKeys map[string]any `json:"-"`
}

// Event is an immutable security-event record. RawKind preserves the
// original wire token even when Kind is KindUnknown.
type Event struct {
	Kind       EventKind
	RawKind    string
	Timestamp  float64 // monotonic seconds, double precision
	Confidence float64 // [0,1]
	Location   string
	HomeMode   HomeMode
	Metadata   EventMetadata
}

// HasRawSamples reports whether the event carries raw motion-sample
// metadata suitable for the vector-analysis path of the motion
// classifier (spec §4.4).
func (e Event) HasRawSamples() bool {
	return len(e.Metadata.RawMotionSamples) > 0
}
