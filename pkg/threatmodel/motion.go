package threatmodel

// MotionActivity is one of the six recognized activity categories a
// motion sample can be classified into, plus "unknown" (spec §4.4).
type MotionActivity string

const (
	ActivityPackageDrop MotionActivity = "package_drop"
	ActivityPet         MotionActivity = "pet"
	ActivityLoitering   MotionActivity = "loitering"
	ActivityWalking     MotionActivity = "walking"
	ActivityRunning     MotionActivity = "running"
	ActivityVehicle     MotionActivity = "vehicle"
	ActivityUnknown     MotionActivity = "unknown"
)

// MotionFeatures is the output of the motion classifier, regardless of
// whether it was derived from raw vector samples or summary metadata.
type MotionFeatures struct {
	Activity   MotionActivity `json:"activity"`
	DurationS  float64        `json:"duration_s"`
	Energy     float64        `json:"energy"`
	Variance   float64        `json:"variance"`
	Confidence float64        `json:"confidence"`
}
