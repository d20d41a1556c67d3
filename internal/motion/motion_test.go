package motion

import (
	"testing"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

func TestAnalyze_Metadata(t *testing.T) {
	tests := []struct {
		name   string
		m      MetadataSummary
		want   threatmodel.MotionActivity
	}{
		{"package_drop", MetadataSummary{DurationS: 5, Energy: 0.2, Height: f(0.2)}, threatmodel.ActivityPackageDrop},
		{"pet", MetadataSummary{DurationS: 8, Energy: 0.3, Height: f(0.8)}, threatmodel.ActivityPet},
		{"running", MetadataSummary{DurationS: 20, Energy: 0.8, Height: f(0.5)}, threatmodel.ActivityRunning},
		{"vehicle", MetadataSummary{DurationS: 8, Energy: 0.9, Height: f(0.2)}, threatmodel.ActivityVehicle},
		{"loitering", MetadataSummary{DurationS: 40, Energy: 0.4, Height: f(0.1)}, threatmodel.ActivityLoitering},
		{"walking", MetadataSummary{DurationS: 10, Energy: 0.5, Height: f(0.5)}, threatmodel.ActivityWalking},
		{"unknown", MetadataSummary{DurationS: 1, Energy: 0.01, Height: f(0.5)}, threatmodel.ActivityUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Analyze(Source{Metadata: &tc.m})
			if got.Activity != tc.want {
				t.Fatalf("got %s, want %s (features: dur=%v energy=%v var=%v)",
					got.Activity, tc.want, got.DurationS, got.Energy, got.Variance)
			}
		})
	}
}

func TestAnalyze_MetadataDefaultVariance(t *testing.T) {
	m := MetadataSummary{DurationS: 5, Energy: 0.2}
	got := Analyze(Source{Metadata: &m})
	if got.Variance != defaultMetadataVariance {
		t.Fatalf("got variance %v, want default %v", got.Variance, defaultMetadataVariance)
	}
}

func TestAnalyze_RawSamplesDeterministic(t *testing.T) {
	samples := []float32{0.1, 0.5, 0.9, 0.3, 0.2}
	rs := RawSamples{Samples: samples, SampleRate: 50, DurationS: 3}

	a := Analyze(Source{RawSamples: &rs})
	b := Analyze(Source{RawSamples: &rs})
	if a != b {
		t.Fatalf("classification not deterministic: %+v vs %+v", a, b)
	}

	reversed := make([]float32, len(samples))
	for i, v := range samples {
		reversed[len(samples)-1-i] = v
	}
	rsReversed := RawSamples{Samples: reversed, SampleRate: 50, DurationS: 3}
	c := Analyze(Source{RawSamples: &rsReversed})
	if a.Energy != c.Energy || a.Variance != c.Variance {
		t.Fatalf("classification not order-invariant: %+v vs %+v", a, c)
	}
}

func TestAnalyze_NoSource(t *testing.T) {
	got := Analyze(Source{})
	if got.Activity != threatmodel.ActivityUnknown {
		t.Fatalf("got %s, want unknown for empty source", got.Activity)
	}
}

func f(v float64) *float64 { return &v }
