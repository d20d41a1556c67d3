package explain

import (
	"strings"
	"testing"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

func TestTimeBucketForHour(t *testing.T) {
	cases := map[int]TimeBucket{
		6: BucketMorning, 13: BucketAfternoon, 19: BucketEvening, 23: BucketNight, 2: BucketNight,
	}
	for hour, want := range cases {
		if got := TimeBucketForHour(hour); got != want {
			t.Fatalf("hour %d: got %s want %s", hour, got, want)
		}
	}
}

func TestCompose_SummaryWithinBounds(t *testing.T) {
	cases := []Input{
		{Level: threatmodel.LevelLow, Motion: threatmodel.ActivityPackageDrop, Bucket: BucketAfternoon, Mode: threatmodel.ModeAway, Zone: threatmodel.ZoneDescriptor{Label: "front_door", Tier: threatmodel.TierEntry}},
		{Level: threatmodel.LevelCritical, EventKind: threatmodel.KindGlassBreak, Bucket: BucketNight, Mode: threatmodel.ModeAway},
		{Level: threatmodel.LevelStandard, EventKind: threatmodel.KindDoorbellChime, Bucket: BucketMorning, Mode: threatmodel.ModeHome},
		{Level: threatmodel.LevelElevated, Chain: threatmodel.PatternProwler, Bucket: BucketEvening, Mode: threatmodel.ModeAway},
	}
	for _, in := range cases {
		out := Compose(in)
		if len(out.Summary) < minSummaryLen || len(out.Summary) > maxSummaryLen {
			t.Fatalf("summary %q length %d out of [%d,%d]", out.Summary, len(out.Summary), minSummaryLen, maxSummaryLen)
		}
	}
}

func TestCompose_DeliveryMentionsPackage(t *testing.T) {
	out := Compose(Input{
		Level:  threatmodel.LevelLow,
		Chain:  threatmodel.PatternDelivery,
		Motion: threatmodel.ActivityPackageDrop,
		Bucket: BucketAfternoon,
		Mode:   threatmodel.ModeAway,
		Zone:   threatmodel.ZoneDescriptor{Label: "front_door", Tier: threatmodel.TierEntry},
	})
	if !strings.Contains(strings.ToLower(out.Summary), "package") && !strings.Contains(strings.ToLower(out.Summary), "delivery") {
		t.Fatalf("expected delivery/package mention, got %q", out.Summary)
	}
}

func TestCompose_CriticalRecommendationMentionsCameraOrAuthorities(t *testing.T) {
	out := Compose(Input{
		Level:     threatmodel.LevelCritical,
		EventKind: threatmodel.KindGlassBreak,
		Bucket:    BucketNight,
		Mode:      threatmodel.ModeAway,
	})
	lower := strings.ToLower(out.Recommendation)
	if !strings.Contains(lower, "camera") && !strings.Contains(lower, "authorities") {
		t.Fatalf("expected camera/authorities mention, got %q", out.Recommendation)
	}
}

func TestCompose_ReasoningOmitsUnfiredFactors(t *testing.T) {
	out := Compose(Input{
		Level:   threatmodel.LevelLow,
		Motion:  threatmodel.ActivityPet,
		Bucket:  BucketAfternoon,
		Mode:    threatmodel.ModeHome,
		Factors: []Factor{{Label: "benign_motion", Weight: 0.2}},
	})
	if strings.Contains(out.Reasoning, "critical_signal") {
		t.Fatalf("reasoning cites a factor that never fired: %q", out.Reasoning)
	}
}

func TestCompose_ReasoningDecliningWeightOrder(t *testing.T) {
	out := Compose(Input{
		Level: threatmodel.LevelElevated,
		Factors: []Factor{
			{Label: "small", Weight: 0.1},
			{Label: "big", Weight: 0.9},
			{Label: "medium", Weight: 0.5},
		},
	})
	bigIdx := strings.Index(out.Reasoning, "big")
	medIdx := strings.Index(out.Reasoning, "medium")
	smallIdx := strings.Index(out.Reasoning, "small")
	if !(bigIdx < medIdx && medIdx < smallIdx) {
		t.Fatalf("expected declining-weight order, got %q", out.Reasoning)
	}
}

func TestCompose_ReasoningCitesModeAndTime(t *testing.T) {
	out := Compose(Input{
		Level:  threatmodel.LevelStandard,
		Bucket: BucketMorning,
		Mode:   threatmodel.ModeHome,
	})
	if !strings.Contains(out.Reasoning, "morning") || !strings.Contains(out.Reasoning, "home") {
		t.Fatalf("reasoning should cite time and mode, got %q", out.Reasoning)
	}
}
