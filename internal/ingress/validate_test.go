package ingress

import (
	"strings"
	"testing"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

func TestValidate_Limits(t *testing.T) {
	tests := []struct {
		name    string
		req     RawRequest
		wantErr threatmodel.ErrorKind
	}{
		{
			name: "ok",
			req:  RawRequest{Type: "motion", Confidence: 0.5},
		},
		{
			name:    "oversize payload",
			req:     RawRequest{PayloadBytes: MaxPayloadBytes + 1, Confidence: 0.5},
			wantErr: threatmodel.ErrOversizePayload,
		},
		{
			name:    "nesting too deep",
			req:     RawRequest{NestingDepth: MaxNestingDepth + 1, Confidence: 0.5},
			wantErr: threatmodel.ErrNestingTooDeep,
		},
		{
			name:    "too many events",
			req:     RawRequest{Events: make([]RawEvent, MaxEventsPerReq+1), Confidence: 0.5},
			wantErr: threatmodel.ErrTooManyEvents,
		},
		{
			name:    "string too long",
			req:     RawRequest{Type: strings.Repeat("a", MaxStringLen+1), Confidence: 0.5},
			wantErr: threatmodel.ErrStringTooLong,
		},
		{
			name:    "confidence out of range",
			req:     RawRequest{Type: "motion", Confidence: 1.5},
			wantErr: threatmodel.ErrSchema,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.req)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error kind %s, got nil", tc.wantErr)
			}
			if err.Kind != tc.wantErr {
				t.Fatalf("got kind %s, want %s", err.Kind, tc.wantErr)
			}
			if !err.IsCallerVisible() {
				t.Fatalf("validation errors must be caller-visible")
			}
		})
	}
}

func TestToEvent_UnknownKindNeverFails(t *testing.T) {
	req := RawRequest{Type: "doorbell_rang_twice", Confidence: 0.5}
	if err := Validate(req); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	ev := ToEvent(req)
	if ev.Kind != threatmodel.KindUnknown {
		t.Fatalf("got kind %s, want unknown", ev.Kind)
	}
	if ev.RawKind != "doorbell_rang_twice" {
		t.Fatalf("raw kind not preserved: %s", ev.RawKind)
	}
}
