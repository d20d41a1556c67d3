// Package ingress implements the guard every request passes through
// before any scoring work occurs: structural validation, token-bucket
// rate limiting, and the SDK-mode gate (spec §4.1).
package ingress

import (
	"fmt"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// Limits from spec §4.1.
const (
	MaxPayloadBytes  = 100 * 1024
	MaxNestingDepth  = 10
	MaxStringLen     = 10_000
	MaxEventsPerReq  = 100
)

// RawRequest is the structurally-parsed (but not yet validated) shape of
// an inbound request, produced by the outer JSON-parsing shell (spec §1:
// wire parsing is an external collaborator; this package validates the
// already-decoded structure, plus the raw byte length for the payload
// cap).
type RawRequest struct {
	PayloadBytes int
	Type         string
	Timestamp    float64
	Confidence   float64
	Metadata     RawMetadata
	Events       []RawEvent
	NestingDepth int
}

// RawMetadata mirrors the wire metadata object (spec §6).
type RawMetadata struct {
	Location         string
	HomeMode         string
	Duration         *float64
	Energy           *float64
	RawMotionSamples []float32
	SampleRate       *float64
	Height           *float64
	RawKeys          map[string]any
}

// RawEvent is one entry of the optional chain-context "events" array.
type RawEvent struct {
	Type      string
	Timestamp float64
}

// Validate enforces the structural limits from spec §4.1. Any breach
// yields a caller-visible threatmodel.Error before any scoring work
// occurs.
func Validate(req RawRequest) *threatmodel.Error {
	if req.PayloadBytes > MaxPayloadBytes {
		return threatmodel.ValidationError(threatmodel.ErrOversizePayload, "ingress",
			fmt.Errorf("payload %d bytes exceeds %d byte limit", req.PayloadBytes, MaxPayloadBytes))
	}
	if req.NestingDepth > MaxNestingDepth {
		return threatmodel.ValidationError(threatmodel.ErrNestingTooDeep, "ingress",
			fmt.Errorf("nesting depth %d exceeds %d", req.NestingDepth, MaxNestingDepth))
	}
	if len(req.Events) > MaxEventsPerReq {
		return threatmodel.ValidationError(threatmodel.ErrTooManyEvents, "ingress",
			fmt.Errorf("%d events exceeds %d per request", len(req.Events), MaxEventsPerReq))
	}
	if err := validateStringLimits(req); err != nil {
		return err
	}
	if req.Confidence < 0 || req.Confidence > 1 {
		return threatmodel.ValidationError(threatmodel.ErrSchema, "ingress",
			fmt.Errorf("confidence %v out of range [0,1]", req.Confidence))
	}
	return nil
}

func validateStringLimits(req RawRequest) *threatmodel.Error {
	strs := []string{req.Type, req.Metadata.Location, req.Metadata.HomeMode}
	for _, s := range strs {
		if len(s) > MaxStringLen {
			return threatmodel.ValidationError(threatmodel.ErrStringTooLong, "ingress",
				fmt.Errorf("string field length %d exceeds %d", len(s), MaxStringLen))
		}
	}
	for _, ev := range req.Events {
		if len(ev.Type) > MaxStringLen {
			return threatmodel.ValidationError(threatmodel.ErrStringTooLong, "ingress",
				fmt.Errorf("chain event type length %d exceeds %d", len(ev.Type), MaxStringLen))
		}
	}
	return nil
}

// ToEvent converts a validated RawRequest's primary event into the
// domain Event type. Unknown kinds never fail (spec §3).
func ToEvent(req RawRequest) threatmodel.Event {
	meta := threatmodel.EventMetadata{
		Location:         req.Metadata.Location,
		HomeMode:         threatmodel.ParseHomeMode(req.Metadata.HomeMode),
		Duration:         req.Metadata.Duration,
		Energy:           req.Metadata.Energy,
		RawMotionSamples: req.Metadata.RawMotionSamples,
		SampleRate:       req.Metadata.SampleRate,
		Height:           req.Metadata.Height,
		RawKeys:          req.Metadata.RawKeys,
	}
	return threatmodel.Event{
		Kind:       threatmodel.ParseEventKind(req.Type),
		RawKind:    req.Type,
		Timestamp:  req.Timestamp,
		Confidence: req.Confidence,
		Location:   req.Metadata.Location,
		HomeMode:   meta.HomeMode,
		Metadata:   meta,
	}
}
