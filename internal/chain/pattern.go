package chain

import "github.com/rawblock/threatcore/pkg/threatmodel"

// Pattern deltas (spec §4.3). Evaluated in this exact priority order;
// first match wins. The order happens to already be strictly decreasing
// by |delta|, which is also how spec §4.3 resolves simultaneous matches
// ("ties on simultaneous matches resolve toward the higher-|delta|
// pattern").
const (
	deltaActiveBreakIn = 0.70
	deltaForcedEntry   = 0.60
	deltaIntrusion     = 0.50
	deltaProwler       = 0.45
	deltaDelivery      = -0.40
)

const (
	breakInMotionWindow   = 20.0
	forcedEntryWindow     = 15.0
	forcedEntryMinEvents  = 3
	intrusionMaxSpan      = 30.0
	prowlerWindow         = 60.0
	prowlerMinZones       = 3
	deliveryMinGap        = 2.0
	deliveryMaxGap        = 30.0
	deliverySilenceNeeded = 15.0
)

// Match evaluates the pattern table against events (oldest first,
// already trimmed to the chain window) as of wall-clock now. now is
// required independently of the last event's timestamp so the
// "prospective silence" test for delivery can be evaluated even when no
// further events have arrived.
func Match(events []threatmodel.Event, now float64) threatmodel.ChainPattern {
	if p, ok := matchActiveBreakIn(events); ok {
		return p
	}
	if p, ok := matchForcedEntry(events); ok {
		return p
	}
	if p, ok := matchIntrusion(events); ok {
		return p
	}
	if p, ok := matchProwler(events); ok {
		return p
	}
	if p, ok := matchDelivery(events, now); ok {
		return p
	}
	return threatmodel.ChainPattern{Kind: threatmodel.PatternNone}
}

func matchActiveBreakIn(events []threatmodel.Event) (threatmodel.ChainPattern, bool) {
	for i, ev := range events {
		if ev.Kind != threatmodel.KindGlassBreak {
			continue
		}
		for _, later := range events[i+1:] {
			if later.Kind == threatmodel.KindMotion && later.Timestamp-ev.Timestamp <= breakInMotionWindow {
				return threatmodel.ChainPattern{Kind: threatmodel.PatternActiveBreakIn, Delta: deltaActiveBreakIn}, true
			}
		}
	}
	return threatmodel.ChainPattern{}, false
}

func matchForcedEntry(events []threatmodel.Event) (threatmodel.ChainPattern, bool) {
	var doorWindow []threatmodel.Event
	for _, ev := range events {
		if ev.Kind == threatmodel.KindDoor || ev.Kind == threatmodel.KindWindow {
			doorWindow = append(doorWindow, ev)
		}
	}
	for i := 0; i+forcedEntryMinEvents-1 < len(doorWindow); i++ {
		span := doorWindow[i+forcedEntryMinEvents-1].Timestamp - doorWindow[i].Timestamp
		if span <= forcedEntryWindow {
			return threatmodel.ChainPattern{Kind: threatmodel.PatternForcedEntry, Delta: deltaForcedEntry}, true
		}
	}
	return threatmodel.ChainPattern{}, false
}

func matchIntrusion(events []threatmodel.Event) (threatmodel.ChainPattern, bool) {
	// motion -> door -> motion, total span <= 30s, "continuing" (the
	// second motion is the most recent event in the window: the
	// pattern is still unfolding, not a closed historical sequence).
	n := len(events)
	for i := 0; i < n; i++ {
		if events[i].Kind != threatmodel.KindMotion {
			continue
		}
		for j := i + 1; j < n; j++ {
			if events[j].Kind != threatmodel.KindDoor {
				continue
			}
			for k := j + 1; k < n; k++ {
				if events[k].Kind != threatmodel.KindMotion {
					continue
				}
				if k != n-1 {
					continue // not "continuing" unless it is the latest event
				}
				if events[k].Timestamp-events[i].Timestamp <= intrusionMaxSpan {
					return threatmodel.ChainPattern{Kind: threatmodel.PatternIntrusion, Delta: deltaIntrusion}, true
				}
			}
		}
	}
	return threatmodel.ChainPattern{}, false
}

func matchProwler(events []threatmodel.Event) (threatmodel.ChainPattern, bool) {
	var motions []threatmodel.Event
	for _, ev := range events {
		if ev.Kind == threatmodel.KindMotion {
			motions = append(motions, ev)
		}
	}
	for i := range motions {
		zones := map[string]bool{motions[i].Location: true}
		for j := i + 1; j < len(motions); j++ {
			if motions[j].Timestamp-motions[i].Timestamp > prowlerWindow {
				break
			}
			zones[motions[j].Location] = true
			if len(zones) >= prowlerMinZones {
				return threatmodel.ChainPattern{Kind: threatmodel.PatternProwler, Delta: deltaProwler}, true
			}
		}
	}
	return threatmodel.ChainPattern{}, false
}

// matchDelivery implements the prospective silence test (spec §4.3): a
// doorbell_chime followed by motion 2-30s later is a tentative delivery
// until deliverySilenceNeeded seconds of silence have actually elapsed
// since that motion (measured against now). Only once that silence
// window has passed does the pattern fire with its (negative) delta;
// before that, Match reports it tentative and the caller must not apply
// the adjustment yet.
func matchDelivery(events []threatmodel.Event, now float64) (threatmodel.ChainPattern, bool) {
	n := len(events)
	for i := 0; i < n; i++ {
		if events[i].Kind != threatmodel.KindDoorbellChime {
			continue
		}
		for j := i + 1; j < n; j++ {
			if events[j].Kind != threatmodel.KindMotion {
				continue
			}
			gap := events[j].Timestamp - events[i].Timestamp
			if gap < deliveryMinGap || gap > deliveryMaxGap {
				continue
			}
			// Any event after this motion means it's no longer silent.
			hasLaterEvent := j != n-1
			silenceElapsed := now - events[j].Timestamp
			if !hasLaterEvent && silenceElapsed >= deliverySilenceNeeded {
				return threatmodel.ChainPattern{Kind: threatmodel.PatternDelivery, Delta: deltaDelivery}, true
			}
			if !hasLaterEvent {
				return threatmodel.ChainPattern{Kind: threatmodel.PatternDelivery, Delta: deltaDelivery, Tentative: true}, true
			}
		}
	}
	return threatmodel.ChainPattern{}, false
}
