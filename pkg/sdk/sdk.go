// Package sdk is the public facade wiring the ingress guard, feature
// extractors, fusion pipeline, explanation composer, audit trail, and
// health state machine into a single Assess entry point (spec §2).
//
// Grounded on the teacher's cmd/engine/main.go wiring order (construct
// storage, construct the scoring engine, construct the alert manager,
// start serving) and its explicit-handle-not-singleton style: every
// dependency here is passed into New rather than reached for through a
// package-level variable, matching spec §9's "no process-wide mutable
// state" design note.
package sdk

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rawblock/threatcore/internal/audit"
	"github.com/rawblock/threatcore/internal/chain"
	"github.com/rawblock/threatcore/internal/explain"
	"github.com/rawblock/threatcore/internal/health"
	"github.com/rawblock/threatcore/internal/ingress"
	"github.com/rawblock/threatcore/internal/motion"
	"github.com/rawblock/threatcore/internal/obslog"
	"github.com/rawblock/threatcore/internal/store"
	"github.com/rawblock/threatcore/internal/zone"
	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// configVersion is bumped whenever the fixed tables (zone, evidence
// factors, rule weights) change shape; recorded on every audit entry.
const configVersion = "threatcore-1"

// Instance is one independent SDK handle (spec §9: explicit handle
// type, no process-wide mutable state). Multiple Instances never share
// state; each owns its own rate limiter, chain ring, audit ring, health
// monitor, and user-pattern cache.
type Instance struct {
	logger *obslog.Logger
	kv     store.KVStore

	rateLimiter  *ingress.RateLimiter
	chainRing    *chain.Ring
	auditRing    *audit.Ring
	healthMon    *health.Monitor
	stateMachine *health.StateMachine

	cfgMu  sync.RWMutex
	config Config

	stateMu   sync.Mutex
	homeMode  threatmodel.HomeMode
	userHash  string
	userCache map[string]*threatmodel.UserPatternProfile

	storageDegraded  int32 // atomic bool
	totalAssessments int64 // atomic
}

// New constructs an Instance backed by the given KVStore. Construction
// never touches the store; call Initialize before the first Assess.
func New(kv store.KVStore) *Instance {
	return &Instance{
		logger:       obslog.New("sdk"),
		kv:           kv,
		rateLimiter:  ingress.NewRateLimiter(),
		chainRing:    chain.NewRing(),
		auditRing:    audit.NewRing(),
		healthMon:    health.NewMonitor(),
		stateMachine: health.NewStateMachine(),
		config:       DefaultConfig,
		homeMode:     threatmodel.ModeUnknown,
		userCache:    make(map[string]*threatmodel.UserPatternProfile),
	}
}

var (
	defaultOnce     sync.Once
	defaultInstance *Instance
)

// Default returns a lazily-initialized process-wide convenience
// instance backed by an in-memory store (spec §9: "a convenience
// constructor may wrap an instance behind a lazily initialized
// reference"). Tests that need isolation should call New directly
// instead.
func Default() *Instance {
	defaultOnce.Do(func() {
		defaultInstance = New(defaultMemStore())
		_ = defaultInstance.Initialize(context.Background())
	})
	return defaultInstance
}

// Initialize prepares static tables and storage; idempotent (spec §6).
// There are no static tables requiring lazy construction in this
// implementation (zone/evidence/rule tables are package-level
// immutable vars), so Initialize only verifies storage reachability.
func (s *Instance) Initialize(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	_, _, err := s.kv.Get(ctx, "__threatcore_init_probe__")
	if err != nil {
		s.logger.Printf("storage unreachable during initialize: %v", err)
		atomic.StoreInt32(&s.storageDegraded, 1)
		return threatmodel.StorageError("initialize", err)
	}
	return nil
}

// Configure updates the temporal dampening configuration (spec §6).
func (s *Instance) Configure(cfg Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.config = cfg
}

func (s *Instance) currentConfig() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.config
}

// SetUserID stores only the SHA-256 hex digest of id's UTF-8 bytes
// (spec §6): the original id never enters any in-memory structure or
// audit record.
func (s *Instance) SetUserID(id string) {
	sum := sha256.Sum256([]byte(id))
	hash := hex.EncodeToString(sum[:])
	s.stateMu.Lock()
	s.userHash = hash
	s.stateMu.Unlock()
}

// SetSystemMode updates the HomeMode context used by temporal
// dampening (spec §6).
func (s *Instance) SetSystemMode(mode string) {
	s.stateMu.Lock()
	s.homeMode = threatmodel.ParseHomeMode(mode)
	s.stateMu.Unlock()
}

func (s *Instance) currentHomeMode() threatmodel.HomeMode {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.homeMode
}

func (s *Instance) currentUserHash() string {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.userHash
}

// GetAuditTrail implements spec §6's get_audit_trail(request_id).
func (s *Instance) GetAuditTrail(requestID string) (threatmodel.AuditEntry, bool) {
	return s.auditRing.Get(requestID)
}

// GetRecentAuditTrails implements spec §6's get_recent_audit_trails(limit).
func (s *Instance) GetRecentAuditTrails(limit int) []threatmodel.AuditEntry {
	return s.auditRing.Recent(limit)
}

// ExportAuditTrails implements spec §6's export_audit_trails(), paginated.
func (s *Instance) ExportAuditTrails(page, limit int) audit.Page {
	return s.auditRing.Export(page, limit)
}

func hourOfDay(ts float64) int {
	return time.Unix(int64(ts), 0).UTC().Hour()
}

func timeBucketFor(hour int) explain.TimeBucket {
	return explain.TimeBucketForHour(hour)
}

func (s *Instance) approxStorageSizeBytes() int {
	s.stateMu.Lock()
	n := len(s.userCache)
	s.stateMu.Unlock()
	// Rough per-entry sizes, used only for the health report's
	// storage_sizes field (spec §6); not a precise accounting.
	const userPatternBytes = 256
	const chainEventBytes = 256
	const auditEntryBytes = 512
	return n*userPatternBytes + s.chainRing.Len()*chainEventBytes + s.auditRing.Len()*auditEntryBytes
}

func (s *Instance) userProfile(hash string) *threatmodel.UserPatternProfile {
	if hash == "" {
		return nil
	}
	s.stateMu.Lock()
	p, ok := s.userCache[hash]
	s.stateMu.Unlock()
	if ok {
		return p
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if s.kv != nil {
		if raw, found, err := s.kv.Get(ctx, store.UserPatternKey(hash)); err == nil && found {
			if p, ok := decodeUserPattern(raw); ok {
				s.stateMu.Lock()
				s.userCache[hash] = p
				s.stateMu.Unlock()
				return p
			}
		} else if err != nil {
			s.markStorageDegraded(err)
		}
	}

	p = threatmodel.NewUserPatternProfile()
	s.stateMu.Lock()
	s.userCache[hash] = p
	s.stateMu.Unlock()
	return p
}

func (s *Instance) persistUserProfile(hash string, p *threatmodel.UserPatternProfile) {
	if hash == "" || s.kv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := s.kv.Put(ctx, store.UserPatternKey(hash), encodeUserPattern(p)); err != nil {
		s.markStorageDegraded(err)
	}
}

func (s *Instance) markStorageDegraded(err error) {
	s.logger.Printf("storage error, demoting to degraded: %v", err)
	atomic.StoreInt32(&s.storageDegraded, 1)
}

func (s *Instance) zoneSequenceFor(events []threatmodel.Event) []zone.TierObservation {
	seq := make([]zone.TierObservation, len(events))
	for i, e := range events {
		d := zone.Classify(e.Location)
		seq[i] = zone.TierObservation{Tier: d.Tier, Label: d.Label, Timestamp: e.Timestamp}
	}
	return seq
}

func motionSourceFor(e threatmodel.Event) motion.Source {
	if e.HasRawSamples() {
		sampleRate := 50.0
		if e.Metadata.SampleRate != nil {
			sampleRate = *e.Metadata.SampleRate
		}
		duration := 0.0
		if e.Metadata.Duration != nil {
			duration = *e.Metadata.Duration
		}
		return motion.Source{RawSamples: &motion.RawSamples{
			Samples:    e.Metadata.RawMotionSamples,
			SampleRate: sampleRate,
			DurationS:  duration,
		}}
	}
	if e.Metadata.Duration != nil || e.Metadata.Energy != nil {
		duration, energy := 0.0, 0.0
		if e.Metadata.Duration != nil {
			duration = *e.Metadata.Duration
		}
		if e.Metadata.Energy != nil {
			energy = *e.Metadata.Energy
		}
		return motion.Source{Metadata: &motion.MetadataSummary{
			DurationS: duration,
			Energy:    energy,
			Height:    e.Metadata.Height,
		}}
	}
	return motion.Source{}
}
