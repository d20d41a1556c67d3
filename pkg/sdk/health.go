package sdk

import (
	"sync/atomic"
	"time"

	"github.com/rawblock/threatcore/internal/health"
	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// HealthStatus is the caller-visible health report (spec §6:
// `get_system_health()`).
type HealthStatus struct {
	Status               threatmodel.SDKMode `json:"status"`
	TotalAssessments     int64               `json:"total_assessments"`
	P50LatencyMS         float64             `json:"p50_latency_ms"`
	P95LatencyMS         float64             `json:"p95_latency_ms"`
	P99LatencyMS         float64             `json:"p99_latency_ms"`
	ErrorRate1m          float64             `json:"error_rate_1m"`
	ErrorRate5m          float64             `json:"error_rate_5m"`
	RateLimitUtilization float64             `json:"rate_limit_utilization"`
	StorageSizeBytes     int                 `json:"storage_size_bytes"`
	AuditEntries         int                 `json:"audit_entries"`
}

// GetSystemHealth implements the spec §6 health interface.
func (s *Instance) GetSystemHealth() HealthStatus {
	snap := s.healthMon.Snapshot(time.Now(), s.rateLimiter.Utilization())
	return HealthStatus{
		Status:               s.mode(),
		TotalAssessments:     atomic.LoadInt64(&s.totalAssessments),
		P50LatencyMS:         snap.P50LatencyMS,
		P95LatencyMS:         snap.P95LatencyMS,
		P99LatencyMS:         snap.P99LatencyMS,
		ErrorRate1m:          snap.ErrorRate1m,
		ErrorRate5m:          snap.ErrorRate5m,
		RateLimitUtilization: snap.RateLimitUtilized,
		StorageSizeBytes:     s.approxStorageSizeBytes(),
		AuditEntries:         s.auditRing.Len(),
	}
}

func (s *Instance) mode() threatmodel.SDKMode {
	m := s.stateMachine.Mode()
	if atomic.LoadInt32(&s.storageDegraded) != 0 && !m.MoreDegradedThan(threatmodel.ModeDegraded) {
		return threatmodel.ModeDegraded
	}
	return m
}

func (s *Instance) recordAssessment(latency time.Duration, isError bool) {
	s.healthMon.Record(time.Now(), latency, isError)
	snap := s.healthMon.Snapshot(time.Now(), s.rateLimiter.Utilization())
	s.stateMachine.Evaluate(time.Now(), health.Snapshot{
		ErrorRate1m:  snap.ErrorRate1m,
		P95LatencyMS: snap.P95LatencyMS,
	})
}
