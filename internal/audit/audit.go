// Package audit maintains the capacity-bounded audit ring, computes the
// input hash attached to every entry, and exports pages of history.
//
// Grounded on the teacher's llr_engine.go createEdge (sha256 over a
// canonical pipe-joined payload, hex-encoded) for the hashing shape, and
// internal/db.GetMixers's page/limit pagination (without the SQL) for
// export.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rawblock/threatcore/pkg/threatmodel"
)

// NewRequestID mints a fresh request identifier, grounded on the
// teacher's createEdge using uuid.New().String() per audit record.
func NewRequestID() string {
	return uuid.New().String()
}

// InputHash computes the canonical SHA-256 hash of a request's
// JSON-serializable fields (spec §9, Open Question #3): keys sorted,
// whitespace stripped, so identical requests always hash identically
// regardless of field order or incidental formatting on the wire.
func InputHash(fields map[string]any) string {
	canon := canonicalJSON(fields)
	sum := sha256.Sum256([]byte(canon))
	return hex.EncodeToString(sum[:])
}

// canonicalJSON renders fields as JSON with keys sorted at every level
// and no incidental whitespace: top-level keys are sorted explicitly
// here, and each value is marshaled by encoding/json, which already
// sorts the keys of any nested map.
func canonicalJSON(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]byte, 0, 256)
	ordered = append(ordered, '{')
	for i, k := range keys {
		if i > 0 {
			ordered = append(ordered, ',')
		}
		kb, _ := json.Marshal(k)
		vb, _ := json.Marshal(fields[k])
		ordered = append(ordered, kb...)
		ordered = append(ordered, ':')
		ordered = append(ordered, vb...)
	}
	ordered = append(ordered, '}')
	return string(ordered)
}

// Ring is the capacity-1000 in-memory audit trail (spec §3).
type Ring struct {
	mu      sync.Mutex
	entries []threatmodel.AuditEntry
}

// NewRing constructs an empty audit ring.
func NewRing() *Ring {
	return &Ring{}
}

// Append records one entry, evicting the oldest when the ring is full.
func (r *Ring) Append(e threatmodel.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	if len(r.entries) > threatmodel.AuditRingCapacity {
		r.entries = r.entries[len(r.entries)-threatmodel.AuditRingCapacity:]
	}
}

// Get returns the entry for requestID, if still retained.
func (r *Ring) Get(requestID string) (threatmodel.AuditEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].RequestID == requestID {
			return r.entries[i], true
		}
	}
	return threatmodel.AuditEntry{}, false
}

// Recent returns up to limit of the most recently appended entries,
// newest first. limit<=0 or larger than the ring returns everything.
func (r *Ring) Recent(limit int) []threatmodel.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]threatmodel.AuditEntry, limit)
	for i := 0; i < limit; i++ {
		out[i] = r.entries[len(r.entries)-1-i]
	}
	return out
}

// Page is one page of a paginated export.
type Page struct {
	Entries    []threatmodel.AuditEntry
	TotalCount int
}

// Export returns a bounded page of the full audit history, oldest
// first, mirroring the teacher's GetMixers(page, limit) contract
// without the SQL backing it.
func (r *Ring) Export(page, limit int) Page {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	total := len(r.entries)
	offset := (page - 1) * limit
	if offset >= total {
		return Page{TotalCount: total}
	}
	end := offset + limit
	if end > total {
		end = total
	}
	entries := make([]threatmodel.AuditEntry, end-offset)
	copy(entries, r.entries[offset:end])
	return Page{Entries: entries, TotalCount: total}
}

// Len reports the current number of retained entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
