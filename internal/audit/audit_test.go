package audit

import (
	"testing"

	"github.com/rawblock/threatcore/pkg/threatmodel"
)

func TestInputHash_OrderIndependent(t *testing.T) {
	a := InputHash(map[string]any{"kind": "motion", "location": "hallway"})
	b := InputHash(map[string]any{"location": "hallway", "kind": "motion"})
	if a != b {
		t.Fatalf("hash depends on map construction order: %s != %s", a, b)
	}
}

func TestInputHash_DifferentContentDiffers(t *testing.T) {
	a := InputHash(map[string]any{"kind": "motion"})
	b := InputHash(map[string]any{"kind": "door"})
	if a == b {
		t.Fatalf("expected different hashes for different content")
	}
}

func TestRing_CapsAtCapacity(t *testing.T) {
	r := NewRing()
	for i := 0; i < threatmodel.AuditRingCapacity+50; i++ {
		r.Append(threatmodel.AuditEntry{RequestID: NewRequestID()})
	}
	if r.Len() != threatmodel.AuditRingCapacity {
		t.Fatalf("expected ring capped at %d, got %d", threatmodel.AuditRingCapacity, r.Len())
	}
}

func TestRing_GetByRequestID(t *testing.T) {
	r := NewRing()
	r.Append(threatmodel.AuditEntry{RequestID: "a"})
	r.Append(threatmodel.AuditEntry{RequestID: "b"})
	e, ok := r.Get("a")
	if !ok || e.RequestID != "a" {
		t.Fatalf("expected to find entry a, got %+v ok=%v", e, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatalf("expected missing request id to not be found")
	}
}

func TestRing_RecentNewestFirst(t *testing.T) {
	r := NewRing()
	r.Append(threatmodel.AuditEntry{RequestID: "1"})
	r.Append(threatmodel.AuditEntry{RequestID: "2"})
	r.Append(threatmodel.AuditEntry{RequestID: "3"})
	recent := r.Recent(2)
	if len(recent) != 2 || recent[0].RequestID != "3" || recent[1].RequestID != "2" {
		t.Fatalf("expected [3,2], got %+v", recent)
	}
}

func TestRing_ExportPagination(t *testing.T) {
	r := NewRing()
	for i := 0; i < 120; i++ {
		r.Append(threatmodel.AuditEntry{RequestID: NewRequestID()})
	}
	page1 := r.Export(1, 50)
	page2 := r.Export(2, 50)
	page3 := r.Export(3, 50)
	if len(page1.Entries) != 50 || len(page2.Entries) != 50 || len(page3.Entries) != 20 {
		t.Fatalf("unexpected page sizes: %d %d %d", len(page1.Entries), len(page2.Entries), len(page3.Entries))
	}
	if page1.TotalCount != 120 {
		t.Fatalf("expected total count 120, got %d", page1.TotalCount)
	}
}

func TestRing_ExportPageBeyondRangeIsEmpty(t *testing.T) {
	r := NewRing()
	r.Append(threatmodel.AuditEntry{RequestID: "1"})
	page := r.Export(5, 50)
	if len(page.Entries) != 0 {
		t.Fatalf("expected empty page beyond range, got %+v", page.Entries)
	}
}

func TestNewRequestID_IsUnique(t *testing.T) {
	if NewRequestID() == NewRequestID() {
		t.Fatalf("expected unique request ids")
	}
}
