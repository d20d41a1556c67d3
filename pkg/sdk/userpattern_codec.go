package sdk

import (
	"encoding/json"

	"github.com/rawblock/threatcore/internal/store/memstore"
	"github.com/rawblock/threatcore/pkg/threatmodel"
)

func encodeUserPattern(p *threatmodel.UserPatternProfile) []byte {
	b, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	return b
}

func decodeUserPattern(raw []byte) (*threatmodel.UserPatternProfile, bool) {
	p := threatmodel.NewUserPatternProfile()
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, false
	}
	return p, true
}

// defaultMemStore backs the Default() convenience instance with the
// in-memory adapter, so the lazy singleton never depends on an external
// database being reachable.
func defaultMemStore() *memstore.Store {
	return memstore.New()
}
