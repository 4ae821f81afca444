package idgen

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs. ULIDs sort by creation time, so
// event and snapshot IDs issued by one process are roughly ordered.
type ULIDGenerator struct {
	prefix string
}

// NewULIDGenerator creates a new ULIDGenerator. A non-empty prefix is
// prepended to every ID, e.g. "evt_".
func NewULIDGenerator(prefix string) *ULIDGenerator {
	return &ULIDGenerator{prefix: prefix}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return g.prefix + ulid.Make().String()
}
