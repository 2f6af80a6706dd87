package repository

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out identifiers for new records. Prefix names the kind of
// record ("contract", "payment", ...).
type IDGenerator interface {
	NewID(prefix string) string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

// SequenceGenerator is a monotonic counter shared across prefixes. Tests use
// it to get predictable ids.
type SequenceGenerator struct {
	next atomic.Int64
}

func NewSequenceGenerator(start int64) *SequenceGenerator {
	g := &SequenceGenerator{}
	g.next.Store(start)
	return g
}

func (g *SequenceGenerator) NewID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, g.next.Add(1))
}
