// Package idgen implements the identifier port.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/artpar/actionkit/ports"
	"github.com/google/uuid"
)

// UUID issues random version 4 UUIDs.
type UUID struct{}

func (UUID) New() string { return uuid.New().String() }

// Sequential appends an incrementing counter to a prefix so tests get
// stable ids.
type Sequential struct {
	prefix  string
	counter uint64
}

// NewSequential returns a counter-backed generator with the given prefix.
func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

func (s *Sequential) New() string {
	n := atomic.AddUint64(&s.counter, 1)
	return s.prefix + strconv.FormatUint(n, 10)
}

// Reset starts the sequence over.
func (s *Sequential) Reset() {
	atomic.StoreUint64(&s.counter, 0)
}

var (
	_ ports.IDGenerator = UUID{}
	_ ports.IDGenerator = (*Sequential)(nil)
)
