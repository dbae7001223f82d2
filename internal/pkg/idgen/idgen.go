// Package idgen provides ID generation for portals and dungeons
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates random UUIDs with an optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	return withPrefix(g.prefix, uuid.New().String())
}

// SeededGenerator derives name-based (SHA-1) UUIDs from a seed and a
// counter, so the same seed always yields the same id sequence.
type SeededGenerator struct {
	prefix  string
	space   uuid.UUID
	counter uint64
}

// NewSeeded creates a reproducible UUID generator for seed.
func NewSeeded(prefix string, seed int64) *SeededGenerator {
	return &SeededGenerator{
		prefix: prefix,
		space:  uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("undercroft/%d", seed))),
	}
}

// Generate creates the next id in the seeded sequence
func (g *SeededGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	id := uuid.NewSHA1(g.space, []byte(fmt.Sprintf("%s/%d", g.prefix, n)))
	return withPrefix(g.prefix, id.String())
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	return withPrefix(g.prefix, fmt.Sprintf("%d", n))
}

func withPrefix(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
