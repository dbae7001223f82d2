package rng

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// DeriveSeed mixes a world seed with a key (a portal id, a floor name) into a
// new seed. The result is stable across runs and platforms.
func DeriveSeed(worldSeed int64, key string) int64 {
	buf := make([]byte, 8, 8+len(key))
	binary.LittleEndian.PutUint64(buf, uint64(worldSeed))
	buf = append(buf, key...)

	sum := blake2b.Sum256(buf)
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}
