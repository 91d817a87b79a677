// Package bitmap packs boolean flags into contract storage words, 256
// flags per slot, so that runs of adjacent indices share reads and
// writes.
package bitmap

import (
	"github.com/holiman/uint256"

	"github.com/consensys/contractlib/crypto/keccak"
	"github.com/consensys/contractlib/host"
)

// Map is a bitmap of uint256-indexed flags rooted at a base slot. Flag
// index i lives at bit i mod 256 of the bucket word keyed by i / 256.
type Map struct {
	env  host.Storage
	base host.Hash
}

// New returns a bitmap over env rooted at base. Two bitmaps on the
// same instance must use distinct base slots.
func New(env host.Storage, base host.Hash) *Map {
	return &Map{env: env, base: base}
}

// Get reports whether the flag at index is set.
func (m *Map) Get(index *uint256.Int) bool {
	word := m.load(bucketOf(index))
	return !word.And(word, maskOf(index)).IsZero()
}

// Set sets the flag at index.
func (m *Map) Set(index *uint256.Int) {
	bucket := bucketOf(index)
	word := m.load(bucket)
	m.store(bucket, word.Or(word, maskOf(index)))
}

// Unset clears the flag at index.
func (m *Map) Unset(index *uint256.Int) {
	bucket := bucketOf(index)
	word := m.load(bucket)
	m.store(bucket, word.And(word, new(uint256.Int).Not(maskOf(index))))
}

// SetTo sets the flag at index to value.
func (m *Map) SetTo(index *uint256.Int, value bool) {
	if value {
		m.Set(index)
		return
	}
	m.Unset(index)
}

func (m *Map) load(bucket host.Hash) *uint256.Int {
	w := m.env.StorageLoad(m.slotOf(bucket))
	return new(uint256.Int).SetBytes(w[:])
}

func (m *Map) store(bucket host.Hash, word *uint256.Int) {
	m.env.StorageStore(m.slotOf(bucket), host.HashFromUint256(word))
}

// slotOf derives the storage slot of a bucket the way mappings lay out
// their entries, keccak256 of the key followed by the base slot.
func (m *Map) slotOf(bucket host.Hash) host.Hash {
	k := keccak.New()
	k.Update(bucket[:])
	k.Update(m.base[:])
	return host.Hash(k.Finalize())
}

func bucketOf(index *uint256.Int) host.Hash {
	b := new(uint256.Int).Rsh(index, 8)
	return host.HashFromUint256(b)
}

func maskOf(index *uint256.Int) *uint256.Int {
	bit := uint(index.Uint64() & 0xff)
	return new(uint256.Int).Lsh(uint256.NewInt(1), bit)
}
