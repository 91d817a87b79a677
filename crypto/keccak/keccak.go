// Package keccak implements the Keccak-256 hash with the original
// Keccak padding, as used throughout Ethereum, plus the EIP-191
// signed-message digest helpers.
package keccak

import (
	"hash"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// Size is the digest size in bytes.
const Size = 32

// Hasher is a streaming Keccak-256 state. The zero value is not
// usable; call New.
type Hasher struct {
	h hash.Hash
}

// New returns a fresh Keccak-256 hasher.
func New() *Hasher {
	return &Hasher{h: sha3.NewLegacyKeccak256()}
}

// Update absorbs data into the hash state.
func (k *Hasher) Update(data []byte) {
	k.h.Write(data)
}

// Finalize returns the digest of everything absorbed so far. The
// hasher must not be used afterwards.
func (k *Hasher) Finalize() [Size]byte {
	var out [Size]byte
	copy(out[:], k.h.Sum(nil))
	return out
}

// Reset returns the hasher to its initial state.
func (k *Hasher) Reset() {
	k.h.Reset()
}

// Sum256 returns the Keccak-256 digest of data.
func Sum256(data []byte) [Size]byte {
	k := New()
	k.Update(data)
	return k.Finalize()
}

// ethereum signed message prefix per EIP-191 version 0x45
const signedMessagePrefix = "\x19Ethereum Signed Message:\n"

// HashMessage returns the EIP-191 digest of an arbitrary message:
// keccak256("\x19Ethereum Signed Message:\n" || len(message) || message)
// with the length in decimal.
func HashMessage(message []byte) [Size]byte {
	k := New()
	k.Update([]byte(signedMessagePrefix))
	k.Update([]byte(strconv.Itoa(len(message))))
	k.Update(message)
	return k.Finalize()
}

// ToEthSignedMessageHash returns the EIP-191 digest of a 32-byte hash,
// the form produced by eth_sign and consumed by on-chain signature
// checks.
func ToEthSignedMessageHash(h [Size]byte) [Size]byte {
	k := New()
	k.Update([]byte(signedMessagePrefix + "32"))
	k.Update(h[:])
	return k.Finalize()
}
