// Package merkle verifies Merkle tree inclusion proofs built with
// commutative Keccak-256 pair hashing: each parent is the hash of its
// children sorted as byte strings, so proofs carry no left/right
// position bits.
package merkle

import (
	"bytes"
	"errors"

	"github.com/consensys/contractlib/crypto/keccak"
)

// ErrInvalidProof is returned by VerifyMultiProof when the proof,
// flags and leaves do not describe one tree reconstruction.
var ErrInvalidProof = errors.New("merkle: invalid multi-proof shape")

// Verify reports whether proof is a valid inclusion path from leaf up
// to root.
func Verify(proof [][32]byte, root, leaf [32]byte) bool {
	for _, h := range proof {
		leaf = hashSortedPair(leaf, h)
	}
	return leaf == root
}

// VerifyMultiProof reports whether proof simultaneously proves every
// leaf in leaves against root. proofFlags drives the reconstruction:
// true consumes the second child from the working queue, false from
// proof. Inconsistent lengths fail with ErrInvalidProof.
func VerifyMultiProof(proof [][32]byte, proofFlags []bool, root [32]byte, leaves [][32]byte) (bool, error) {
	totalHashes := len(proofFlags)
	if len(leaves)+len(proof) != totalHashes+1 {
		return false, ErrInvalidProof
	}
	if totalHashes == 0 {
		if len(leaves) == 1 {
			return leaves[0] == root, nil
		}
		return proof[0] == root, nil
	}

	hashes := make([][32]byte, 0, totalHashes+len(leaves))
	hashes = append(hashes, leaves...)
	proofPos, hashPos := 0, 0
	for _, flag := range proofFlags {
		if hashPos >= len(hashes) {
			return false, ErrInvalidProof
		}
		a := hashes[hashPos]
		hashPos++

		var b [32]byte
		if flag {
			if hashPos >= len(hashes) {
				return false, ErrInvalidProof
			}
			b = hashes[hashPos]
			hashPos++
		} else {
			if proofPos >= len(proof) {
				return false, ErrInvalidProof
			}
			b = proof[proofPos]
			proofPos++
		}
		hashes = append(hashes, hashSortedPair(a, b))
	}

	return hashes[len(hashes)-1] == root, nil
}

// hashSortedPair hashes the concatenation of a and b with the smaller
// byte string first.
func hashSortedPair(a, b [32]byte) [32]byte {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	k := keccak.New()
	k.Update(a[:])
	k.Update(b[:])
	return k.Finalize()
}
