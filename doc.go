// Package contractlib provides the cryptographic and data-structure core of a
// smart-contract standard library: prime-field and elliptic-curve arithmetic
// (short Weierstrass and twisted Edwards models), ECDSA recovery and Ed25519
// signatures, Keccak-256, the Starknet Pedersen hash, EIP-712 typed-data
// digests, checkpointed historical values, enumerable sets and the UUPS
// upgradeable-proxy state machine.
//
// The host execution environment (storage, calls, logs) is modeled by the
// host package; token standards and access control are out of scope.
package contractlib

import (
	"github.com/blang/semver/v4"
)

// Version of the library.
var Version = semver.MustParse("0.2.0")
