// Package ecdsa recovers Ethereum addresses from secp256k1 signatures
// through the host's ecrecover precompile, enforcing the EIP-2
// lower-half-order bound on s and rejecting zero-address results.
package ecdsa

import (
	"errors"
	"fmt"

	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/curve/secp256k1"
	"github.com/consensys/contractlib/host"
)

// PrecompileAddress is the ecrecover precompile, 0x…01.
var PrecompileAddress = host.Address{19: 0x01}

// SignatureLength is the byte size of a packed r ‖ s ‖ v signature.
const SignatureLength = 65

// Errors returned by signature parsing and recovery.
var (
	// ErrInvalidSignature means the signature does not recover to any
	// address.
	ErrInvalidSignature = errors.New("ecdsa: invalid signature")
	// ErrInvalidSignatureLength means a packed signature is not
	// 65 bytes.
	ErrInvalidSignatureLength = errors.New("ecdsa: invalid signature length")
	// ErrInvalidSignatureS means s is in the malleable upper half of
	// the curve order.
	ErrInvalidSignatureS = errors.New("ecdsa: invalid signature s value")
)

// Signature is a recoverable secp256k1 signature.
type Signature struct {
	R host.Hash
	S host.Hash
	V uint8
}

// SignatureFromBytes parses the packed 65-byte r ‖ s ‖ v form.
func SignatureFromBytes(sig []byte) (Signature, error) {
	if len(sig) != SignatureLength {
		return Signature{}, fmt.Errorf("%w: %d bytes", ErrInvalidSignatureLength, len(sig))
	}
	var out Signature
	copy(out.R[:], sig[:32])
	copy(out.S[:], sig[32:64])
	out.V = sig[64]
	return out, nil
}

// SignatureFromRVS unpacks the EIP-2098 short form: vs carries the
// recovery bit in its top bit and s in the remaining 255 bits.
func SignatureFromRVS(r, vs host.Hash) Signature {
	out := Signature{R: r, S: vs}
	out.V = 27 + vs[0]>>7
	out.S[0] &= 0x7f
	return out
}

// Bytes returns the packed 65-byte r ‖ s ‖ v form.
func (sig Signature) Bytes() [SignatureLength]byte {
	var out [SignatureLength]byte
	copy(out[:32], sig.R[:])
	copy(out[32:64], sig.S[:])
	out[64] = sig.V
	return out
}

// Recover returns the address whose key signed digest. It validates
// the signature shape before touching the precompile: zero r or s,
// upper-half s, or a v outside {27, 28} never reach the host.
func Recover(env host.Caller, digest host.Hash, sig Signature) (host.Address, error) {
	if sig.R.IsZero() || sig.S.IsZero() {
		return host.Address{}, ErrInvalidSignature
	}
	if sig.V != 27 && sig.V != 28 {
		return host.Address{}, ErrInvalidSignature
	}

	var s arith.U256
	if _, err := s.SetBytesBE(sig.S[:]); err != nil {
		return host.Address{}, err
	}
	halfOrder := secp256k1.HalfOrder()
	if s.Cmp(&halfOrder) > 0 {
		return host.Address{}, ErrInvalidSignatureS
	}

	input := make([]byte, 128)
	copy(input[0:32], digest[:])
	input[63] = sig.V
	copy(input[64:96], sig.R[:])
	copy(input[96:128], sig.S[:])

	out, err := env.StaticCall(PrecompileAddress, input)
	if err != nil {
		return host.Address{}, fmt.Errorf("ecdsa: precompile call: %w", err)
	}
	if len(out) != 32 {
		return host.Address{}, ErrInvalidSignature
	}
	var word host.Hash
	copy(word[:], out)
	addr := word.Address()
	if addr.IsZero() {
		return host.Address{}, ErrInvalidSignature
	}
	return addr, nil
}

// RecoverFromBytes recovers from the packed 65-byte signature form.
func RecoverFromBytes(env host.Caller, digest host.Hash, sig []byte) (host.Address, error) {
	parsed, err := SignatureFromBytes(sig)
	if err != nil {
		return host.Address{}, err
	}
	return Recover(env, digest, parsed)
}

// RecoverFromRVS recovers from the EIP-2098 short signature form.
func RecoverFromRVS(env host.Caller, digest host.Hash, r, vs host.Hash) (host.Address, error) {
	return Recover(env, digest, SignatureFromRVS(r, vs))
}
