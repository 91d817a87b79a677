package ecdsa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fasthex "github.com/tmthrgd/go-hex"

	"github.com/consensys/contractlib/crypto/ecdsa"
	"github.com/consensys/contractlib/host"
	"github.com/consensys/contractlib/host/hostsim"
)

var caller = host.Address{0xa1}

// digest sha256("contractlib ecdsa vector") signed by private key 1
// with nonce 5, low-s normalized: recovers the address of key 1.
const (
	vecDigest = "c6310a634ffa674dc7fe654993f9aff51fa0d92213ffff889c47d039d23a40fb"
	vecR      = "2f8bde4d1a07209355b4a7250a5c5128e88b84bddc619ab7cba8d569b240efe4"
	vecS      = "6458fb567b99e7f9d2bd68e2ec7799d28d5f0bc153220bb26e5a3409aa89e3a0"
	vecAddr   = "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf"
)

func mustWord(t *testing.T, s string) host.Hash {
	t.Helper()
	h, err := host.HashFromHex(s)
	require.NoError(t, err)
	return h
}

// recoverEnv runs fn inside a hostsim entry point so the precompile is
// reachable through StaticCall.
func recoverEnv(t *testing.T, fn func(env host.Host) (host.Address, error)) (host.Address, error) {
	t.Helper()
	sim := hostsim.New(1)
	self := host.Address{0xc0}
	var addr host.Address
	var innerErr error
	sim.Register(self, func(env host.Host, _ []byte) ([]byte, error) {
		addr, innerErr = fn(env)
		return nil, nil
	})
	_, err := sim.Execute(caller, self, nil, nil)
	require.NoError(t, err)
	return addr, innerErr
}

func vectorSignature(t *testing.T) (host.Hash, ecdsa.Signature) {
	t.Helper()
	sig := ecdsa.Signature{
		R: mustWord(t, vecR),
		S: mustWord(t, vecS),
		V: 27,
	}
	return mustWord(t, vecDigest), sig
}

func TestRecoverKnownVector(t *testing.T) {
	digest, sig := vectorSignature(t)
	addr, err := recoverEnv(t, func(env host.Host) (host.Address, error) {
		return ecdsa.Recover(env, digest, sig)
	})
	require.NoError(t, err)
	assert.Equal(t, vecAddr, addr.String())
}

func TestRecoverFromPackedBytes(t *testing.T) {
	digest, sig := vectorSignature(t)
	packed := sig.Bytes()
	addr, err := recoverEnv(t, func(env host.Host) (host.Address, error) {
		return ecdsa.RecoverFromBytes(env, digest, packed[:])
	})
	require.NoError(t, err)
	assert.Equal(t, vecAddr, addr.String())

	_, err = ecdsa.SignatureFromBytes(packed[:64])
	assert.ErrorIs(t, err, ecdsa.ErrInvalidSignatureLength)
}

func TestRecoverFromShortForm(t *testing.T) {
	digest, sig := vectorSignature(t)
	// v=27 means the top bit of vs stays clear; s already has its top
	// bit clear in this vector
	vs := sig.S
	addr, err := recoverEnv(t, func(env host.Host) (host.Address, error) {
		return ecdsa.RecoverFromRVS(env, digest, sig.R, vs)
	})
	require.NoError(t, err)
	assert.Equal(t, vecAddr, addr.String())
}

func TestShortFormUnpacksV28(t *testing.T) {
	var r, vs host.Hash
	vs[0] = 0x80 | 0x12
	vs[31] = 0x01
	sig := ecdsa.SignatureFromRVS(r, vs)
	assert.Equal(t, uint8(28), sig.V)
	assert.Equal(t, byte(0x12), sig.S[0])
}

func TestUpperHalfSRejectedBeforePrecompile(t *testing.T) {
	digest, sig := vectorSignature(t)
	// n - s is the upper-half twin of the same signature
	upperS := mustWord(t, "9ba704a9846618062d42971d1388662c2d4fd1255c26948951782a8325ac5da1")
	sig.S = upperS
	sig.V = 28

	sim := hostsim.New(1)
	// no precompile registered visits: Recover must fail before any
	// static call, so no ErrNoCode can surface
	self := host.Address{0xc0}
	var rerr error
	sim.Register(self, func(env host.Host, _ []byte) ([]byte, error) {
		_, rerr = ecdsa.Recover(env, digest, sig)
		return nil, nil
	})
	_, err := sim.Execute(caller, self, nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, rerr, ecdsa.ErrInvalidSignatureS)
}

func TestZeroComponentsRejected(t *testing.T) {
	digest, sig := vectorSignature(t)

	zeroR := sig
	zeroR.R = host.Hash{}
	_, err := recoverEnv(t, func(env host.Host) (host.Address, error) {
		return ecdsa.Recover(env, digest, zeroR)
	})
	assert.ErrorIs(t, err, ecdsa.ErrInvalidSignature)

	zeroS := sig
	zeroS.S = host.Hash{}
	_, err = recoverEnv(t, func(env host.Host) (host.Address, error) {
		return ecdsa.Recover(env, digest, zeroS)
	})
	assert.ErrorIs(t, err, ecdsa.ErrInvalidSignature)

	badV := sig
	badV.V = 2
	_, err = recoverEnv(t, func(env host.Host) (host.Address, error) {
		return ecdsa.Recover(env, digest, badV)
	})
	assert.ErrorIs(t, err, ecdsa.ErrInvalidSignature)
}

func TestUnrecoverableSignature(t *testing.T) {
	digest, sig := vectorSignature(t)
	// r beyond the curve order cannot come from any signing operation;
	// the precompile returns empty output and recovery reports failure
	for i := range sig.R {
		sig.R[i] = 0xff
	}
	_, err := recoverEnv(t, func(env host.Host) (host.Address, error) {
		return ecdsa.Recover(env, digest, sig)
	})
	assert.ErrorIs(t, err, ecdsa.ErrInvalidSignature)
}

func TestSignatureBytesRoundTrip(t *testing.T) {
	_, sig := vectorSignature(t)
	packed := sig.Bytes()
	back, err := ecdsa.SignatureFromBytes(packed[:])
	require.NoError(t, err)
	assert.Equal(t, sig, back)
	var hx [65]byte
	copy(hx[:], packed[:])
	assert.Equal(t, vecR, fasthex.EncodeToString(hx[:32]))
}
