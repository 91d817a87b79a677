// Package eddsa implements Ed25519 signatures per RFC 8032 on top of
// the in-tree edwards25519 group: SHA-512 key expansion with scalar
// clamping, compressed-Y point encoding with the x sign bit, and wide
// 512-bit scalar reduction modulo the group order.
package eddsa

import (
	"crypto/sha512"
	"errors"

	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/curve/curve25519"
	"github.com/consensys/contractlib/field"
)

const (
	// SeedSize is the byte size of a private key seed.
	SeedSize = 32
	// PublicKeySize is the byte size of a compressed verifying key.
	PublicKeySize = 32
	// SignatureSize is the byte size of an R ‖ s signature.
	SignatureSize = 64
)

// Errors returned by key and signature decoding and verification.
var (
	// ErrBadSeedLength means the seed is not 32 bytes.
	ErrBadSeedLength = errors.New("eddsa: seed must be 32 bytes")
	// ErrBadKeyEncoding means a compressed verifying key does not
	// decode to a curve point.
	ErrBadKeyEncoding = errors.New("eddsa: malformed verifying key")
	// ErrBadSignatureEncoding means a signature is malformed or not
	// canonical.
	ErrBadSignatureEncoding = errors.New("eddsa: malformed signature")
	// ErrVerification means the signature does not verify.
	ErrVerification = errors.New("eddsa: verification failed")
)

// SigningKey is an Ed25519 private key: the clamped secret scalar and
// the hash prefix, both derived from the 32-byte seed.
type SigningKey struct {
	scalar arith.U256 // clamped, not reduced
	prefix [32]byte
	pub    VerifyingKey
}

// VerifyingKey is an Ed25519 public key.
type VerifyingKey struct {
	point curve25519.Affine
	enc   [PublicKeySize]byte
}

// Signature is a decoded Ed25519 signature: the commitment point R
// and the response scalar s.
type Signature struct {
	r    curve25519.Affine
	rEnc [32]byte
	s    arith.U256
}

// NewSigningKey derives a signing key from a 32-byte seed, expanding
// it with SHA-512 and clamping the scalar half.
func NewSigningKey(seed []byte) (*SigningKey, error) {
	if len(seed) != SeedSize {
		return nil, ErrBadSeedLength
	}
	h := sha512.Sum512(seed)

	var sk SigningKey
	// clamp: clear the three low bits, clear the top bit, set bit 254
	h[0] &= 0xf8
	h[31] &= 0x7f
	h[31] |= 0x40
	if _, err := sk.scalar.SetBytesLE(h[:32]); err != nil {
		return nil, err
	}
	copy(sk.prefix[:], h[32:])

	var a curve25519.Affine
	a.ScalarMulBase(&sk.scalar)
	sk.pub = VerifyingKey{point: a, enc: compress(&a)}
	return &sk, nil
}

// VerifyingKey returns the public key.
func (sk *SigningKey) VerifyingKey() VerifyingKey {
	return sk.pub
}

// Sign produces a deterministic Ed25519 signature over message.
func (sk *SigningKey) Sign(message []byte) Signature {
	// r = H(prefix ‖ M) mod l
	h := sha512.New()
	h.Write(sk.prefix[:])
	h.Write(message)
	r := reduceWide(h.Sum(nil))

	var rPoint curve25519.Affine
	rPoint.ScalarMulBase(&r)
	rEnc := compress(&rPoint)

	// k = H(R ‖ A ‖ M) mod l
	h = sha512.New()
	h.Write(rEnc[:])
	h.Write(sk.pub.enc[:])
	h.Write(message)
	k := reduceWide(h.Sum(nil))

	// s = k*a + r in the scalar field
	var ke, ae, re, se curve25519.Fr
	mustSetScalar(&ke, &k)
	order := curve25519.Curve{}.Order()
	wide := wideFromU256(&sk.scalar)
	aRed := wide.ModU256(&order)
	mustSetScalar(&ae, &aRed)
	mustSetScalar(&re, &r)
	se.Mul(&ke, &ae).AddAssign(&re)

	return Signature{r: rPoint, rEnc: rEnc, s: se.U256()}
}

// Bytes returns the 64-byte R ‖ s encoding.
func (sig Signature) Bytes() [SignatureSize]byte {
	var out [SignatureSize]byte
	copy(out[:32], sig.rEnc[:])
	sBytes := sig.s.BytesLE()
	copy(out[32:], sBytes[:])
	return out
}

// SignatureFromBytes decodes an R ‖ s signature, rejecting
// non-canonical s and undecodable R.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b) != SignatureSize {
		return Signature{}, ErrBadSignatureEncoding
	}
	var sig Signature
	copy(sig.rEnc[:], b[:32])
	point, err := decompress(sig.rEnc)
	if err != nil {
		return Signature{}, ErrBadSignatureEncoding
	}
	sig.r = point

	if _, err := sig.s.SetBytesLE(b[32:]); err != nil {
		return Signature{}, ErrBadSignatureEncoding
	}
	order := curve25519.Curve{}.Order()
	if sig.s.Cmp(&order) >= 0 {
		return Signature{}, ErrBadSignatureEncoding
	}
	return sig, nil
}

// Bytes returns the compressed 32-byte encoding.
func (vk VerifyingKey) Bytes() [PublicKeySize]byte {
	return vk.enc
}

// VerifyingKeyFromBytes decodes a compressed verifying key.
func VerifyingKeyFromBytes(b []byte) (VerifyingKey, error) {
	if len(b) != PublicKeySize {
		return VerifyingKey{}, ErrBadKeyEncoding
	}
	var enc [PublicKeySize]byte
	copy(enc[:], b)
	point, err := decompress(enc)
	if err != nil {
		return VerifyingKey{}, err
	}
	return VerifyingKey{point: point, enc: enc}, nil
}

// Verify checks sig over message: s·G must equal R + H(R ‖ A ‖ M)·A.
func (vk VerifyingKey) Verify(message []byte, sig Signature) error {
	h := sha512.New()
	h.Write(sig.rEnc[:])
	h.Write(vk.enc[:])
	h.Write(message)
	k := reduceWide(h.Sum(nil))

	var lhs curve25519.Affine
	lhs.ScalarMulBase(&sig.s)

	var kA curve25519.Affine
	kA.ScalarMul(&vk.point, &k)
	var rhs, rExt, kaExt curve25519.Extended
	rExt.FromAffine(&sig.r)
	kaExt.FromAffine(&kA)
	rhs.Set(&rExt).AddAssign(&kaExt)

	var rhsAff curve25519.Affine
	rhsAff.FromExtended(&rhs)
	if !lhs.Equal(&rhsAff) {
		return ErrVerification
	}
	return nil
}

// compress encodes a point as its little-endian y coordinate with the
// parity of x in the top bit of the last byte.
func compress(p *curve25519.Affine) [32]byte {
	out := p.Y.BytesLE()
	x := p.X.U256()
	if x.IsOdd() {
		out[31] |= 0x80
	}
	return out
}

// decompress recovers a point from its compressed encoding:
// x² = (y² - 1) / (d·y² + 1), with the root selected by the sign bit.
func decompress(enc [32]byte) (curve25519.Affine, error) {
	sign := enc[31]>>7 == 1
	enc[31] &= 0x7f

	var p curve25519.Affine
	if _, err := p.Y.SetBytesLE(enc[:]); err != nil {
		return curve25519.Affine{}, ErrBadKeyEncoding
	}

	d := curve25519.Curve{}.CoeffD()
	one := field.One[curve25519.FpParams]()

	var yy, num, den field.Element[curve25519.FpParams]
	yy.Square(&p.Y)
	num.Sub(&yy, &one)
	den.Mul(&d, &yy).AddAssign(&one)

	var xx field.Element[curve25519.FpParams]
	xx.Inverse(&den).MulAssign(&num)

	if xx.Sqrt(&xx) == nil {
		return curve25519.Affine{}, ErrBadKeyEncoding
	}
	p.X = xx

	xPlain := p.X.U256()
	if xPlain.IsZero() && sign {
		// -0 is not a valid encoding
		return curve25519.Affine{}, ErrBadKeyEncoding
	}
	if xPlain.IsOdd() != sign {
		p.X.Neg(&p.X)
	}
	return p, nil
}

// reduceWide interprets a 64-byte little-endian hash as an integer
// and reduces it modulo the group order.
func reduceWide(h []byte) arith.U256 {
	var wide arith.U512
	if _, err := wide.SetBytesLE(h); err != nil {
		panic(err) // SHA-512 output is always 64 bytes
	}
	order := curve25519.Curve{}.Order()
	return wide.ModU256(&order)
}

func wideFromU256(v *arith.U256) arith.U512 {
	var w arith.U512
	copy(w[:arith.U256Limbs], v[:])
	return w
}

func mustSetScalar(e *curve25519.Fr, v *arith.U256) {
	if _, err := e.SetU256(v); err != nil {
		panic(err) // v is reduced mod l by construction
	}
}
