// Package starkcurve provides the Stark curve, the short Weierstrass
// curve y² = x³ + x + b over the Starknet prime field
// p = 2²⁵¹ + 17·2¹⁹² + 1.
//
// https://docs.starkware.co/starkex/crypto/stark-curve.html
package starkcurve

import (
	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/curve/sw"
	"github.com/consensys/contractlib/field"
)

// FpParams describes the base field of the Stark curve,
// p = 3618502788666131213697322783095070105623107215331596699973092056135872020481.
type FpParams struct{}

func (FpParams) Modulus() arith.U256 {
	return arith.U256{0x0000000000000001, 0x0000000000000000, 0x0000000000000000, 0x0800000000000011}
}

func (FpParams) R() arith.U256 {
	return arith.U256{0xffffffffffffffe1, 0xffffffffffffffff, 0xffffffffffffffff, 0x07fffffffffffdf0}
}

func (FpParams) R2() arith.U256 {
	return arith.U256{0xfffffd737e000401, 0x00000001330fffff, 0xffffffffff6f8000, 0x07ffd4ab5e008810}
}

func (FpParams) Inv() uint64 { return 0xffffffffffffffff }

// Generator returns 3 in Montgomery form.
func (FpParams) Generator() arith.U256 {
	return arith.U256{0xffffffffffffffa1, 0xffffffffffffffff, 0xffffffffffffffff, 0x07fffffffffff9b0}
}

// FrParams describes the scalar field of the Stark curve, the prime
// group order
// n = 3618502788666131213697322783095070105526743751716087489154079457884512865583.
type FrParams struct{}

func (FrParams) Modulus() arith.U256 {
	return arith.U256{0x1e66a241adc64d2f, 0xb781126dcae7b232, 0xffffffffffffffff, 0x0800000000000010}
}

func (FrParams) R() arith.U256 {
	return arith.U256{0x51925a0bf4fca74f, 0xc75ec4b46df16bee, 0x0000000000000008, 0x07fffffffffffdf1}
}

func (FrParams) R2() arith.U256 {
	return arith.U256{0x6021b3f1ea1c688d, 0x509cf64d14ce60b9, 0xbaf0ab4cf78bbabb, 0x07d9e57c2333766e}
}

func (FrParams) Inv() uint64 { return 0xbb6b3c4ce8bde631 }

// Generator returns 5 in Montgomery form.
func (FrParams) Generator() arith.U256 {
	return arith.U256{0x1e41393511d60fcf, 0x06d58dcefa1852df, 0x000000000000002d, 0x07fffffffffff571}
}

// Fp is an element of the Stark curve base field.
type Fp = field.Element[FpParams]

// Fr is an element of the Stark curve scalar field.
type Fr = field.Element[FrParams]

// Curve is the Stark curve configuration.
type Curve struct{}

// CoeffA returns a = 1 in Montgomery form.
func (Curve) CoeffA() Fp {
	return Fp{0xffffffffffffffe1, 0xffffffffffffffff, 0xffffffffffffffff, 0x07fffffffffffdf0}
}

// CoeffB returns
// b = 3141592653589793238462643383279502884197169399375105820974944592307816406665
// in Montgomery form.
func (Curve) CoeffB() Fp {
	return Fp{0x359ddd67b59a21ca, 0x6725f2237aab9006, 0xab8a1e002a41f947, 0x013931651774247f}
}

// Generator returns the standard Stark curve generator
// (874739451078007766457464989774322083649278607533249481151382481072868806602,
// 152666792071518830868575557812948353041420400780739481342941381225525861407).
func (Curve) Generator() (x, y Fp) {
	x = Fp{0xc9019623cf0273dd, 0x51a9bf65d4403dea, 0x0429bf5184041c7b, 0x033840300bf6cec1}
	y = Fp{0x569d0da34235308a, 0x0939e3442869bbe7, 0xfbd89a97cf4b33ad, 0x05a0e71610f55329}
	return
}

// Order returns the group order as a plain integer.
func (Curve) Order() arith.U256 {
	return FrParams{}.Modulus()
}

func (Curve) Cofactor() uint64 { return 1 }

// Affine is a point on the Stark curve in affine coordinates.
type Affine = sw.Affine[FpParams, Curve]

// Jacobian is a point on the Stark curve in Jacobian coordinates.
type Jacobian = sw.Jacobian[FpParams, Curve]

// Generator returns the curve generator in affine coordinates.
func Generator() Affine {
	return sw.Generator[FpParams, Curve]()
}
