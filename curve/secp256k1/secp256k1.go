// Package secp256k1 provides the secp256k1 curve, the short
// Weierstrass curve y² = x³ + 7 over p = 2²⁵⁶ - 2³² - 977.
//
// https://www.secg.org/sec2-v2.pdf
package secp256k1

import (
	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/curve/sw"
	"github.com/consensys/contractlib/field"
)

// FpParams describes the secp256k1 base field.
type FpParams struct{}

func (FpParams) Modulus() arith.U256 {
	return arith.U256{0xfffffffefffffc2f, 0xffffffffffffffff, 0xffffffffffffffff, 0xffffffffffffffff}
}

func (FpParams) R() arith.U256 {
	return arith.U256{0x00000001000003d1, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000}
}

func (FpParams) R2() arith.U256 {
	return arith.U256{0x000007a2000e90a1, 0x0000000000000001, 0x0000000000000000, 0x0000000000000000}
}

func (FpParams) Inv() uint64 { return 0xd838091dd2253531 }

// Generator returns 3 in Montgomery form.
func (FpParams) Generator() arith.U256 {
	return arith.U256{0x0000000300000b73, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000}
}

// FrParams describes the secp256k1 scalar field, the prime group
// order n.
type FrParams struct{}

func (FrParams) Modulus() arith.U256 {
	return arith.U256{0xbfd25e8cd0364141, 0xbaaedce6af48a03b, 0xfffffffffffffffe, 0xffffffffffffffff}
}

func (FrParams) R() arith.U256 {
	return arith.U256{0x402da1732fc9bebf, 0x4551231950b75fc4, 0x0000000000000001, 0x0000000000000000}
}

func (FrParams) R2() arith.U256 {
	return arith.U256{0x896cf21467d7d140, 0x741496c20e7cf878, 0xe697f5e45bcd07c6, 0x9d671cd581c69bc5}
}

func (FrParams) Inv() uint64 { return 0x4b0dff665588b13f }

// Generator returns 7 in Montgomery form.
func (FrParams) Generator() arith.U256 {
	return arith.U256{0xc13f6a264e843739, 0xe537f5b135039e5d, 0x0000000000000008, 0x0000000000000000}
}

// Fp is an element of the secp256k1 base field.
type Fp = field.Element[FpParams]

// Fr is an element of the secp256k1 scalar field.
type Fr = field.Element[FrParams]

// Curve is the secp256k1 configuration.
type Curve struct{}

// CoeffA returns a = 0.
func (Curve) CoeffA() Fp { return Fp{} }

// CoeffB returns b = 7 in Montgomery form.
func (Curve) CoeffB() Fp {
	return Fp{0x0000000700001ab7, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000}
}

// Generator returns the standard secp256k1 generator
// (55066263022277343669578718895168534326250603453777594175500187360389116729240,
// 32670510020758816978083085130507043184471273380659243275938904335757337482424).
func (Curve) Generator() (x, y Fp) {
	x = Fp{0xd7362e5a487e2097, 0x231e295329bc66db, 0x979f48c033fd129c, 0x9981e643e9089f48}
	y = Fp{0xb15ea6d2d3dbabe2, 0x8dfc5d5d1f1dc64d, 0x70b6b59aac19c136, 0xcf3f851fd4a582d6}
	return
}

// Order returns the group order n as a plain integer.
func (Curve) Order() arith.U256 {
	return FrParams{}.Modulus()
}

func (Curve) Cofactor() uint64 { return 1 }

// HalfOrder returns floor(n / 2) as a plain integer. Signature
// schemes use it to reject malleable upper-half scalars.
func HalfOrder() arith.U256 {
	return arith.U256{0xdfe92f46681b20a0, 0x5d576e7357a4501d, 0xffffffffffffffff, 0x7fffffffffffffff}
}

// Affine is a point on secp256k1 in affine coordinates.
type Affine = sw.Affine[FpParams, Curve]

// Jacobian is a point on secp256k1 in Jacobian coordinates.
type Jacobian = sw.Jacobian[FpParams, Curve]

// Generator returns the curve generator in affine coordinates.
func Generator() Affine {
	return sw.Generator[FpParams, Curve]()
}
