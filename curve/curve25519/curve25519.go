// Package curve25519 provides the twisted Edwards form of Curve25519
// (edwards25519), -x² + y² = 1 + dx²y² over p = 2²⁵⁵ - 19, with the
// RFC 8032 base point. The birationally equivalent Montgomery curve
// constants are exposed for reference.
//
// https://www.rfc-editor.org/rfc/rfc7748
package curve25519

import (
	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/curve/te"
	"github.com/consensys/contractlib/field"
)

// FpParams describes the Curve25519 base field, p = 2²⁵⁵ - 19.
type FpParams struct{}

func (FpParams) Modulus() arith.U256 {
	return arith.U256{0xffffffffffffffed, 0xffffffffffffffff, 0xffffffffffffffff, 0x7fffffffffffffff}
}

func (FpParams) R() arith.U256 {
	return arith.U256{0x0000000000000026, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000}
}

func (FpParams) R2() arith.U256 {
	return arith.U256{0x00000000000005a4, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000}
}

func (FpParams) Inv() uint64 { return 0x86bca1af286bca1b }

// Generator returns 2 in Montgomery form. 2 is a non-square mod
// 2²⁵⁵ - 19, as required for square root extraction.
func (FpParams) Generator() arith.U256 {
	return arith.U256{0x000000000000004c, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000}
}

// FrParams describes the Curve25519 scalar field, the prime subgroup
// order l = 2²⁵² + 27742317777372353535851937790883648493.
type FrParams struct{}

func (FrParams) Modulus() arith.U256 {
	return arith.U256{0x5812631a5cf5d3ed, 0x14def9dea2f79cd6, 0x0000000000000000, 0x1000000000000000}
}

func (FrParams) R() arith.U256 {
	return arith.U256{0xd6ec31748d98951d, 0xc6ef5bf4737dcf70, 0xfffffffffffffffe, 0x0fffffffffffffff}
}

func (FrParams) R2() arith.U256 {
	return arith.U256{0xa40611e3449c0f01, 0xd00e1ba768859347, 0xceec73d217f5be65, 0x0399411b7c309a3d}
}

func (FrParams) Inv() uint64 { return 0xd2b51da312547e1b }

// Generator returns 2 in Montgomery form.
func (FrParams) Generator() arith.U256 {
	return arith.U256{0x55c5ffcebe3b564d, 0x78ffbe0a4404020b, 0xfffffffffffffffd, 0x0fffffffffffffff}
}

// Fp is an element of the Curve25519 base field.
type Fp = field.Element[FpParams]

// Fr is an element of the Curve25519 scalar field.
type Fr = field.Element[FrParams]

// Curve is the edwards25519 configuration.
type Curve struct{}

// CoeffA returns a = -1 in Montgomery form.
func (Curve) CoeffA() Fp {
	return Fp{0xffffffffffffffc7, 0xffffffffffffffff, 0xffffffffffffffff, 0x7fffffffffffffff}
}

// CoeffD returns d = -121665/121666 =
// 37095705934669439343138083508754565189542113879843219016388785533085940283555
// in Montgomery form.
func (Curve) CoeffD() Fp {
	return Fp{0x80ed8bfedf47e9fa, 0x10a18777afc62973, 0xe5939207bc188690, 0x2c822b5a729fc526}
}

// Generator returns the RFC 8032 base point
// (15112221349535400772501151409588531511454012693041857206046113283949847762202,
// 46316835694926478169428394003475163141307993866256225615783033603165251855960).
func (Curve) Generator() (x, y Fp) {
	x = Fp{0xe2cabc553f9da287, 0x9ca598562396e489, 0x9879936bade4b5b7, 0x759e23707e6077d0}
	y = Fp{0x333333333333334a, 0x3333333333333333, 0x3333333333333333, 0x3333333333333333}
	return
}

// Order returns the prime subgroup order l as a plain integer.
func (Curve) Order() arith.U256 {
	return FrParams{}.Modulus()
}

func (Curve) Cofactor() uint64 { return 8 }

// MontCoeffA returns A = 486662 of the equivalent Montgomery curve
// By² = x³ + Ax² + x, in Montgomery representation.
func MontCoeffA() Fp {
	return Fp{0x00000000011a2ee4, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000}
}

// MontCoeffB returns the B coefficient of the equivalent Montgomery
// curve, in Montgomery representation.
func MontCoeffB() Fp {
	return Fp{0xfffffffffee5d0bd, 0xffffffffffffffff, 0xffffffffffffffff, 0x7fffffffffffffff}
}

// CofactorInv returns 8⁻¹ in the scalar field.
func CofactorInv() Fr {
	return Fr{0xa7ed9ce5a30a2c13, 0xeb2106215d086329, 0xffffffffffffffff, 0x0fffffffffffffff}
}

// Affine is a point on edwards25519 in affine coordinates.
type Affine = te.Affine[FpParams, Curve]

// Extended is a point on edwards25519 in extended coordinates.
type Extended = te.Extended[FpParams, Curve]

// Generator returns the base point in affine coordinates.
func Generator() Affine {
	return te.Generator[FpParams, Curve]()
}
