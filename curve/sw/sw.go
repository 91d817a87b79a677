// Package sw implements short Weierstrass curves y² = x³ + ax + b in
// affine and Jacobian coordinates, generic over the base field and the
// curve constants. Curve instances plug in through a zero-size Config
// type so that points on different curves never mix.
package sw

import (
	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/field"
)

// Config describes a short Weierstrass curve over the base field B.
// Implementations are zero-size struct types returning constants.
type Config[B field.Params] interface {
	// CoeffA returns the curve coefficient a.
	CoeffA() field.Element[B]
	// CoeffB returns the curve coefficient b.
	CoeffB() field.Element[B]
	// Generator returns the affine coordinates of the subgroup
	// generator.
	Generator() (x, y field.Element[B])
	// Order returns the prime order of the generator's subgroup.
	Order() arith.U256
	// Cofactor returns the curve cofactor.
	Cofactor() uint64
}

// Affine is a point in affine coordinates. The point at infinity is
// carried as an explicit flag; the zero value is the point at
// infinity.
type Affine[B field.Params, C Config[B]] struct {
	X, Y     field.Element[B]
	Infinity bool
}

// Jacobian is a point in Jacobian projective coordinates, where the
// affine point is (X/Z², Y/Z³). Z = 0 encodes the point at infinity.
type Jacobian[B field.Params, C Config[B]] struct {
	X, Y, Z field.Element[B]
}

// Generator returns the subgroup generator in affine coordinates.
func Generator[B field.Params, C Config[B]]() Affine[B, C] {
	var c C
	x, y := c.Generator()
	return Affine[B, C]{X: x, Y: y}
}

// SetInfinity sets p to the point at infinity and returns p.
func (p *Affine[B, C]) SetInfinity() *Affine[B, C] {
	p.X.SetZero()
	p.Y.SetZero()
	p.Infinity = true
	return p
}

// IsInfinity reports whether p is the point at infinity.
func (p *Affine[B, C]) IsInfinity() bool {
	return p.Infinity
}

// Equal reports whether p and q are the same point.
func (p *Affine[B, C]) Equal(q *Affine[B, C]) bool {
	if p.Infinity || q.Infinity {
		return p.Infinity == q.Infinity
	}
	return p.X.Equal(&q.X) && p.Y.Equal(&q.Y)
}

// Neg sets p = -q and returns p.
func (p *Affine[B, C]) Neg(q *Affine[B, C]) *Affine[B, C] {
	p.X.Set(&q.X)
	p.Y.Neg(&q.Y)
	p.Infinity = q.Infinity
	return p
}

// IsOnCurve reports whether p satisfies y² = x³ + ax + b. The point at
// infinity is on the curve.
func (p *Affine[B, C]) IsOnCurve() bool {
	if p.Infinity {
		return true
	}
	var c C
	a := c.CoeffA()
	b := c.CoeffB()

	var lhs, rhs, ax field.Element[B]
	lhs.Square(&p.Y)
	rhs.Square(&p.X).MulAssign(&p.X)
	ax.Mul(&a, &p.X)
	rhs.AddAssign(&ax).AddAssign(&b)
	return lhs.Equal(&rhs)
}

// FromJacobian sets p to the affine form of q and returns p.
func (p *Affine[B, C]) FromJacobian(q *Jacobian[B, C]) *Affine[B, C] {
	if q.Z.IsZero() {
		return p.SetInfinity()
	}
	var zInv, zInv2, zInv3 field.Element[B]
	zInv.Inverse(&q.Z)
	zInv2.Square(&zInv)
	zInv3.Mul(&zInv2, &zInv)
	p.X.Mul(&q.X, &zInv2)
	p.Y.Mul(&q.Y, &zInv3)
	p.Infinity = false
	return p
}

// ScalarMul sets p = s*q using Jacobian arithmetic and returns p.
func (p *Affine[B, C]) ScalarMul(q *Affine[B, C], s *arith.U256) *Affine[B, C] {
	var acc, base Jacobian[B, C]
	base.FromAffine(q)
	acc.ScalarMul(&base, s)
	return p.FromJacobian(&acc)
}

// ScalarMulBase sets p = s*G for the subgroup generator G and
// returns p.
func (p *Affine[B, C]) ScalarMulBase(s *arith.U256) *Affine[B, C] {
	g := Generator[B, C]()
	return p.ScalarMul(&g, s)
}

// Set sets p to q and returns p.
func (p *Jacobian[B, C]) Set(q *Jacobian[B, C]) *Jacobian[B, C] {
	p.X.Set(&q.X)
	p.Y.Set(&q.Y)
	p.Z.Set(&q.Z)
	return p
}

// SetInfinity sets p to the point at infinity and returns p.
func (p *Jacobian[B, C]) SetInfinity() *Jacobian[B, C] {
	p.X.SetOne()
	p.Y.SetOne()
	p.Z.SetZero()
	return p
}

// IsInfinity reports whether p is the point at infinity.
func (p *Jacobian[B, C]) IsInfinity() bool {
	return p.Z.IsZero()
}

// FromAffine sets p to the Jacobian form of a and returns p.
func (p *Jacobian[B, C]) FromAffine(a *Affine[B, C]) *Jacobian[B, C] {
	if a.Infinity {
		return p.SetInfinity()
	}
	p.X.Set(&a.X)
	p.Y.Set(&a.Y)
	p.Z.SetOne()
	return p
}

// Equal reports whether p and q are the same point, comparing through
// affine form.
func (p *Jacobian[B, C]) Equal(q *Jacobian[B, C]) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	var pa, qa Affine[B, C]
	pa.FromJacobian(p)
	qa.FromJacobian(q)
	return pa.Equal(&qa)
}

// Neg sets p = -q and returns p.
func (p *Jacobian[B, C]) Neg(q *Jacobian[B, C]) *Jacobian[B, C] {
	p.Set(q)
	p.Y.Neg(&q.Y)
	return p
}

// AddAssign sets p = p + q and returns p.
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian.html#addition-add-2007-bl
func (p *Jacobian[B, C]) AddAssign(q *Jacobian[B, C]) *Jacobian[B, C] {
	if q.IsInfinity() {
		return p
	}
	if p.IsInfinity() {
		return p.Set(q)
	}

	var Z1Z1, Z2Z2, U1, U2, S1, S2 field.Element[B]
	Z1Z1.Square(&q.Z)
	Z2Z2.Square(&p.Z)
	U1.Mul(&q.X, &Z2Z2)
	U2.Mul(&p.X, &Z1Z1)
	S1.Mul(&q.Y, &p.Z).MulAssign(&Z2Z2)
	S2.Mul(&p.Y, &q.Z).MulAssign(&Z1Z1)

	// same x coordinate
	if U1.Equal(&U2) {
		if S1.Equal(&S2) {
			q2 := *q
			p.Set(&q2)
			return p.DoubleAssign()
		}
		return p.SetInfinity()
	}

	var H, I, J, r, V field.Element[B]
	H.Sub(&U2, &U1)
	I.Double(&H).Square(&I)
	J.Mul(&H, &I)
	r.Sub(&S2, &S1).Double(&r)
	V.Mul(&U1, &I)

	var t field.Element[B]
	p.X.Square(&r).SubAssign(&J).SubAssign(&V).SubAssign(&V)
	p.Y.Sub(&V, &p.X).MulAssign(&r)
	t.Mul(&S1, &J).Double(&t)
	p.Y.SubAssign(&t)
	p.Z.AddAssign(&q.Z).Square(&p.Z).SubAssign(&Z2Z2).SubAssign(&Z1Z1).MulAssign(&H)
	return p
}

// AddMixed sets p = p + a for an affine a and returns p.
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian.html#addition-madd-2007-bl
func (p *Jacobian[B, C]) AddMixed(a *Affine[B, C]) *Jacobian[B, C] {
	if a.Infinity {
		return p
	}
	if p.IsInfinity() {
		return p.FromAffine(a)
	}

	var Z1Z1, U2, S2 field.Element[B]
	Z1Z1.Square(&p.Z)
	U2.Mul(&a.X, &Z1Z1)
	S2.Mul(&a.Y, &p.Z).MulAssign(&Z1Z1)

	if U2.Equal(&p.X) {
		if S2.Equal(&p.Y) {
			return p.DoubleAssign()
		}
		return p.SetInfinity()
	}

	var H, HH, I, J, r, V field.Element[B]
	H.Sub(&U2, &p.X)
	HH.Square(&H)
	I.Double(&HH).Double(&I)
	J.Mul(&H, &I)
	r.Sub(&S2, &p.Y).Double(&r)
	V.Mul(&p.X, &I)

	var t field.Element[B]
	t.Set(&p.Y)
	p.X.Square(&r).SubAssign(&J).SubAssign(&V).SubAssign(&V)
	p.Y.Sub(&V, &p.X).MulAssign(&r)
	var tt field.Element[B]
	tt.Mul(&t, &J).Double(&tt)
	p.Y.SubAssign(&tt)
	p.Z.AddAssign(&H).Square(&p.Z).SubAssign(&Z1Z1).SubAssign(&HH)
	return p
}

// DoubleAssign doubles p in place and returns p.
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian.html#doubling-dbl-2007-bl
func (p *Jacobian[B, C]) DoubleAssign() *Jacobian[B, C] {
	if p.IsInfinity() {
		return p
	}
	var c C
	coeffA := c.CoeffA()

	var XX, YY, YYYY, ZZ, S, M, T field.Element[B]
	XX.Square(&p.X)
	YY.Square(&p.Y)
	YYYY.Square(&YY)
	ZZ.Square(&p.Z)

	S.Add(&p.X, &YY).Square(&S).SubAssign(&XX).SubAssign(&YYYY).Double(&S)
	M.Double(&XX).AddAssign(&XX)
	if !coeffA.IsZero() {
		var aZZ2 field.Element[B]
		aZZ2.Square(&ZZ).MulAssign(&coeffA)
		M.AddAssign(&aZZ2)
	}
	T.Square(&M).SubAssign(&S).SubAssign(&S)

	var t field.Element[B]
	p.Z.AddAssign(&p.Y).Square(&p.Z).SubAssign(&YY).SubAssign(&ZZ)
	p.X.Set(&T)
	p.Y.Sub(&S, &T).MulAssign(&M)
	t.Double(&YYYY).Double(&t).Double(&t)
	p.Y.SubAssign(&t)
	return p
}

// ScalarMul sets p = s*q by double-and-add over the bits of s and
// returns p. Execution time depends on s; callers needing secrecy of
// the scalar must not use this.
func (p *Jacobian[B, C]) ScalarMul(q *Jacobian[B, C], s *arith.U256) *Jacobian[B, C] {
	var acc Jacobian[B, C]
	acc.SetInfinity()
	base := *q
	for _, bit := range s.BitsBE() {
		acc.DoubleAssign()
		if bit {
			acc.AddAssign(&base)
		}
	}
	return p.Set(&acc)
}
