// Package te implements twisted Edwards curves ax² + y² = 1 + dx²y² in
// affine and extended coordinates, generic over the base field and the
// curve constants. The extended coordinate system carries the auxiliary
// product T = XY/Z alongside the projective coordinates, following
// Hisil, Wong, Carter and Dawson.
package te

import (
	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/field"
)

// Config describes a twisted Edwards curve over the base field B.
// Implementations are zero-size struct types returning constants.
type Config[B field.Params] interface {
	// CoeffA returns the curve coefficient a.
	CoeffA() field.Element[B]
	// CoeffD returns the curve coefficient d.
	CoeffD() field.Element[B]
	// Generator returns the affine coordinates of the subgroup
	// generator.
	Generator() (x, y field.Element[B])
	// Order returns the prime order of the generator's subgroup.
	Order() arith.U256
	// Cofactor returns the curve cofactor.
	Cofactor() uint64
}

// Affine is a point in affine coordinates. The group identity is
// (0, 1).
type Affine[B field.Params, C Config[B]] struct {
	X, Y field.Element[B]
}

// Extended is a point in extended coordinates (X : Y : T : Z) with
// x = X/Z, y = Y/Z and T = XY/Z. The identity is (0 : 1 : 0 : 1).
type Extended[B field.Params, C Config[B]] struct {
	X, Y, T, Z field.Element[B]
}

// Generator returns the subgroup generator in affine coordinates.
func Generator[B field.Params, C Config[B]]() Affine[B, C] {
	var c C
	x, y := c.Generator()
	return Affine[B, C]{X: x, Y: y}
}

// SetIdentity sets p to the group identity and returns p.
func (p *Affine[B, C]) SetIdentity() *Affine[B, C] {
	p.X.SetZero()
	p.Y.SetOne()
	return p
}

// IsIdentity reports whether p is the group identity.
func (p *Affine[B, C]) IsIdentity() bool {
	return p.X.IsZero() && p.Y.IsOne()
}

// Equal reports whether p and q are the same point.
func (p *Affine[B, C]) Equal(q *Affine[B, C]) bool {
	return p.X.Equal(&q.X) && p.Y.Equal(&q.Y)
}

// Neg sets p = -q and returns p. Twisted Edwards negation flips the
// x coordinate.
func (p *Affine[B, C]) Neg(q *Affine[B, C]) *Affine[B, C] {
	p.X.Neg(&q.X)
	p.Y.Set(&q.Y)
	return p
}

// IsOnCurve reports whether p satisfies ax² + y² = 1 + dx²y².
func (p *Affine[B, C]) IsOnCurve() bool {
	var c C
	a := c.CoeffA()
	d := c.CoeffD()

	var xx, yy, lhs, rhs field.Element[B]
	xx.Square(&p.X)
	yy.Square(&p.Y)
	lhs.Mul(&a, &xx).AddAssign(&yy)
	one := field.One[B]()
	rhs.Mul(&d, &xx).MulAssign(&yy).AddAssign(&one)
	return lhs.Equal(&rhs)
}

// FromExtended sets p to the affine form of q and returns p.
func (p *Affine[B, C]) FromExtended(q *Extended[B, C]) *Affine[B, C] {
	var zInv field.Element[B]
	zInv.Inverse(&q.Z)
	p.X.Mul(&q.X, &zInv)
	p.Y.Mul(&q.Y, &zInv)
	return p
}

// ScalarMul sets p = s*q using extended arithmetic and returns p.
func (p *Affine[B, C]) ScalarMul(q *Affine[B, C], s *arith.U256) *Affine[B, C] {
	var acc, base Extended[B, C]
	base.FromAffine(q)
	acc.ScalarMul(&base, s)
	return p.FromExtended(&acc)
}

// ScalarMulBase sets p = s*G for the subgroup generator G and
// returns p.
func (p *Affine[B, C]) ScalarMulBase(s *arith.U256) *Affine[B, C] {
	g := Generator[B, C]()
	return p.ScalarMul(&g, s)
}

// Set sets p to q and returns p.
func (p *Extended[B, C]) Set(q *Extended[B, C]) *Extended[B, C] {
	p.X.Set(&q.X)
	p.Y.Set(&q.Y)
	p.T.Set(&q.T)
	p.Z.Set(&q.Z)
	return p
}

// SetIdentity sets p to the group identity and returns p.
func (p *Extended[B, C]) SetIdentity() *Extended[B, C] {
	p.X.SetZero()
	p.Y.SetOne()
	p.T.SetZero()
	p.Z.SetOne()
	return p
}

// IsIdentity reports whether p is the group identity.
func (p *Extended[B, C]) IsIdentity() bool {
	// X = 0 and Y = Z
	return p.X.IsZero() && p.Y.Equal(&p.Z)
}

// FromAffine sets p to the extended form of a and returns p.
func (p *Extended[B, C]) FromAffine(a *Affine[B, C]) *Extended[B, C] {
	p.X.Set(&a.X)
	p.Y.Set(&a.Y)
	p.T.Mul(&a.X, &a.Y)
	p.Z.SetOne()
	return p
}

// Equal reports whether p and q are the same point, comparing cross
// products to avoid inversions.
func (p *Extended[B, C]) Equal(q *Extended[B, C]) bool {
	var l, r field.Element[B]
	l.Mul(&p.X, &q.Z)
	r.Mul(&q.X, &p.Z)
	if !l.Equal(&r) {
		return false
	}
	l.Mul(&p.Y, &q.Z)
	r.Mul(&q.Y, &p.Z)
	return l.Equal(&r)
}

// Neg sets p = -q and returns p.
func (p *Extended[B, C]) Neg(q *Extended[B, C]) *Extended[B, C] {
	p.X.Neg(&q.X)
	p.Y.Set(&q.Y)
	p.T.Neg(&q.T)
	p.Z.Set(&q.Z)
	return p
}

// AddAssign sets p = p + q and returns p. The formula is unified: it
// is also correct when p = q.
// https://hyperelliptic.org/EFD/g1p/auto-twisted-extended.html#addition-add-2008-hwcd
func (p *Extended[B, C]) AddAssign(q *Extended[B, C]) *Extended[B, C] {
	var c C
	coeffA := c.CoeffA()
	coeffD := c.CoeffD()

	var A, Bb, Cc, D, E, F, G, H field.Element[B]
	A.Mul(&p.X, &q.X)
	Bb.Mul(&p.Y, &q.Y)
	Cc.Mul(&coeffD, &p.T).MulAssign(&q.T)
	D.Mul(&p.Z, &q.Z)

	E.Add(&p.X, &p.Y)
	var t field.Element[B]
	t.Add(&q.X, &q.Y)
	E.MulAssign(&t).SubAssign(&A).SubAssign(&Bb)

	F.Sub(&D, &Cc)
	G.Add(&D, &Cc)
	H.Mul(&coeffA, &A)
	H.Sub(&Bb, &H)

	p.X.Mul(&E, &F)
	p.Y.Mul(&G, &H)
	p.T.Mul(&E, &H)
	p.Z.Mul(&F, &G)
	return p
}

// AddMixed sets p = p + a for an affine a and returns p.
// https://hyperelliptic.org/EFD/g1p/auto-twisted-extended.html#addition-madd-2008-hwcd
func (p *Extended[B, C]) AddMixed(a *Affine[B, C]) *Extended[B, C] {
	var c C
	coeffA := c.CoeffA()
	coeffD := c.CoeffD()

	var A, Bb, Cc, E, F, G, H field.Element[B]
	A.Mul(&p.X, &a.X)
	Bb.Mul(&p.Y, &a.Y)
	var t field.Element[B]
	t.Mul(&a.X, &a.Y)
	Cc.Mul(&coeffD, &p.T).MulAssign(&t)

	E.Add(&p.X, &p.Y)
	t.Add(&a.X, &a.Y)
	E.MulAssign(&t).SubAssign(&A).SubAssign(&Bb)

	F.Sub(&p.Z, &Cc)
	G.Add(&p.Z, &Cc)
	H.Mul(&coeffA, &A)
	H.Sub(&Bb, &H)

	p.X.Mul(&E, &F)
	p.Y.Mul(&G, &H)
	p.T.Mul(&E, &H)
	p.Z.Mul(&F, &G)
	return p
}

// DoubleAssign doubles p in place and returns p.
// https://hyperelliptic.org/EFD/g1p/auto-twisted-extended.html#doubling-dbl-2008-hwcd
func (p *Extended[B, C]) DoubleAssign() *Extended[B, C] {
	var c C
	coeffA := c.CoeffA()

	var A, Bb, Cc, D, E, F, G, H field.Element[B]
	A.Square(&p.X)
	Bb.Square(&p.Y)
	Cc.Square(&p.Z).Double(&Cc)
	D.Mul(&coeffA, &A)

	E.Add(&p.X, &p.Y).Square(&E).SubAssign(&A).SubAssign(&Bb)
	G.Add(&D, &Bb)
	F.Sub(&G, &Cc)
	H.Sub(&D, &Bb)

	p.X.Mul(&E, &F)
	p.Y.Mul(&G, &H)
	p.T.Mul(&E, &H)
	p.Z.Mul(&F, &G)
	return p
}

// ScalarMul sets p = s*q by double-and-add over the bits of s and
// returns p. Execution time depends on s; callers needing secrecy of
// the scalar must not use this.
func (p *Extended[B, C]) ScalarMul(q *Extended[B, C], s *arith.U256) *Extended[B, C] {
	var acc Extended[B, C]
	acc.SetIdentity()
	base := *q
	for _, bit := range s.BitsBE() {
		acc.DoubleAssign()
		if bit {
			acc.AddAssign(&base)
		}
	}
	return p.Set(&acc)
}
