package te

import (
	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/field"
)

// NormalizeBatch converts a slice of extended points to affine with a
// single field inversion, using Montgomery's batch inversion trick.
// Z coordinates are non-zero for every representable Edwards point.
func NormalizeBatch[B field.Params, C Config[B]](points []Extended[B, C]) []Affine[B, C] {
	out := make([]Affine[B, C], len(points))
	if len(points) == 0 {
		return out
	}

	prefix := make([]field.Element[B], len(points))
	acc := field.One[B]()
	for i := range points {
		prefix[i] = acc
		acc.MulAssign(&points[i].Z)
	}

	var inv field.Element[B]
	inv.Inverse(&acc)

	for i := len(points) - 1; i >= 0; i-- {
		var zInv field.Element[B]
		zInv.Mul(&inv, &prefix[i])
		inv.MulAssign(&points[i].Z)
		out[i].X.Mul(&points[i].X, &zInv)
		out[i].Y.Mul(&points[i].Y, &zInv)
	}
	return out
}

// IsInPrimeOrderSubgroup reports whether p is in the prime order
// subgroup, rejecting small torsion components.
func (p *Affine[B, C]) IsInPrimeOrderSubgroup() bool {
	if !p.IsOnCurve() {
		return false
	}
	var c C
	if c.Cofactor() == 1 {
		return true
	}
	order := c.Order()
	var q Affine[B, C]
	q.ScalarMul(p, &order)
	return q.IsIdentity()
}

// ClearCofactor sets p to the cofactor multiple of q, mapping any
// curve point into the prime order subgroup, and returns p.
func (p *Affine[B, C]) ClearCofactor(q *Affine[B, C]) *Affine[B, C] {
	var c C
	h := arith.NewU256(c.Cofactor())
	return p.ScalarMul(q, &h)
}
