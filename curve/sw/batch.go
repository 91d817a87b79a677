package sw

import (
	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/debug"
	"github.com/consensys/contractlib/field"
)

// NormalizeBatch converts a slice of Jacobian points to affine with a
// single field inversion, using Montgomery's batch inversion trick.
func NormalizeBatch[B field.Params, C Config[B]](points []Jacobian[B, C]) []Affine[B, C] {
	out := make([]Affine[B, C], len(points))
	if len(points) == 0 {
		return out
	}

	// prefix products of the non-zero Z coordinates
	prefix := make([]field.Element[B], len(points))
	acc := field.One[B]()
	for i := range points {
		prefix[i] = acc
		if !points[i].Z.IsZero() {
			acc.MulAssign(&points[i].Z)
		}
	}

	var inv field.Element[B]
	inv.Inverse(&acc)

	for i := len(points) - 1; i >= 0; i-- {
		if points[i].Z.IsZero() {
			out[i].SetInfinity()
			continue
		}
		var zInv, zInv2, zInv3 field.Element[B]
		zInv.Mul(&inv, &prefix[i])
		if debug.Debug {
			var check field.Element[B]
			check.Mul(&zInv, &points[i].Z)
			debug.Assert(check.IsOne(), "batch inversion mismatch")
		}
		inv.MulAssign(&points[i].Z)
		zInv2.Square(&zInv)
		zInv3.Mul(&zInv2, &zInv)
		out[i].X.Mul(&points[i].X, &zInv2)
		out[i].Y.Mul(&points[i].Y, &zInv3)
	}
	return out
}

// IsInPrimeOrderSubgroup reports whether p is in the subgroup of prime
// order generated by the configured generator.
func (p *Affine[B, C]) IsInPrimeOrderSubgroup() bool {
	if p.Infinity {
		return true
	}
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
	return q.IsInfinity()
}

// ClearCofactor sets p to the cofactor multiple of q, mapping any
// curve point into the prime order subgroup, and returns p.
func (p *Affine[B, C]) ClearCofactor(q *Affine[B, C]) *Affine[B, C] {
	var c C
	h := arith.NewU256(c.Cofactor())
	return p.ScalarMul(q, &h)
}
