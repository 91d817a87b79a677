package field_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/curve/curve25519"
	"github.com/consensys/contractlib/curve/secp256k1"
	"github.com/consensys/contractlib/curve/starkcurve"
	"github.com/consensys/contractlib/field"
)

func genElement[T field.Params]() gopter.Gen {
	return gen.SliceOfN(arith.U256Limbs, gen.UInt64()).Map(func(ws []uint64) field.Element[T] {
		var u arith.U256
		copy(u[:], ws)
		var e field.Element[T]
		e.SetBigInt(u.BigInt())
		return e
	})
}

func modulus[T field.Params]() *big.Int {
	var fp T
	m := fp.Modulus()
	return m.BigInt()
}

func fieldProperties[T field.Params](t *testing.T) {
	t.Helper()

	p := modulus[T]()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("add and mul match big.Int", prop.ForAll(
		func(a, b field.Element[T]) bool {
			var sum, prod field.Element[T]
			sum.Add(&a, &b)
			prod.Mul(&a, &b)
			wantSum := new(big.Int).Add(a.BigInt(), b.BigInt())
			wantSum.Mod(wantSum, p)
			wantProd := new(big.Int).Mul(a.BigInt(), b.BigInt())
			wantProd.Mod(wantProd, p)
			return sum.BigInt().Cmp(wantSum) == 0 && prod.BigInt().Cmp(wantProd) == 0
		},
		genElement[T](), genElement[T](),
	))

	properties.Property("mul distributes over add", prop.ForAll(
		func(a, b, c field.Element[T]) bool {
			var l, r, t1, t2 field.Element[T]
			l.Add(&b, &c).MulAssign(&a)
			t1.Mul(&a, &b)
			t2.Mul(&a, &c)
			r.Add(&t1, &t2)
			return l.Equal(&r)
		},
		genElement[T](), genElement[T](), genElement[T](),
	))

	properties.Property("sub is inverse of add", prop.ForAll(
		func(a, b field.Element[T]) bool {
			var s field.Element[T]
			s.Add(&a, &b).SubAssign(&b)
			return s.Equal(&a)
		},
		genElement[T](), genElement[T](),
	))

	properties.Property("neg sums to zero", prop.ForAll(
		func(a field.Element[T]) bool {
			var n, s field.Element[T]
			n.Neg(&a)
			s.Add(&a, &n)
			return s.IsZero()
		},
		genElement[T](),
	))

	properties.Property("inverse of non-zero multiplies to one", prop.ForAll(
		func(a field.Element[T]) bool {
			if a.IsZero() {
				return true
			}
			var inv, prod field.Element[T]
			inv.Inverse(&a)
			prod.Mul(&a, &inv)
			return prod.IsOne()
		},
		genElement[T](),
	))

	properties.Property("square of element is a residue", prop.ForAll(
		func(a field.Element[T]) bool {
			if a.IsZero() {
				return true
			}
			var sq field.Element[T]
			sq.Square(&a)
			if sq.Legendre() != 1 {
				return false
			}
			var root field.Element[T]
			if root.Sqrt(&sq) == nil {
				return false
			}
			var check field.Element[T]
			check.Square(&root)
			return check.Equal(&sq)
		},
		genElement[T](),
	))

	properties.Property("exp matches big.Int", prop.ForAll(
		func(a field.Element[T], e uint64) bool {
			var z field.Element[T]
			exp := arith.NewU256(e)
			z.Exp(&a, &exp)
			want := new(big.Int).Exp(a.BigInt(), new(big.Int).SetUint64(e), p)
			return z.BigInt().Cmp(want) == 0
		},
		genElement[T](), gen.UInt64(),
	))

	properties.Property("canonical round-trip", prop.ForAll(
		func(a field.Element[T]) bool {
			u := a.U256()
			var z field.Element[T]
			if _, err := z.SetU256(&u); err != nil {
				return false
			}
			b := a.BytesBE()
			var fromBytes field.Element[T]
			if _, err := fromBytes.SetBytesBE(b[:]); err != nil {
				return false
			}
			return z.Equal(&a) && fromBytes.Equal(&a)
		},
		genElement[T](),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestStarkFpProperties(t *testing.T)   { fieldProperties[starkcurve.FpParams](t) }
func TestStarkFrProperties(t *testing.T)   { fieldProperties[starkcurve.FrParams](t) }
func TestSecpFpProperties(t *testing.T)    { fieldProperties[secp256k1.FpParams](t) }
func TestSecpFrProperties(t *testing.T)    { fieldProperties[secp256k1.FrParams](t) }
func TestC25519FpProperties(t *testing.T)  { fieldProperties[curve25519.FpParams](t) }
func TestC25519FrProperties(t *testing.T)  { fieldProperties[curve25519.FrParams](t) }

func TestElementConstants(t *testing.T) {
	one := field.One[starkcurve.FpParams]()
	assert.True(t, one.IsOne())
	assert.Equal(t, "1", one.String())

	zero := field.Zero[starkcurve.FpParams]()
	assert.True(t, zero.IsZero())

	three := field.NewElement[starkcurve.FpParams](3)
	assert.Equal(t, "3", three.String())
}

func TestElementRejectsNonCanonical(t *testing.T) {
	var fp starkcurve.FpParams
	mod := fp.Modulus()

	var e starkcurve.Fp
	_, err := e.SetU256(&mod)
	assert.ErrorIs(t, err, field.ErrNotCanonical)

	// modulus - 1 is fine
	one := arith.NewU256(1)
	var pm1 arith.U256
	pm1.Sub(&mod, &one)
	_, err = e.SetU256(&pm1)
	require.NoError(t, err)
	assert.Equal(t, pm1, e.U256())
}

func TestElementGeneratorIsNonResidue(t *testing.T) {
	g := starkcurve.Fp(starkcurve.FpParams{}.Generator())
	assert.Equal(t, -1, g.Legendre())

	g25519 := curve25519.Fp(curve25519.FpParams{}.Generator())
	assert.Equal(t, -1, g25519.Legendre())
}

func TestElementInverseOfZero(t *testing.T) {
	var z, x starkcurve.Fp
	z.Inverse(&x)
	assert.True(t, z.IsZero())
}

func TestElementSetBigIntNegative(t *testing.T) {
	var e starkcurve.Fp
	e.SetBigInt(big.NewInt(-1))
	var fp starkcurve.FpParams
	mod := fp.Modulus()
	one := arith.NewU256(1)
	var want arith.U256
	want.Sub(&mod, &one)
	assert.Equal(t, want, e.U256())
}
