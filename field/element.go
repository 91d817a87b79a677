package field

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/consensys/contractlib/arith"
)

// ErrNotCanonical is returned when decoding an integer that is not
// strictly below the field modulus.
var ErrNotCanonical = errors.New("field: value is not below the modulus")

// Element is a prime field element in Montgomery form. The zero value
// is the field's zero. The type parameter selects the field; elements
// of different fields are distinct Go types.
type Element[T Params] arith.U256

// Zero returns the additive identity of the field.
func Zero[T Params]() Element[T] {
	return Element[T]{}
}

// One returns the multiplicative identity of the field.
func One[T Params]() Element[T] {
	var fp T
	return Element[T](fp.R())
}

// NewElement returns v as a field element. The modulus is assumed to
// exceed 2^64, which holds for every field in this library.
func NewElement[T Params](v uint64) Element[T] {
	var z Element[T]
	z.SetUint64(v)
	return z
}

// Set sets z to x and returns z.
func (z *Element[T]) Set(x *Element[T]) *Element[T] {
	*z = *x
	return z
}

// SetZero sets z to 0 and returns z.
func (z *Element[T]) SetZero() *Element[T] {
	*z = Element[T]{}
	return z
}

// SetOne sets z to 1 and returns z.
func (z *Element[T]) SetOne() *Element[T] {
	var fp T
	*z = Element[T](fp.R())
	return z
}

// SetUint64 sets z to v and returns z.
func (z *Element[T]) SetUint64(v uint64) *Element[T] {
	u := arith.NewU256(v)
	el, err := z.SetU256(&u)
	if err != nil {
		// modulus smaller than 2^64, unsupported by every Params in
		// this library
		panic(err)
	}
	return el
}

// SetU256 interprets v as a canonical integer and sets z to it,
// converting into Montgomery form. It returns ErrNotCanonical when
// v is not strictly below the modulus.
func (z *Element[T]) SetU256(v *arith.U256) (*Element[T], error) {
	var fp T
	mod := fp.Modulus()
	if v.Cmp(&mod) >= 0 {
		return nil, ErrNotCanonical
	}
	*z = Element[T](*v)
	r2 := Element[T](fp.R2())
	return z.Mul(z, &r2), nil
}

// SetBigInt sets z to v mod p and returns z. Unlike SetU256 it accepts
// any integer, including negative ones.
func (z *Element[T]) SetBigInt(v *big.Int) *Element[T] {
	var fp T
	mod := fp.Modulus()
	r := new(big.Int).Mod(v, mod.BigInt())
	var u arith.U256
	if _, err := u.SetBigInt(r); err != nil {
		panic(err) // cannot happen, r is reduced
	}
	el, err := z.SetU256(&u)
	if err != nil {
		panic(err)
	}
	return el
}

// SetBytesBE sets z from the canonical big-endian encoding of an
// integer below the modulus.
func (z *Element[T]) SetBytesBE(b []byte) (*Element[T], error) {
	var u arith.U256
	if _, err := u.SetBytesBE(b); err != nil {
		return nil, err
	}
	return z.SetU256(&u)
}

// SetBytesLE sets z from the canonical little-endian encoding of an
// integer below the modulus.
func (z *Element[T]) SetBytesLE(b []byte) (*Element[T], error) {
	var u arith.U256
	if _, err := u.SetBytesLE(b); err != nil {
		return nil, err
	}
	return z.SetU256(&u)
}

// U256 returns z as a canonical integer, out of Montgomery form.
func (z *Element[T]) U256() arith.U256 {
	var fp T
	mod := fp.Modulus()
	inv := fp.Inv()

	t := arith.U256(*z)
	for i := 0; i < arith.U256Limbs; i++ {
		m := t[0] * inv
		hi, lo := bits.Mul64(m, mod[0])
		_, cc := bits.Add64(lo, t[0], 0)
		c := hi + cc
		for j := 1; j < arith.U256Limbs; j++ {
			hi, lo = bits.Mul64(m, mod[j])
			lo, cc = bits.Add64(lo, t[j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			t[j-1] = lo
			c = hi
		}
		t[arith.U256Limbs-1] = c
	}
	if t.Cmp(&mod) >= 0 {
		t.Sub(&t, &mod)
	}
	return t
}

// BytesBE returns the canonical big-endian encoding of z.
func (z *Element[T]) BytesBE() [32]byte {
	u := z.U256()
	return u.BytesBE()
}

// BytesLE returns the canonical little-endian encoding of z.
func (z *Element[T]) BytesLE() [32]byte {
	u := z.U256()
	return u.BytesLE()
}

// BigInt returns z as a big.Int.
func (z *Element[T]) BigInt() *big.Int {
	u := z.U256()
	return u.BigInt()
}

// String returns the decimal representation of z.
func (z Element[T]) String() string {
	return z.BigInt().String()
}

// IsZero reports whether z is 0.
func (z *Element[T]) IsZero() bool {
	return z[0]|z[1]|z[2]|z[3] == 0
}

// IsOne reports whether z is 1.
func (z *Element[T]) IsOne() bool {
	var fp T
	r := fp.R()
	return arith.U256(*z) == r
}

// Equal reports whether z == x.
func (z *Element[T]) Equal(x *Element[T]) bool {
	return *z == *x
}

// Add sets z = x + y and returns z.
func (z *Element[T]) Add(x, y *Element[T]) *Element[T] {
	var fp T
	mod := fp.Modulus()
	zu := (*arith.U256)(z)
	carry := zu.Add((*arith.U256)(x), (*arith.U256)(y))
	if carry == 1 || zu.Cmp(&mod) >= 0 {
		zu.Sub(zu, &mod)
	}
	return z
}

// Double sets z = 2x and returns z.
func (z *Element[T]) Double(x *Element[T]) *Element[T] {
	return z.Add(x, x)
}

// Sub sets z = x - y and returns z.
func (z *Element[T]) Sub(x, y *Element[T]) *Element[T] {
	var fp T
	mod := fp.Modulus()
	zu := (*arith.U256)(z)
	borrow := zu.Sub((*arith.U256)(x), (*arith.U256)(y))
	if borrow == 1 {
		zu.Add(zu, &mod)
	}
	return z
}

// Neg sets z = -x and returns z.
func (z *Element[T]) Neg(x *Element[T]) *Element[T] {
	if x.IsZero() {
		return z.SetZero()
	}
	var fp T
	mod := fp.Modulus()
	zu := (*arith.U256)(z)
	zu.Sub(&mod, (*arith.U256)(x))
	return z
}

// Mul sets z = x * y with CIOS Montgomery multiplication and
// returns z.
func (z *Element[T]) Mul(x, y *Element[T]) *Element[T] {
	var fp T
	mod := fp.Modulus()
	inv := fp.Inv()

	var t [arith.U256Limbs]uint64
	var tH, tX uint64 // the two words above t

	for i := 0; i < arith.U256Limbs; i++ {
		// t += x * y[i]
		var c uint64
		for j := 0; j < arith.U256Limbs; j++ {
			hi, lo := bits.Mul64(x[j], y[i])
			var cc uint64
			lo, cc = bits.Add64(lo, t[j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			t[j] = lo
			c = hi
		}
		var cc uint64
		tH, cc = bits.Add64(tH, c, 0)
		tX = cc

		// t = (t + m*mod) >> 64
		m := t[0] * inv
		hi, lo := bits.Mul64(m, mod[0])
		_, cc = bits.Add64(lo, t[0], 0)
		c = hi + cc
		for j := 1; j < arith.U256Limbs; j++ {
			hi, lo = bits.Mul64(m, mod[j])
			lo, cc = bits.Add64(lo, t[j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			t[j-1] = lo
			c = hi
		}
		t[arith.U256Limbs-1], cc = bits.Add64(tH, c, 0)
		tH = tX + cc
		tX = 0
	}

	res := arith.U256(t)
	if tH == 1 || res.Cmp(&mod) >= 0 {
		res.Sub(&res, &mod)
	}
	*z = Element[T](res)
	return z
}

// Square sets z = x * x and returns z.
func (z *Element[T]) Square(x *Element[T]) *Element[T] {
	return z.Mul(x, x)
}

// SubAssign sets z = z - x and returns z.
func (z *Element[T]) SubAssign(x *Element[T]) *Element[T] {
	return z.Sub(z, x)
}

// AddAssign sets z = z + x and returns z.
func (z *Element[T]) AddAssign(x *Element[T]) *Element[T] {
	return z.Add(z, x)
}

// MulAssign sets z = z * x and returns z.
func (z *Element[T]) MulAssign(x *Element[T]) *Element[T] {
	return z.Mul(z, x)
}

// Inverse sets z = 1/x when x is non-zero and returns z. When x is
// zero, z is set to zero; callers that must distinguish check IsZero.
//
// Binary extended Euclid, algorithm 16 of Guajardo, Kumar, Paar and
// Pelzl, "Efficient Software-Implementation of Finite Fields with
// Applications to Cryptography".
func (z *Element[T]) Inverse(x *Element[T]) *Element[T] {
	if x.IsZero() {
		return z.SetZero()
	}

	var fp T
	mod := fp.Modulus()
	spareBit := mod[arith.U256Limbs-1]>>63 == 0

	one := arith.NewU256(1)
	u := arith.U256(*x)
	v := mod
	b := Element[T](fp.R2())
	var c Element[T]

	halveRaw := func(e *Element[T]) {
		eu := (*arith.U256)(e)
		if !eu.IsOdd() {
			eu.Div2()
			return
		}
		carry := eu.Add(eu, &mod)
		eu.Div2()
		if !spareBit && carry == 1 {
			eu[arith.U256Limbs-1] |= 1 << 63
		}
	}

	for !u.Equal(&one) && !v.Equal(&one) {
		for !u.IsOdd() {
			u.Div2()
			halveRaw(&b)
		}
		for !v.IsOdd() {
			v.Div2()
			halveRaw(&c)
		}
		if v.Cmp(&u) < 0 {
			u.Sub(&u, &v)
			b.SubAssign(&c)
		} else {
			v.Sub(&v, &u)
			c.SubAssign(&b)
		}
	}

	if u.Equal(&one) {
		*z = b
	} else {
		*z = c
	}
	return z
}

// Exp sets z = x^e and returns z. The exponent is a plain integer, not
// a field element.
func (z *Element[T]) Exp(x *Element[T], e *arith.U256) *Element[T] {
	res := One[T]()
	base := *x
	for _, bit := range e.BitsBE() {
		res.Square(&res)
		if bit {
			res.Mul(&res, &base)
		}
	}
	*z = res
	return z
}

// Legendre returns the Legendre symbol of z: 1 when z is a non-zero
// square, -1 when it is a non-square and 0 when z is zero.
func (z *Element[T]) Legendre() int {
	if z.IsZero() {
		return 0
	}
	var fp T
	e := fp.Modulus()
	one := arith.NewU256(1)
	e.Sub(&e, &one)
	e.Div2()
	var r Element[T]
	r.Exp(z, &e)
	if r.IsOne() {
		return 1
	}
	return -1
}

// Sqrt sets z to a square root of x and returns z, or returns nil
// when x is not a square. Which of the two roots is produced is
// unspecified; callers select by parity of the canonical form.
//
// Tonelli-Shanks, with the two-adic factorization of p-1 derived at
// call time and the field generator as the required non-residue.
func (z *Element[T]) Sqrt(x *Element[T]) *Element[T] {
	if x.IsZero() {
		return z.SetZero()
	}

	var fp T
	q := fp.Modulus()
	one := arith.NewU256(1)
	q.Sub(&q, &one) // q = p-1 = t * 2^s with t odd
	s := 0
	for !q.IsOdd() {
		q.Div2()
		s++
	}

	g := Element[T](fp.Generator())
	var c Element[T]
	c.Exp(&g, &q) // generator^t, order 2^s

	tp1d2 := q
	tp1d2.Add(&tp1d2, &one)
	tp1d2.Div2()

	var r, b Element[T]
	r.Exp(x, &tp1d2) // x^((t+1)/2)
	b.Exp(x, &q)     // x^t

	for !b.IsOne() {
		// order of b as a power of two
		m := 0
		t := b
		for !t.IsOne() {
			t.Square(&t)
			m++
			if m == s {
				return nil // not a square
			}
		}

		var gPow Element[T]
		gPow.Set(&c)
		for i := 0; i < s-m-1; i++ {
			gPow.Square(&gPow)
		}
		r.MulAssign(&gPow)
		c.Square(&gPow)
		b.MulAssign(&c)
		s = m
	}

	return z.Set(&r)
}
