package arith

import "math/bits"

// U512Limbs is the number of 64-bit limbs in a U512.
const U512Limbs = 8

// U512Bytes is the byte size of a U512.
const U512Bytes = 64

// U512 is a 512-bit unsigned integer stored as eight 64-bit limbs in
// little-endian order. It exists to hold widening products and wide
// hash outputs before reduction; it is not a general-purpose integer.
type U512 [U512Limbs]uint64

// SetZero sets z to 0 and returns z.
func (z *U512) SetZero() *U512 {
	for i := range z {
		z[i] = 0
	}
	return z
}

// IsZero reports whether z is 0.
func (z *U512) IsZero() bool {
	var acc uint64
	for _, w := range z {
		acc |= w
	}
	return acc == 0
}

// SetBytesLE sets z from a little-endian byte slice of at most
// 64 bytes.
func (z *U512) SetBytesLE(b []byte) (*U512, error) {
	if len(b) > U512Bytes {
		return nil, ErrValueTooLarge
	}
	var buf [U512Bytes]byte
	copy(buf[:], b)
	for i := 0; i < U512Limbs; i++ {
		z[i] = leUint64(buf[8*i : 8*i+8])
	}
	return z, nil
}

// BitLen returns the minimal number of bits needed to represent z.
func (z *U512) BitLen() int {
	for i := U512Limbs - 1; i >= 0; i-- {
		if z[i] != 0 {
			return 64*i + bits.Len64(z[i])
		}
	}
	return 0
}

// Bit returns bit i of z, counting from the least significant bit.
func (z *U512) Bit(i uint) uint64 {
	if i >= 512 {
		return 0
	}
	return z[i/64] >> (i % 64) & 1
}

// ModU256 returns z mod m using binary shift-subtract reduction.
// m must be non-zero.
func (z *U512) ModU256(m *U256) U256 {
	var r U256
	for i := z.BitLen() - 1; i >= 0; i-- {
		over := r.Mul2()
		r[0] |= z.Bit(uint(i))
		if over == 1 || r.Cmp(m) >= 0 {
			r.Sub(&r, m)
		}
	}
	return r
}
