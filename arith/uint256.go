package arith

import (
	"errors"
	"math/big"
	"math/bits"
	"strings"

	"github.com/bits-and-blooms/bitset"
	fasthex "github.com/tmthrgd/go-hex"
)

// U256Limbs is the number of 64-bit limbs in a U256.
const U256Limbs = 4

// U256Bytes is the byte size of a U256.
const U256Bytes = 32

// U256 is a 256-bit unsigned integer stored as four 64-bit limbs in
// little-endian order: z[0] holds the least significant 64 bits.
type U256 [U256Limbs]uint64

// ErrValueTooLarge is returned by decoders when the input encodes a
// value wider than the target integer.
var ErrValueTooLarge = errors.New("arith: value does not fit in 256 bits")

// NewU256 returns a U256 holding v.
func NewU256(v uint64) U256 {
	return U256{v}
}

// SetUint64 sets z to v and returns z.
func (z *U256) SetUint64(v uint64) *U256 {
	z[0], z[1], z[2], z[3] = v, 0, 0, 0
	return z
}

// Set sets z to x and returns z.
func (z *U256) Set(x *U256) *U256 {
	*z = *x
	return z
}

// SetZero sets z to 0 and returns z.
func (z *U256) SetZero() *U256 {
	z[0], z[1], z[2], z[3] = 0, 0, 0, 0
	return z
}

// IsZero reports whether z is 0.
func (z *U256) IsZero() bool {
	return z[0]|z[1]|z[2]|z[3] == 0
}

// IsUint64 reports whether z fits in a single 64-bit word.
func (z *U256) IsUint64() bool {
	return z[1]|z[2]|z[3] == 0
}

// Uint64 returns the low 64 bits of z.
func (z *U256) Uint64() uint64 {
	return z[0]
}

// IsOdd reports whether the least significant bit of z is set.
func (z *U256) IsOdd() bool {
	return z[0]&1 == 1
}

// Equal reports whether z == x.
func (z *U256) Equal(x *U256) bool {
	return z[0] == x[0] && z[1] == x[1] && z[2] == x[2] && z[3] == x[3]
}

// Cmp compares z and x, returning -1 if z < x, 0 if z == x and +1 if
// z > x.
func (z *U256) Cmp(x *U256) int {
	for i := U256Limbs - 1; i >= 0; i-- {
		if z[i] != x[i] {
			if z[i] < x[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Add sets z = x + y and returns the carry out.
func (z *U256) Add(x, y *U256) uint64 {
	var c uint64
	z[0], c = bits.Add64(x[0], y[0], 0)
	z[1], c = bits.Add64(x[1], y[1], c)
	z[2], c = bits.Add64(x[2], y[2], c)
	z[3], c = bits.Add64(x[3], y[3], c)
	return c
}

// Sub sets z = x - y and returns the borrow out.
func (z *U256) Sub(x, y *U256) uint64 {
	var b uint64
	z[0], b = bits.Sub64(x[0], y[0], 0)
	z[1], b = bits.Sub64(x[1], y[1], b)
	z[2], b = bits.Sub64(x[2], y[2], b)
	z[3], b = bits.Sub64(x[3], y[3], b)
	return b
}

// Mul2 sets z = z << 1 and returns the bit shifted out.
func (z *U256) Mul2() uint64 {
	out := z[3] >> 63
	z[3] = z[3]<<1 | z[2]>>63
	z[2] = z[2]<<1 | z[1]>>63
	z[1] = z[1]<<1 | z[0]>>63
	z[0] <<= 1
	return out
}

// Div2 sets z = z >> 1, discarding the bit shifted out.
func (z *U256) Div2() {
	z[0] = z[0]>>1 | z[1]<<63
	z[1] = z[1]>>1 | z[2]<<63
	z[2] = z[2]>>1 | z[3]<<63
	z[3] >>= 1
}

// Bit returns bit i of z, counting from the least significant bit.
// Bits at or beyond position 256 are 0.
func (z *U256) Bit(i uint) uint64 {
	if i >= 256 {
		return 0
	}
	return z[i/64] >> (i % 64) & 1
}

// BitLen returns the minimal number of bits needed to represent z.
// The bit length of 0 is 0.
func (z *U256) BitLen() int {
	for i := U256Limbs - 1; i >= 0; i-- {
		if z[i] != 0 {
			return 64*i + bits.Len64(z[i])
		}
	}
	return 0
}

// BitsBE returns the bits of z from most to least significant with
// leading zeros trimmed. The result is empty when z is 0.
func (z *U256) BitsBE() []bool {
	bs := bitset.From(z[:])
	n := z.BitLen()
	out := make([]bool, n)
	for i := range out {
		out[i] = bs.Test(uint(n - 1 - i))
	}
	return out
}

// MulWide returns the full 512-bit product x * y.
func MulWide(x, y *U256) U512 {
	var p U512
	var c uint64
	for i := 0; i < U256Limbs; i++ {
		c = 0
		for j := 0; j < U256Limbs; j++ {
			hi, lo := bits.Mul64(x[i], y[j])
			var cc uint64
			lo, cc = bits.Add64(lo, p[i+j], 0)
			hi += cc
			lo, cc = bits.Add64(lo, c, 0)
			hi += cc
			p[i+j] = lo
			c = hi
		}
		p[i+U256Limbs] = c
	}
	return p
}

// SetBytesBE sets z from a big-endian byte slice of at most 32 bytes.
func (z *U256) SetBytesBE(b []byte) (*U256, error) {
	if len(b) > U256Bytes {
		return nil, ErrValueTooLarge
	}
	var buf [U256Bytes]byte
	copy(buf[U256Bytes-len(b):], b)
	for i := 0; i < U256Limbs; i++ {
		z[U256Limbs-1-i] = beUint64(buf[8*i : 8*i+8])
	}
	return z, nil
}

// SetBytesLE sets z from a little-endian byte slice of at most
// 32 bytes.
func (z *U256) SetBytesLE(b []byte) (*U256, error) {
	if len(b) > U256Bytes {
		return nil, ErrValueTooLarge
	}
	var buf [U256Bytes]byte
	copy(buf[:], b)
	for i := 0; i < U256Limbs; i++ {
		z[i] = leUint64(buf[8*i : 8*i+8])
	}
	return z, nil
}

// BytesBE returns the big-endian 32-byte encoding of z.
func (z *U256) BytesBE() [U256Bytes]byte {
	var out [U256Bytes]byte
	for i := 0; i < U256Limbs; i++ {
		putBEUint64(out[8*i:8*i+8], z[U256Limbs-1-i])
	}
	return out
}

// BytesLE returns the little-endian 32-byte encoding of z.
func (z *U256) BytesLE() [U256Bytes]byte {
	var out [U256Bytes]byte
	for i := 0; i < U256Limbs; i++ {
		putLEUint64(out[8*i:8*i+8], z[i])
	}
	return out
}

// SetHex sets z from a hex string, with or without a 0x prefix.
// Odd-length strings are padded with a leading zero nibble.
func (z *U256) SetHex(s string) (*U256, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := fasthex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return z.SetBytesBE(b)
}

// Hex returns the 0x-prefixed, zero-padded hex encoding of z.
func (z *U256) Hex() string {
	b := z.BytesBE()
	return "0x" + fasthex.EncodeToString(b[:])
}

// String implements fmt.Stringer.
func (z U256) String() string {
	return z.Hex()
}

// SetBigInt sets z from v, which must be non-negative and fit in
// 256 bits.
func (z *U256) SetBigInt(v *big.Int) (*U256, error) {
	if v.Sign() < 0 || v.BitLen() > 256 {
		return nil, ErrValueTooLarge
	}
	words := v.Bits()
	z.SetZero()
	for i, w := range words {
		z[i] = uint64(w)
	}
	return z, nil
}

// BigInt returns z as a big.Int.
func (z *U256) BigInt() *big.Int {
	b := z.BytesBE()
	return new(big.Int).SetBytes(b[:])
}

func beUint64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[7]) | uint64(b[6])<<8 | uint64(b[5])<<16 | uint64(b[4])<<24 |
		uint64(b[3])<<32 | uint64(b[2])<<40 | uint64(b[1])<<48 | uint64(b[0])<<56
}

func leUint64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func putBEUint64(b []byte, v uint64) {
	_ = b[7]
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

func putLEUint64(b []byte, v uint64) {
	_ = b[7]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}
