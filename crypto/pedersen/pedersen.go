// Package pedersen implements the Starknet Pedersen hash over the
// Stark curve. Each input is split into its low 248 bits and high
// 4 bits, each half multiplies one of four fixed base points, and the
// x-coordinate of the shifted sum is the digest.
//
// https://docs.starkware.co/starkex/crypto/pedersen-hash-function.html
package pedersen

import (
	"errors"

	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/curve/starkcurve"
)

// NElementBits is the significant bit budget of a hash input.
const NElementBits = 252

// lowPartBits is the size of the low split of an input.
const lowPartBits = 248

// ErrElementTooLarge is returned when a hash input is not below the
// Stark field prime.
var ErrElementTooLarge = errors.New("pedersen: input exceeds the field prime")

// constant points, Montgomery coordinates in the Stark base field

var shiftPoint = starkcurve.Affine{
	X: starkcurve.Fp{0x1ad69b41a9ba0b3a, 0x6b69f758cd49de91, 0x16c727d5f24b5dc1, 0x0463d1e72d2ebf34},
	Y: starkcurve.Fp{0xc5c9927f66d85eeb, 0xaeae324054290152, 0x4298f85b038ef6a8, 0x01211aac6ce572de},
}

var hashPoints = [4]starkcurve.Affine{
	{
		X: starkcurve.Fp{0x31fe19ef7e807b3f, 0xbeeff4924de3c528, 0x0732d950000368de, 0x035aa92df0885fd2},
		Y: starkcurve.Fp{0xba89f77c4afe39a3, 0xb46ecbdd7b9728f2, 0x06055f47bdbf73e0, 0x051e9120dbb3de8a},
	},
	{
		X: starkcurve.Fp{0xe4deec837f33b9ce, 0xabd5caac208ecefb, 0x8b6346c265aee724, 0x0382d64c9967a198},
		Y: starkcurve.Fp{0xc199e12f5f31cb95, 0x23536cf1caa6a1aa, 0x480b2d54a9d5af7c, 0x03f6c38c2c154983},
	},
	{
		X: starkcurve.Fp{0x10b47bd849ffb510, 0xfc851cc69e25ccc0, 0xb341405f34f13ada, 0x04b2a130122949c2},
		Y: starkcurve.Fp{0xab6d4ef844e2ab95, 0xa2f96150f926753c, 0x99e3e86ec55f1fdf, 0x023c3adddadec10c},
	},
	{
		X: starkcurve.Fp{0x0fe61e5bdc6b2c54, 0x9400fdfe2acac5eb, 0x042909de8ae81d91, 0x05e7a88386446f6c},
		Y: starkcurve.Fp{0x71a19251fe20ecd6, 0x3d75f33b9e7f39ac, 0x53bbfa8676fe82d4, 0x04cb4faae6091a14},
	},
}

// Hash returns the two-input Pedersen hash of x and y, both of which
// must be below the Stark field prime.
func Hash(x, y arith.U256) (arith.U256, error) {
	var fp starkcurve.FpParams
	mod := fp.Modulus()
	if x.Cmp(&mod) >= 0 || y.Cmp(&mod) >= 0 {
		return arith.U256{}, ErrElementTooLarge
	}

	var acc starkcurve.Jacobian
	acc.FromAffine(&shiftPoint)
	processElement(&acc, &x, &hashPoints[0], &hashPoints[1])
	processElement(&acc, &y, &hashPoints[2], &hashPoints[3])

	var out starkcurve.Affine
	out.FromJacobian(&acc)
	return out.X.U256(), nil
}

// processElement adds e_low·pLow + e_high·pHigh into acc.
func processElement(acc *starkcurve.Jacobian, e *arith.U256, pLow, pHigh *starkcurve.Affine) {
	low := *e
	low[3] &= (1 << (lowPartBits - 192)) - 1
	high := arith.NewU256(e[3] >> (lowPartBits - 192))

	var tmp starkcurve.Affine
	if !low.IsZero() {
		tmp.ScalarMul(pLow, &low)
		acc.AddMixed(&tmp)
	}
	if !high.IsZero() {
		tmp.ScalarMul(pHigh, &high)
		acc.AddMixed(&tmp)
	}
}

// Hasher is the streaming multi-input mode: state h starts at zero,
// each input folds in as h = Hash(h, e), and Finalize appends the
// input count.
type Hasher struct {
	state arith.U256
	count uint64
}

// New returns a streaming Pedersen hasher.
func New() *Hasher {
	return &Hasher{}
}

// Update folds one input into the state. The input must be below the
// field prime.
func (h *Hasher) Update(e arith.U256) error {
	next, err := Hash(h.state, e)
	if err != nil {
		return err
	}
	h.state = next
	h.count++
	return nil
}

// Finalize returns the digest over everything absorbed, folding in
// the element count as the last input.
func (h *Hasher) Finalize() arith.U256 {
	out, err := Hash(h.state, arith.NewU256(h.count))
	if err != nil {
		panic(err) // count is always far below the prime
	}
	return out
}
