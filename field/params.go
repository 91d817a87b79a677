package field

import "github.com/consensys/contractlib/arith"

// Params describes a prime field with an odd 256-bit-or-smaller
// modulus. Implementations are zero-size struct types whose methods
// return compile-time constants; an Element instantiated with a Params
// type carries no per-value field description.
type Params interface {
	// Modulus returns the field modulus p.
	Modulus() arith.U256
	// R returns 2^256 mod p, the Montgomery form of 1.
	R() arith.U256
	// R2 returns 2^512 mod p, used to convert into Montgomery form.
	R2() arith.U256
	// Inv returns -p^(-1) mod 2^64.
	Inv() uint64
	// Generator returns a multiplicative generator of the field in
	// Montgomery form. It doubles as the quadratic non-residue for
	// square root extraction.
	Generator() arith.U256
}
