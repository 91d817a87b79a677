// Package arith implements fixed-width unsigned integer arithmetic on
// 64-bit limbs. It provides the 256-bit and 512-bit integer types the
// field and curve packages build on, with carry-aware addition and
// subtraction, widening multiplication, shifts, comparisons and
// byte-level codecs.
//
// Limbs are stored in little-endian order. All operations are
// constant-width; values never grow beyond their declared size, and
// carries are returned to the caller instead of being absorbed.
package arith
