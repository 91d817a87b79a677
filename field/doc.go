// Package field implements generic prime field arithmetic over 256-bit
// moduli. Elements are kept in Montgomery form; the modulus and its
// Montgomery constants are supplied through a zero-size type parameter
// so that each field gets its own Go type and mixing elements of
// different fields is a compile error.
//
// Multiplication uses CIOS Montgomery reduction, inversion the binary
// extended Euclidean algorithm, and square roots Tonelli-Shanks.
package field
