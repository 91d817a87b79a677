package host

import (
	"errors"

	"github.com/holiman/uint256"
	fasthex "github.com/tmthrgd/go-hex"
)

// AddressLength is the byte size of an Address.
const AddressLength = 20

// HashLength is the byte size of a Hash.
const HashLength = 32

// Address is a 20-byte account identifier.
type Address [AddressLength]byte

// Hash is a 32-byte word, used both for storage slots and values.
type Hash [HashLength]byte

// ErrBadLength is returned when decoding hex of the wrong size.
var ErrBadLength = errors.New("host: wrong encoded length")

// ZeroAddress is the all-zero address.
var ZeroAddress Address

// AddressFromHex parses a 0x-prefixed or bare 40-nibble hex address.
func AddressFromHex(s string) (Address, error) {
	var a Address
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) != 2*AddressLength {
		return a, ErrBadLength
	}
	b, err := fasthex.DecodeString(s)
	if err != nil {
		return a, err
	}
	copy(a[:], b)
	return a, nil
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Hash returns a left-padded to 32 bytes.
func (a Address) Hash() Hash {
	var h Hash
	copy(h[HashLength-AddressLength:], a[:])
	return h
}

// String returns the 0x-prefixed hex form of a.
func (a Address) String() string {
	return "0x" + fasthex.EncodeToString(a[:])
}

// HashFromHex parses a 0x-prefixed or bare 64-nibble hex word.
func HashFromHex(s string) (Hash, error) {
	var h Hash
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) != 2*HashLength {
		return h, ErrBadLength
	}
	b, err := fasthex.DecodeString(s)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

// IsZero reports whether h is the zero word.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Address returns the low 20 bytes of h.
func (h Hash) Address() Address {
	var a Address
	copy(a[:], h[HashLength-AddressLength:])
	return a
}

// Uint256 returns h as a big-endian unsigned integer.
func (h Hash) Uint256() *uint256.Int {
	return new(uint256.Int).SetBytes(h[:])
}

// HashFromUint256 returns the 32-byte big-endian form of v.
func HashFromUint256(v *uint256.Int) Hash {
	return Hash(v.Bytes32())
}

// String returns the 0x-prefixed hex form of h.
func (h Hash) String() string {
	return "0x" + fasthex.EncodeToString(h[:])
}
