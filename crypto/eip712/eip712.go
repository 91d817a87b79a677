// Package eip712 computes EIP-712 typed-data digests: the domain
// separator over (name, version, chainId, verifyingContract) and the
// final 0x19 0x01 digest over a caller-supplied struct hash.
//
// The domain separator is cached at construction for the deploying
// chain and contract address. Requests from a different context, such
// as after a fork, recompute the separator on the fly without
// overwriting the cache.
package eip712

import (
	"encoding/binary"

	"github.com/consensys/contractlib/crypto/keccak"
	"github.com/consensys/contractlib/host"
)

// TypeHash is
// keccak256("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)").
var TypeHash = [32]byte{
	0x8b, 0x73, 0xc3, 0xc6, 0x9b, 0xb8, 0xfe, 0x3d,
	0x51, 0x2e, 0xcc, 0x4c, 0xf7, 0x59, 0xcc, 0x79,
	0x23, 0x9f, 0x7b, 0x17, 0x9b, 0x0f, 0xfa, 0xca,
	0xa9, 0xa7, 0x5d, 0x52, 0x2b, 0x39, 0x40, 0x0f,
}

// Domain is an EIP-712 signing domain bound to a contract instance.
type Domain struct {
	name    string
	version string

	hashedName    [32]byte
	hashedVersion [32]byte

	cachedSeparator [32]byte
	cachedChainID   uint64
	cachedSelf      host.Address
}

// NewDomain builds a domain for the given name and version, caching
// the separator for the current chain and contract address.
func NewDomain(env host.Context, name, version string) *Domain {
	d := &Domain{
		name:          name,
		version:       version,
		hashedName:    keccak.Sum256([]byte(name)),
		hashedVersion: keccak.Sum256([]byte(version)),
		cachedChainID: env.ChainID(),
		cachedSelf:    env.Self(),
	}
	d.cachedSeparator = d.buildSeparator(d.cachedChainID, d.cachedSelf)
	return d
}

// Name returns the domain name.
func (d *Domain) Name() string { return d.name }

// Version returns the domain version.
func (d *Domain) Version() string { return d.version }

// Separator returns the domain separator for the current execution
// context. The cached value is served only when both the chain id and
// the contract address still match the construction-time context.
func (d *Domain) Separator(env host.Context) [32]byte {
	chainID := env.ChainID()
	self := env.Self()
	if chainID == d.cachedChainID && self == d.cachedSelf {
		return d.cachedSeparator
	}
	return d.buildSeparator(chainID, self)
}

// HashTypedData returns keccak256(0x19 ‖ 0x01 ‖ DS ‖ structHash).
func (d *Domain) HashTypedData(env host.Context, structHash [32]byte) [32]byte {
	return ToTypedDataHash(d.Separator(env), structHash)
}

// ToTypedDataHash combines a domain separator and a struct hash into
// the final EIP-712 digest.
func ToTypedDataHash(domainSeparator, structHash [32]byte) [32]byte {
	k := keccak.New()
	k.Update([]byte{0x19, 0x01})
	k.Update(domainSeparator[:])
	k.Update(structHash[:])
	return k.Finalize()
}

// buildSeparator hashes the abi-encoded domain tuple. Every field is
// a static 32-byte word, so encoding is plain concatenation.
func (d *Domain) buildSeparator(chainID uint64, self host.Address) [32]byte {
	var buf [5 * 32]byte
	copy(buf[0:32], TypeHash[:])
	copy(buf[32:64], d.hashedName[:])
	copy(buf[64:96], d.hashedVersion[:])
	binary.BigEndian.PutUint64(buf[96+24:128], chainID)
	selfWord := self.Hash()
	copy(buf[128:160], selfWord[:])
	return keccak.Sum256(buf[:])
}
