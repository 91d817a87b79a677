package eip712

import (
	"encoding/binary"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fasthex "github.com/tmthrgd/go-hex"

	"github.com/consensys/contractlib/crypto/keccak"
	"github.com/consensys/contractlib/host"
)

type fakeContext struct {
	self    host.Address
	chainID uint64
}

func (c fakeContext) Self() host.Address      { return c.self }
func (c fakeContext) Sender() host.Address    { return host.Address{} }
func (c fakeContext) CallValue() *uint256.Int { return uint256.NewInt(0) }
func (c fakeContext) ChainID() uint64         { return c.chainID }

func mustAddress(t *testing.T, s string) host.Address {
	t.Helper()
	a, err := host.AddressFromHex(s)
	require.NoError(t, err)
	return a
}

func mustHash32(t *testing.T, s string) [32]byte {
	t.Helper()
	b, err := fasthex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 32)
	var out [32]byte
	copy(out[:], b)
	return out
}

// Known-answer vectors cross-checked against the reference solidity
// EIP712 implementation.
const domainVectorsJSON = `[
	{
		"name": "A Name",
		"version": "1",
		"chainId": 1,
		"verifyingContract": "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
		"separator": "bde915a3eddbebb4f8c7377591912f5b7928a38395d8fea1131b7717226790f6",
		"structHash": "9148aa08e878fe0455f94ae04c6b9a47fec4ce1db1870b9d4149e0711fa43496",
		"digest": "57e358836156cb0eec547c8ae8d14a616337892e4df546ef4c7fb6c26962eb70"
	}
]`

type domainVector struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	ChainID           uint64 `json:"chainId"`
	VerifyingContract string `json:"verifyingContract"`
	Separator         string `json:"separator"`
	StructHash        string `json:"structHash"`
	Digest            string `json:"digest"`
}

func TestTypeHashConstant(t *testing.T) {
	want := keccak.Sum256([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	assert.Equal(t, want, TypeHash)
}

func TestDomainVectors(t *testing.T) {
	var vectors []domainVector
	require.NoError(t, json.Unmarshal([]byte(domainVectorsJSON), &vectors))

	for _, v := range vectors {
		ctx := fakeContext{self: mustAddress(t, v.VerifyingContract), chainID: v.ChainID}
		d := NewDomain(ctx, v.Name, v.Version)

		assert.Equal(t, mustHash32(t, v.Separator), d.Separator(ctx))
		assert.Equal(t, mustHash32(t, v.Digest), d.HashTypedData(ctx, mustHash32(t, v.StructHash)))
	}
}

// manualSeparator recomputes the domain tuple hash by hand for an
// arbitrary context, independent of the Domain cache.
func manualSeparator(name, version string, chainID uint64, self host.Address) [32]byte {
	hashedName := keccak.Sum256([]byte(name))
	hashedVersion := keccak.Sum256([]byte(version))
	var buf [5 * 32]byte
	copy(buf[0:32], TypeHash[:])
	copy(buf[32:64], hashedName[:])
	copy(buf[64:96], hashedVersion[:])
	binary.BigEndian.PutUint64(buf[96+24:128], chainID)
	selfWord := self.Hash()
	copy(buf[128:160], selfWord[:])
	return keccak.Sum256(buf[:])
}

func TestSeparatorRecomputedOnForeignContext(t *testing.T) {
	home := fakeContext{self: mustAddress(t, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef"), chainID: 1}
	d := NewDomain(home, "A Name", "1")
	cached := d.Separator(home)

	// A forked chain id must yield a freshly computed separator.
	forked := fakeContext{self: home.self, chainID: 1337}
	got := d.Separator(forked)
	assert.NotEqual(t, cached, got)
	assert.Equal(t, manualSeparator("A Name", "1", 1337, forked.self), got)

	// Same for a different contract address, e.g. behind a clone.
	moved := fakeContext{self: mustAddress(t, "0102030405060708090a0b0c0d0e0f1011121314"), chainID: 1}
	assert.Equal(t, manualSeparator("A Name", "1", 1, moved.self), d.Separator(moved))

	// The mismatch must not overwrite the cache.
	assert.Equal(t, cached, d.Separator(home))
}

func TestToTypedDataHash(t *testing.T) {
	ds := mustHash32(t, "bde915a3eddbebb4f8c7377591912f5b7928a38395d8fea1131b7717226790f6")
	sh := mustHash32(t, "9148aa08e878fe0455f94ae04c6b9a47fec4ce1db1870b9d4149e0711fa43496")

	var buf []byte
	buf = append(buf, 0x19, 0x01)
	buf = append(buf, ds[:]...)
	buf = append(buf, sh[:]...)
	assert.Equal(t, keccak.Sum256(buf), ToTypedDataHash(ds, sh))
}

func TestDomainAccessors(t *testing.T) {
	ctx := fakeContext{chainID: 1}
	d := NewDomain(ctx, "A Name", "2")
	assert.Equal(t, "A Name", d.Name())
	assert.Equal(t, "2", d.Version())
}
