package merkle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fasthex "github.com/tmthrgd/go-hex"
)

func h32(t *testing.T, s string) [32]byte {
	t.Helper()
	b, err := fasthex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 32)
	var out [32]byte
	copy(out[:], b)
	return out
}

func h32s(t *testing.T, ss ...string) [][32]byte {
	t.Helper()
	out := make([][32]byte, len(ss))
	for i, s := range ss {
		out[i] = h32(t, s)
	}
	return out
}

func TestVerifyKnownProof(t *testing.T) {
	root := h32(t, "b89eb120147840e813a77109b44063488a346b4ca15686185cf314320560d3f3")
	leafA := h32(t, "6efbf77e320741a027b50f02224545461f97cd83762d5fbfeb894b9eb3287c16")
	leafB := h32(t, "7051e21dd45e25ed8c605a53da6f77de151dcbf47b0e3ced3c5d8b61f4a13dbc")
	proof := h32s(t,
		"7051e21dd45e25ed8c605a53da6f77de151dcbf47b0e3ced3c5d8b61f4a13dbc",
		"1629d3b5b09b30449d258e35bbd09dd5e8a3abb91425ef810dc27eef995f7490",
		"633d21baee4bbe5ed5c51ac0c68f7946b8f28d2937f0ca7ef5e1ea9dbda52e7a",
		"8a65d3006581737a3bab46d9e4775dbc1821b1ea813d350a13fcd4f15a8942ec",
		"d6c3f3e36cd23ba32443f6a687ecea44ebfe2b8759a62cccf7759ec1fb563c76",
		"276141cd72b9b81c67f7182ff8a550b76eb96de9248a3ec027ac048c79649115",
	)

	assert.True(t, Verify(proof, root, leafA))

	// The parent of the two leaves verifies with the shortened proof.
	parent := hashSortedPair(leafA, leafB)
	assert.True(t, Verify(proof[1:], root, parent))
}

func TestVerifyRejectsForeignLeaf(t *testing.T) {
	root := h32(t, "b89eb120147840e813a77109b44063488a346b4ca15686185cf314320560d3f3")
	proof := h32s(t,
		"7051e21dd45e25ed8c605a53da6f77de151dcbf47b0e3ced3c5d8b61f4a13dbc",
		"1629d3b5b09b30449d258e35bbd09dd5e8a3abb91425ef810dc27eef995f7490",
	)
	leaf := h32(t, "9c15a6a0eaeed500fd9eed4cbeab71f797cefcc67bfd46683e4d2e6ff7f06d1c")
	assert.False(t, Verify(proof, root, leaf))
}

func TestVerifyRejectsBadProof(t *testing.T) {
	root := h32(t, "f2129b5a697531ef818f644564a6552b35c549722385bc52aa7fe46c0b5f46b1")
	leaf := h32(t, "9c15a6a0eaeed500fd9eed4cbeab71f797cefcc67bfd46683e4d2e6ff7f06d1c")
	proof := h32s(t, "7b0c6cd04b82bfc0e250030a5d2690c52585e0cc6a4f3bc7909d7723b0236ece")
	assert.False(t, Verify(proof, root, leaf))
}

func TestVerifyRejectsTruncatedProof(t *testing.T) {
	root := h32(t, "b89eb120147840e813a77109b44063488a346b4ca15686185cf314320560d3f3")
	leaf := h32(t, "19ba6c6333e0e9a15bf67523e0676e2f23eb8e574092552d5e888c64a4bb3681")
	proof := h32s(t,
		"19ba6c6333e0e9a15bf67523e0676e2f23eb8e574092552d5e888c64a4bb3681",
		"9cf5a63718145ba968a01c1d557020181c5b252f665cf7386d370eddb176517b",
	)
	assert.False(t, Verify(proof[:1], root, leaf))
}

func TestVerifySingleLeafTree(t *testing.T) {
	leaf := h32(t, "6efbf77e320741a027b50f02224545461f97cd83762d5fbfeb894b9eb3287c16")
	assert.True(t, Verify(nil, leaf, leaf))
}

func TestVerifyMultiProofKnown(t *testing.T) {
	root := h32(t, "6deb52b5da8fd108f79fab00341f38d2587896634c646ee52e49f845680a70c8")
	leaves := h32s(t,
		"19ba6c6333e0e9a15bf67523e0676e2f23eb8e574092552d5e888c64a4bb3681",
		"c62a8cfa41edc0ef6f6ae27a2985b7d39c7fea770787d7e104696c6e81f64848",
		"eba909cf4bb90c6922771d7f126ad0fd11dfde93f3937a196274e1ac20fd2f5b",
	)
	proof := h32s(t,
		"9a4f64e953595df82d1b4f570d34c4f4f0cfaf729a61e9d60e83e579e1aa283e",
		"8076923e76cf01a7c048400a2304c9a9c23bbbdac3a98ea3946340fdafbba34f",
	)
	flags := []bool{false, true, false, true}

	ok, err := VerifyMultiProof(proof, flags, root, leaves)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyMultiProofRejectsForeignLeaves(t *testing.T) {
	root := h32(t, "6deb52b5da8fd108f79fab00341f38d2587896634c646ee52e49f845680a70c8")
	leaves := h32s(t,
		"34e6ce3d0d73f6bff2ee1e865833d58e283570976d70b05f45c989ef651ef742",
		"aa28358fb75b314c899e16d7975e029d18b4457fd8fd831f2e6c17ffd17a1d7e",
		"e0fd7e6916ff95d933525adae392a17e247819ebecc2e63202dfec7005c60560",
	)
	flags := []bool{true, true}

	ok, err := VerifyMultiProof(nil, flags, root, leaves)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMultiProofShapeMismatch(t *testing.T) {
	root := h32(t, "6deb52b5da8fd108f79fab00341f38d2587896634c646ee52e49f845680a70c8")
	leaves := h32s(t,
		"19ba6c6333e0e9a15bf67523e0676e2f23eb8e574092552d5e888c64a4bb3681",
		"c62a8cfa41edc0ef6f6ae27a2985b7d39c7fea770787d7e104696c6e81f64848",
	)
	proof := h32s(t,
		"9a4f64e953595df82d1b4f570d34c4f4f0cfaf729a61e9d60e83e579e1aa283e",
		"8076923e76cf01a7c048400a2304c9a9c23bbbdac3a98ea3946340fdafbba34f",
		"8076923e76cf01a7c048400a2304c9a9c23bbbdac3a98ea3946340fdafbba34f",
	)
	flags := []bool{false, true, false}

	_, err := VerifyMultiProof(proof, flags, root, leaves)
	assert.ErrorIs(t, err, ErrInvalidProof)
}

func TestVerifyMultiProofEmptyFlags(t *testing.T) {
	leaf := h32(t, "6efbf77e320741a027b50f02224545461f97cd83762d5fbfeb894b9eb3287c16")
	other := h32(t, "7051e21dd45e25ed8c605a53da6f77de151dcbf47b0e3ced3c5d8b61f4a13dbc")

	ok, err := VerifyMultiProof(nil, nil, leaf, [][32]byte{leaf})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyMultiProof([][32]byte{other}, nil, other, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

// buildTree computes parents bottom-up with sorted-pair hashing and
// returns the level slices, leaves first.
func buildTree(leaves [][32]byte) [][][32]byte {
	levels := [][][32]byte{leaves}
	for len(levels[len(levels)-1]) > 1 {
		cur := levels[len(levels)-1]
		next := make([][32]byte, 0, (len(cur)+1)/2)
		for i := 0; i < len(cur); i += 2 {
			if i+1 < len(cur) {
				next = append(next, hashSortedPair(cur[i], cur[i+1]))
			} else {
				next = append(next, cur[i])
			}
		}
		levels = append(levels, next)
	}
	return levels
}

func TestVerifyBuiltTree(t *testing.T) {
	leaves := make([][32]byte, 8)
	for i := range leaves {
		leaves[i][31] = byte(i + 1)
		leaves[i] = hashSortedPair(leaves[i], leaves[i])
	}
	levels := buildTree(leaves)
	root := levels[len(levels)-1][0]

	for idx := range leaves {
		var proof [][32]byte
		pos := idx
		for _, level := range levels[:len(levels)-1] {
			sibling := pos ^ 1
			if sibling < len(level) {
				proof = append(proof, level[sibling])
			}
			pos /= 2
		}
		assert.True(t, Verify(proof, root, leaves[idx]), "leaf %d", idx)
	}

	var wrong [32]byte
	wrong[0] = 0xff
	assert.False(t, Verify(nil, root, wrong))
}
