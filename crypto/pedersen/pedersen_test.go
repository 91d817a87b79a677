package pedersen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/contractlib/arith"
	"github.com/consensys/contractlib/curve/starkcurve"
)

func mustU256(t *testing.T, hex string) arith.U256 {
	t.Helper()
	var u arith.U256
	_, err := u.SetHex(hex)
	require.NoError(t, err)
	return u
}

func TestHashKnownVector(t *testing.T) {
	x := mustU256(t, "0x3d937c035c878245caf64531a5756109c53068da139362728feb561405371cb")
	y := mustU256(t, "0x208a0a10250e382e1e4bbe2880906c2791bf6275695e02fbbc6aeff9cd8b31a")

	got, err := Hash(x, y)
	require.NoError(t, err)
	want := mustU256(t, "0x30e480bed5fe53fa909cc0f8c4d99b8f9f2c016be4c41e13a4848797979c662")
	assert.True(t, got.Equal(&want), "got %s", got.Hex())
}

func TestHashZeroInputs(t *testing.T) {
	// H(0, 0) is the x-coordinate of the shift point
	got, err := Hash(arith.U256{}, arith.U256{})
	require.NoError(t, err)
	want := mustU256(t, "0x49ee3eba8c1600700ee1b87eb599f16716b0b1022947733551fde4050ca6804")
	assert.True(t, got.Equal(&want), "got %s", got.Hex())
}

func TestHashRejectsOversizedInput(t *testing.T) {
	var fp starkcurve.FpParams
	mod := fp.Modulus()

	_, err := Hash(mod, arith.U256{})
	assert.ErrorIs(t, err, ErrElementTooLarge)

	_, err = Hash(arith.U256{}, mod)
	assert.ErrorIs(t, err, ErrElementTooLarge)
}

func TestHashOrderMatters(t *testing.T) {
	x := arith.NewU256(1)
	y := arith.NewU256(2)
	h1, err := Hash(x, y)
	require.NoError(t, err)
	h2, err := Hash(y, x)
	require.NoError(t, err)
	assert.False(t, h1.Equal(&h2))
}

func TestStreamingMode(t *testing.T) {
	// H(H(H(0, x), y), 2) for the known-vector inputs
	x := mustU256(t, "0x3d937c035c878245caf64531a5756109c53068da139362728feb561405371cb")
	y := mustU256(t, "0x208a0a10250e382e1e4bbe2880906c2791bf6275695e02fbbc6aeff9cd8b31a")

	h := New()
	require.NoError(t, h.Update(x))
	require.NoError(t, h.Update(y))
	got := h.Finalize()

	want := mustU256(t, "0x34bfe5fcf62f931181b7ce515b3d7f9ebb76bee88ee301d950769ecd0118280")
	assert.True(t, got.Equal(&want), "got %s", got.Hex())
}

func TestStreamingMatchesManualFold(t *testing.T) {
	inputs := []arith.U256{arith.NewU256(10), arith.NewU256(20), arith.NewU256(30)}

	h := New()
	state := arith.U256{}
	for _, e := range inputs {
		require.NoError(t, h.Update(e))
		next, err := Hash(state, e)
		require.NoError(t, err)
		state = next
	}
	want, err := Hash(state, arith.NewU256(uint64(len(inputs))))
	require.NoError(t, err)

	got := h.Finalize()
	assert.True(t, got.Equal(&want))
}

func TestConstantPointsOnCurve(t *testing.T) {
	assert.True(t, shiftPoint.IsOnCurve())
	for i := range hashPoints {
		assert.True(t, hashPoints[i].IsOnCurve(), "P%d", i+1)
	}
}
