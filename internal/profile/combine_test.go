package profile

import (
	"testing"

	"github.com/jwtly10/barlens/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine_MergesAdjacentLevels(t *testing.T) {
	levels := []*PriceLevel{
		{Level: 1.0200, BullishVolume: 7, BearishVolume: 3},
		{Level: 1.0000, BullishVolume: 10, BearishVolume: 5, Profile: []int{0}},
		{Level: 1.0040, BullishVolume: 2, BearishVolume: 1, Profile: []int{1, 2}},
	}

	bands, err := Combine(levels, 0.005)
	require.NoError(t, err)
	require.Len(t, bands, 2)

	assert.Equal(t, 1.0000, bands[0].Level, "First band anchors at the lowest level")
	assert.Equal(t, int64(12), bands[0].BullishVolume)
	assert.Equal(t, int64(6), bands[0].BearishVolume)
	assert.Equal(t, []int{0, 1, 2}, bands[0].Profile, "Profiles concatenate in ascending level order")

	assert.Equal(t, 1.0200, bands[1].Level)
	assert.Equal(t, int64(7), bands[1].BullishVolume)
	assert.Equal(t, int64(3), bands[1].BearishVolume)
}

func TestCombine_DoesNotMutateInput(t *testing.T) {
	levels := []*PriceLevel{
		{Level: 1.0040, BullishVolume: 2},
		{Level: 1.0000, BullishVolume: 10, Profile: []int{0}},
	}

	_, err := Combine(levels, 0.005)
	require.NoError(t, err)

	assert.Equal(t, 1.0040, levels[0].Level, "Input order must be preserved")
	assert.Equal(t, int64(2), levels[0].BullishVolume)
	assert.Equal(t, int64(10), levels[1].BullishVolume)
	assert.Equal(t, []int{0}, levels[1].Profile)
}

func TestCombine_ConservesVolume(t *testing.T) {
	levels := []*PriceLevel{
		{Level: 1.0000, BullishVolume: 10, BearishVolume: 4},
		{Level: 1.0010, BullishVolume: 20, BearishVolume: 8},
		{Level: 1.0030, BullishVolume: 5, BearishVolume: 2},
		{Level: 1.0100, BullishVolume: 7, BearishVolume: 9},
	}

	bands, err := Combine(levels, 0.002)
	require.NoError(t, err)

	var bull, bear int64
	for _, b := range bands {
		bull += b.BullishVolume
		bear += b.BearishVolume
	}
	assert.Equal(t, int64(42), bull, "Combining must never drop bullish volume")
	assert.Equal(t, int64(23), bear, "Combining must never drop bearish volume")
}

func TestCombine_Idempotent(t *testing.T) {
	levels := []*PriceLevel{
		{Level: 1.0000, BullishVolume: 10},
		{Level: 1.0010, BullishVolume: 20},
		{Level: 1.0030, BullishVolume: 5},
		{Level: 1.0100, BullishVolume: 7},
	}

	once, err := Combine(levels, 0.002)
	require.NoError(t, err)

	twice, err := Combine(once, 0.002)
	require.NoError(t, err)

	assert.Equal(t, once, twice, "Re-combining with the same width must not merge further")
}

func TestCombine_EmptyInput(t *testing.T) {
	_, err := Combine(nil, 0.005)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Combine([]*PriceLevel{}, 0.005)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestCombine_ProfileOutput(t *testing.T) {
	// Market-profile output feeds straight into the combiner
	sym := fxSymbol(t)
	s := series.Slice{
		bar(0, 1.1005, 1.1020, 1.1000, 1.1015),
		bar(1, 1.1015, 1.1030, 1.1010, 1.1025),
	}

	levels, err := MarketProfile(s, sym, 1, 2, 10)
	require.NoError(t, err)

	bands, err := Combine(levels, 0.0015)
	require.NoError(t, err)
	require.Len(t, bands, 2)

	assert.Equal(t, 1.1000, bands[0].Level)
	assert.Equal(t, []int{0, 0, 1}, bands[0].Profile, "Band absorbs every visit within its width")
	assert.Equal(t, 1.1020, bands[1].Level)
	assert.Equal(t, []int{0, 1, 1}, bands[1].Profile)
}
