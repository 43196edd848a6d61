package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSpec_Validation(t *testing.T) {
	_, err := NewSpec(0, 0.00001, 5)
	assert.Error(t, err, "Zero pip size should be rejected")

	_, err = NewSpec(0.0001, -1, 5)
	assert.Error(t, err, "Negative tick size should be rejected")

	_, err = NewSpec(0.0001, 0.00001, -1)
	assert.Error(t, err, "Negative digits should be rejected")

	sym, err := NewSpec(0.0001, 0.00001, 5)
	assert.NoError(t, err)
	assert.Equal(t, 0.0001, sym.PipSize())
	assert.Equal(t, 5, sym.Digits())
}

func TestSpec_Conversions(t *testing.T) {
	sym, err := NewSpec(0.0001, 0.00001, 5)
	assert.NoError(t, err)

	assert.InDelta(t, 50.0, sym.ToPips(0.005), 1e-9, "0.005 should be 50 pips")
	assert.InDelta(t, 500.0, sym.ToTicks(0.005), 1e-9, "0.005 should be 500 ticks")
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.1235, RoundTo(1.12345, 4), "Should round half away from zero")
	assert.Equal(t, 1.105, RoundTo(1.1049999999999998, 4))
	assert.Equal(t, 100.0, RoundTo(100.0, 0))
}
