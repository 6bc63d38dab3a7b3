package lmdi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogMean(t *testing.T) {
	tests := []struct {
		name     string
		final    float64
		initial  float64
		expected float64
	}{
		{"equal integers", 5, 5, 0},
		{"equal fractions", 3.2, 3.2, 0},
		{"doubling", 2, 1, 1 / math.Log(2)},
		{"increase", 12, 10, 2 / (math.Log(12) - math.Log(10))},
		{"decrease", 8, 10, -2 / (math.Log(8) - math.Log(10))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, LogMean(tt.final, tt.initial), 1e-12)
		})
	}
}

func TestLogMeanBetweenInputs(t *testing.T) {
	// The log-mean of two distinct positive values lies strictly between
	// them.
	pairs := [][2]float64{{1, 2}, {10, 12}, {0.5, 8}, {100, 101}}
	for _, pair := range pairs {
		lm := LogMean(pair[1], pair[0])
		assert.Greater(t, lm, math.Min(pair[0], pair[1]))
		assert.Less(t, lm, math.Max(pair[0], pair[1]))
	}
}

func TestLogRatio(t *testing.T) {
	tests := []struct {
		name     string
		final    float64
		initial  float64
		expected float64
	}{
		{"zero initial", 7, 0, 1},
		{"zero final", 0, 7, 1},
		{"both zero", 0, 0, 1},
		{"no change", 4, 4, 0},
		{"growth", 3, 2, math.Log(1.5)},
		{"decline", 1, 2, math.Log(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, LogRatio(tt.final, tt.initial), 1e-12)
		})
	}
}

func TestParseMode(t *testing.T) {
	t.Run("recognized values", func(t *testing.T) {
		mode, err := ParseMode("add")
		assert.NoError(t, err)
		assert.Equal(t, ModeAdditive, mode)

		mode, err = ParseMode("mul")
		assert.NoError(t, err)
		assert.Equal(t, ModeMultiplicative, mode)
	})

	t.Run("rejected values", func(t *testing.T) {
		for _, raw := range []string{"", "additive", "multiplicative", "ADD", "div"} {
			_, err := ParseMode(raw)
			assert.Error(t, err, "mode %q should be rejected", raw)

			var invalid *InvalidModeError
			assert.ErrorAs(t, err, &invalid)
			assert.Equal(t, raw, invalid.Mode)
		}
	})
}
