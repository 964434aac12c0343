package freqgrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
)

func reducedTime(m int, dt float64) []float64 {
	t := make([]float64, m)
	for i := range t {
		t[i] = float64(i) * dt
	}
	return t
}

func TestBounds(t *testing.T) {
	const dt = 1e-15
	rt := reducedTime(5000, dt)
	lo, hi, err := Bounds(rt)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi/(4999*dt), lo, 1e-12*lo)
	assert.InDelta(t, 2*math.Pi/(3*dt), hi, 1e-12*hi)

	_, _, err = Bounds([]float64{0})
	require.ErrorIs(t, err, impedance.ErrMalformedInput)

	_, _, err = Bounds([]float64{0, 0, 0})
	require.ErrorIs(t, err, impedance.ErrMalformedInput)
}

func TestFromReducedTime(t *testing.T) {
	rt := reducedTime(1000, 0.5)
	grid, err := FromReducedTime(rt, 100)
	require.NoError(t, err)
	require.Len(t, grid, 100)

	assert.Equal(t, 2*math.Pi/rt[len(rt)-1], grid[0])
	assert.Equal(t, 2*math.Pi/(3*(rt[1]-rt[0])), grid[99])
	for i, w := range grid {
		assert.Greater(t, w, 0.0)
		if i > 0 {
			assert.Greater(t, w, grid[i-1])
			// constant ratio between neighbours
			assert.InDelta(t, math.Log(grid[1]/grid[0]), math.Log(w/grid[i-1]), 1e-9)
		}
	}
}

func TestLogSpaced_Errors(t *testing.T) {
	_, err := LogSpaced(1, 10, 1)
	require.ErrorIs(t, err, impedance.ErrMalformedInput)

	_, err = LogSpaced(0, 10, 10)
	require.ErrorIs(t, err, impedance.ErrInvalidFrequency)

	_, err = LogSpaced(10, 10, 10)
	require.ErrorIs(t, err, impedance.ErrInvalidFrequency)

	_, err = LogSpaced(1, math.Inf(1), 10)
	require.ErrorIs(t, err, impedance.ErrInvalidFrequency)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(impedance.FrequencyGrid{1, 2, 3}))

	err := Validate(impedance.FrequencyGrid{1, 3, 2, 2})
	require.ErrorIs(t, err, impedance.ErrInvalidFrequency)
	var freqErr impedance.InvalidFrequencyError
	require.ErrorAs(t, err, &freqErr)
	assert.Equal(t, 2, freqErr.Index)

	require.ErrorIs(t, Validate(impedance.FrequencyGrid{0, 1}), impedance.ErrInvalidFrequency)
}
