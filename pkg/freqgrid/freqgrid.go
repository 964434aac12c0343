// Package freqgrid builds the log-spaced angular-frequency grid the
// transform is evaluated on.
package freqgrid

import (
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
	"gonum.org/v1/gonum/floats"
)

const stage = "frequency grid"

// Bounds returns the lowest and highest usable angular frequencies for a
// reduced time axis starting at zero: one period over the whole observed
// duration, and one period per three sampling intervals.
func Bounds(reducedTime []float64) (lo, hi float64, err error) {
	if len(reducedTime) < 2 {
		return 0, 0, impedance.Malformed(stage, "need at least 2 time samples, got %d", len(reducedTime))
	}
	dt := reducedTime[1] - reducedTime[0]
	tmax := reducedTime[len(reducedTime)-1]
	if !(dt > 0) || !(tmax > 0) {
		return 0, 0, impedance.Malformed(stage, "time axis must start at zero and be increasing (dt=%v, tmax=%v)", dt, tmax)
	}
	return 2 * math.Pi / tmax, 2 * math.Pi / (3 * dt), nil
}

// LogSpaced returns n frequencies evenly spaced in log space on [lo, hi].
func LogSpaced(lo, hi float64, n int) (impedance.FrequencyGrid, error) {
	if n < 2 {
		return nil, impedance.Malformed(stage, "need at least 2 frequencies, got %d", n)
	}
	if !(lo > 0) || !impedance.IsFinite(lo) {
		return nil, impedance.InvalidFrequencyError{Stage: stage, Index: 0, Value: lo}
	}
	if !(hi > lo) || !impedance.IsFinite(hi) {
		return nil, impedance.InvalidFrequencyError{Stage: stage, Index: n - 1, Value: hi}
	}

	grid := floats.LogSpan(make([]float64, n), lo, hi)
	// exp(log(x)) may be off by an ulp; pin the ends to the requested bounds
	grid[0], grid[n-1] = lo, hi
	return grid, Validate(grid)
}

// FromReducedTime is LogSpaced(Bounds(reducedTime), n).
func FromReducedTime(reducedTime []float64, n int) (impedance.FrequencyGrid, error) {
	lo, hi, err := Bounds(reducedTime)
	if err != nil {
		return nil, err
	}
	return LogSpaced(lo, hi, n)
}

// Validate checks that the grid is finite, strictly positive and strictly increasing.
func Validate(grid impedance.FrequencyGrid) error {
	if err := grid.Validate(stage); err != nil {
		return err
	}
	var mErr *multierror.Error
	for idx := 1; idx < len(grid); idx++ {
		if !(grid[idx] > grid[idx-1]) {
			mErr = multierror.Append(mErr, impedance.InvalidFrequencyError{
				Stage: stage,
				Index: idx,
				Value: grid[idx],
			})
		}
	}
	return mErr.ErrorOrNil()
}
