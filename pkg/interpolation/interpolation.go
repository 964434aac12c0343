package interpolation

import (
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
)

const stage = "interpolation"

// SegmentInterpolator fits one quadratic through every non-overlapping
// triple of consecutive samples (x[2i], x[2i+1], x[2i+2]).
type SegmentInterpolator interface {
	Interpolate(ts impedance.TimeSeries) ([]impedance.QuadraticSegment, error)
}

// FitFunc returns the coefficients of p(t) = a*t^2 + b*t + c passing exactly
// through the three points. The nodes are guaranteed to be strictly increasing.
type FitFunc func(x, y [3]float64) (a, b, c float64, err error)

// Segments validates ts and applies fit to every triple. A trailing sample
// without a partner (even length) is dropped.
func Segments(
	ts impedance.TimeSeries,
	fit FitFunc,
) ([]impedance.QuadraticSegment, error) {
	if err := ts.Validate(stage); err != nil {
		return nil, err
	}

	result := make([]impedance.QuadraticSegment, impedance.SegmentCount(ts.Len()))
	for i := range result {
		var x, y [3]float64
		copy(x[:], ts.Time[2*i:2*i+3])
		copy(y[:], ts.Value[2*i:2*i+3])
		if err := CheckNodes(i, x); err != nil {
			return nil, err
		}

		a, b, c, err := fit(x, y)
		if err != nil {
			return nil, err
		}
		result[i] = impedance.QuadraticSegment{
			T1: x[0],
			T2: x[2],
			A:  a,
			B:  b,
			C:  c,
		}
	}
	return result, nil
}

// CheckNodes rejects triples whose times coincide or are not increasing.
// The negated comparison also catches NaN.
func CheckNodes(segmentIdx int, x [3]float64) error {
	for j := 0; j < 2; j++ {
		if !(x[j] < x[j+1]) {
			return impedance.DegenerateInputError{
				Stage: stage,
				Index: segmentIdx,
				T0:    x[j],
				T1:    x[j+1],
			}
		}
	}
	return nil
}
