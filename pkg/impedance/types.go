// Package impedance holds the data model shared by the stages that turn a
// total-charge time series into an admittance/impedance spectrum.
package impedance

import (
	"math"
)

// MinSamples is the smallest series a quadratic segment can be fitted to.
const MinSamples = 3

// TimeSeries is a sampled signal with strictly increasing Time.
type TimeSeries struct {
	Time  []float64
	Value []float64
}

// Len returns the number of samples.
func (ts TimeSeries) Len() int {
	return len(ts.Time)
}

// Validate checks the shape of the series. Strict monotonicity of Time is
// checked per segment by the interpolators, which know the segment index.
func (ts TimeSeries) Validate(stage string) error {
	if len(ts.Time) != len(ts.Value) {
		return Malformed(stage, "time and value lengths differ: %d != %d", len(ts.Time), len(ts.Value))
	}
	if len(ts.Time) < MinSamples {
		return Malformed(stage, "expected at least %d samples, got %d", MinSamples, len(ts.Time))
	}
	return nil
}

// Scale returns a copy of the series with every value multiplied by k.
func (ts TimeSeries) Scale(k float64) TimeSeries {
	out := TimeSeries{
		Time:  make([]float64, len(ts.Time)),
		Value: make([]float64, len(ts.Value)),
	}
	copy(out.Time, ts.Time)
	for i, v := range ts.Value {
		out.Value[i] = v * k
	}
	return out
}

// SegmentCount is the number of non-overlapping sample triples
// (x[2i], x[2i+1], x[2i+2]) in a series of n samples. When n is even the
// last sample has no partner and is dropped.
func SegmentCount(n int) int {
	if n < MinSamples {
		return 0
	}
	return (n - 1) / 2
}

// QuadraticSegment is p(t) = A*t^2 + B*t + C on [T1, T2], in absolute time.
type QuadraticSegment struct {
	T1 float64
	T2 float64
	A  float64
	B  float64
	C  float64
}

// Eval evaluates the polynomial at t (Horner form).
func (s QuadraticSegment) Eval(t float64) float64 {
	return (s.A*t+s.B)*t + s.C
}

// FrequencyGrid is an ordered list of strictly positive angular frequencies, rad/s.
type FrequencyGrid []float64

// ComplexSpectrum is aligned index-for-index with a FrequencyGrid.
type ComplexSpectrum []complex128

// Real returns the real parts.
func (s ComplexSpectrum) Real() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = real(v)
	}
	return out
}

// Imag returns the imaginary parts.
func (s ComplexSpectrum) Imag() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = imag(v)
	}
	return out
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
