package interpolation_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
	"github.com/xaionaro-go/qimpedance/pkg/interpolation"
	"github.com/xaionaro-go/qimpedance/pkg/interpolation/lagrange"
	"github.com/xaionaro-go/qimpedance/pkg/interpolation/vandermonde"
)

func implementations() map[string]interpolation.SegmentInterpolator {
	return map[string]interpolation.SegmentInterpolator{
		"lagrange":    lagrange.New(),
		"vandermonde": vandermonde.New(),
	}
}

func uniformSeries(n int, dt float64, f func(t float64) float64) impedance.TimeSeries {
	ts := impedance.TimeSeries{
		Time:  make([]float64, n),
		Value: make([]float64, n),
	}
	for i := range ts.Time {
		ts.Time[i] = float64(i) * dt
		ts.Value[i] = f(ts.Time[i])
	}
	return ts
}

func TestInterpolate_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for name, interp := range implementations() {
		t.Run(name, func(t *testing.T) {
			for iter := 0; iter < 100; iter++ {
				x0 := r.Float64()*10 - 5
				x1 := x0 + 0.1 + r.Float64()
				x2 := x1 + 0.1 + r.Float64()
				ts := impedance.TimeSeries{
					Time:  []float64{x0, x1, x2},
					Value: []float64{r.NormFloat64(), r.NormFloat64(), r.NormFloat64()},
				}
				segs, err := interp.Interpolate(ts)
				require.NoError(t, err)
				require.Len(t, segs, 1)
				for j, x := range ts.Time {
					assert.InDelta(t, ts.Value[j], segs[0].Eval(x), 1e-9*(1+math.Abs(ts.Value[j])), spew.Sdump(ts, segs))
				}
				assert.Equal(t, x0, segs[0].T1)
				assert.Equal(t, x2, segs[0].T2)
			}
		})
	}
}

func TestInterpolate_ExactForQuadratics(t *testing.T) {
	p := func(t float64) float64 { return 3*t*t - 2*t + 0.5 }
	ts := uniformSeries(11, 0.1, p)
	for name, interp := range implementations() {
		t.Run(name, func(t *testing.T) {
			segs, err := interp.Interpolate(ts)
			require.NoError(t, err)
			require.Len(t, segs, 5)
			for i, s := range segs {
				assert.InDelta(t, 3, s.A, 1e-9, "segment %d", i)
				assert.InDelta(t, -2, s.B, 1e-9, "segment %d", i)
				assert.InDelta(t, 0.5, s.C, 1e-9, "segment %d", i)
				assert.Equal(t, ts.Time[2*i], s.T1)
				assert.Equal(t, ts.Time[2*i+2], s.T2)
			}
		})
	}
}

func TestInterpolate_ImplementationsAgree(t *testing.T) {
	ts := uniformSeries(101, 0.05, func(t float64) float64 { return math.Exp(-t) * math.Cos(3*t) })
	a, err := lagrange.New().Interpolate(ts)
	require.NoError(t, err)
	b, err := vandermonde.New().Interpolate(ts)
	require.NoError(t, err)
	require.Len(t, b, len(a))
	for i := range a {
		for _, x := range []float64{a[i].T1, (a[i].T1 + a[i].T2) / 2, a[i].T2} {
			assert.InDelta(t, a[i].Eval(x), b[i].Eval(x), 1e-9, "segment %d", i)
		}
	}
}

func TestInterpolate_SegmentCount(t *testing.T) {
	for name, interp := range implementations() {
		t.Run(name, func(t *testing.T) {
			segs, err := interp.Interpolate(uniformSeries(3, 1, math.Sin))
			require.NoError(t, err)
			assert.Len(t, segs, 1)

			// the trailing unpaired sample is dropped
			even := uniformSeries(6, 1, math.Sin)
			segs, err = interp.Interpolate(even)
			require.NoError(t, err)
			require.Len(t, segs, 2)
			assert.Equal(t, even.Time[4], segs[1].T2)

			segs, err = interp.Interpolate(uniformSeries(2, 1, math.Sin))
			require.ErrorIs(t, err, impedance.ErrMalformedInput)
			assert.Nil(t, segs)

			_, err = interp.Interpolate(impedance.TimeSeries{})
			require.ErrorIs(t, err, impedance.ErrMalformedInput)
		})
	}
}

func TestInterpolate_Degenerate(t *testing.T) {
	for name, interp := range implementations() {
		t.Run(name, func(t *testing.T) {
			ts := impedance.TimeSeries{
				Time:  []float64{0, 1, 2, 3, 3, 4, 5},
				Value: []float64{1, 2, 3, 4, 5, 6, 7},
			}
			segs, err := interp.Interpolate(ts)
			require.ErrorIs(t, err, impedance.ErrDegenerateInput)
			assert.Nil(t, segs)

			var degenerate impedance.DegenerateInputError
			require.ErrorAs(t, err, &degenerate)
			assert.Equal(t, 1, degenerate.Index)

			ts.Time = []float64{0, math.NaN(), 2}
			ts.Value = ts.Value[:3]
			_, err = interp.Interpolate(ts)
			require.ErrorIs(t, err, impedance.ErrDegenerateInput)
		})
	}
}

func TestInterpolate_DoesNotMutateInput(t *testing.T) {
	ts := uniformSeries(9, 0.5, math.Cos)
	timeCopy := append([]float64(nil), ts.Time...)
	valueCopy := append([]float64(nil), ts.Value...)
	_, err := lagrange.New().Interpolate(ts)
	require.NoError(t, err)
	assert.Equal(t, timeCopy, ts.Time)
	assert.Equal(t, valueCopy, ts.Value)
}

func BenchmarkInterpolate(b *testing.B) {
	ts := uniformSeries(100001, 1e-15, func(t float64) float64 { return math.Exp(-t / 1e-12) })
	for name, interp := range implementations() {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = interp.Interpolate(ts)
			}
		})
	}
}
