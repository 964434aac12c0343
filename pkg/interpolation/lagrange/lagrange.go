// Package lagrange fits the quadratic segments by expanding the Lagrange
// basis in closed form.
package lagrange

import (
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
	"github.com/xaionaro-go/qimpedance/pkg/interpolation"
)

type Interpolator struct{}

var _ interpolation.SegmentInterpolator = (*Interpolator)(nil)

func New() *Interpolator {
	return &Interpolator{}
}

func (*Interpolator) Interpolate(ts impedance.TimeSeries) ([]impedance.QuadraticSegment, error) {
	return interpolation.Segments(ts, Fit)
}

// Fit returns the monomial coefficients of
//
//	p(t) = Σ_j y_j * Π_{m≠j} (t - x_m) / (x_j - x_m)
//
// The three basis polynomials share the same quadratic structure, so each
// coefficient is a weighted sum over w_j = y_j / Π_{m≠j}(x_j - x_m).
func Fit(x, y [3]float64) (a, b, c float64, err error) {
	w0 := y[0] / ((x[0] - x[1]) * (x[0] - x[2]))
	w1 := y[1] / ((x[1] - x[0]) * (x[1] - x[2]))
	w2 := y[2] / ((x[2] - x[0]) * (x[2] - x[1]))

	a = w0 + w1 + w2
	b = -(w0*(x[1]+x[2]) + w1*(x[0]+x[2]) + w2*(x[0]+x[1]))
	c = w0*x[1]*x[2] + w1*x[0]*x[2] + w2*x[0]*x[1]
	return a, b, c, nil
}
