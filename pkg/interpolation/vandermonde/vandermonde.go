// Package vandermonde fits the quadratic segments by solving the 3x3
// Vandermonde system with gonum. It is slower than the closed-form Lagrange
// expansion and is kept as an independent cross-check.
package vandermonde

import (
	"fmt"

	"github.com/xaionaro-go/qimpedance/pkg/impedance"
	"github.com/xaionaro-go/qimpedance/pkg/interpolation"
	"gonum.org/v1/gonum/mat"
)

type Interpolator struct{}

var _ interpolation.SegmentInterpolator = (*Interpolator)(nil)

func New() *Interpolator {
	return &Interpolator{}
}

func (*Interpolator) Interpolate(ts impedance.TimeSeries) ([]impedance.QuadraticSegment, error) {
	return interpolation.Segments(ts, Fit)
}

// Fit solves the system in the local coordinate s = (t - x1)/h, where the
// matrix is well conditioned, and maps the result back to absolute time.
func Fit(x, y [3]float64) (a, b, c float64, err error) {
	h := (x[2] - x[0]) / 2
	s0 := (x[0] - x[1]) / h
	s2 := (x[2] - x[1]) / h

	v := mat.NewDense(3, 3, []float64{
		s0 * s0, s0, 1,
		0, 0, 1,
		s2 * s2, s2, 1,
	})
	var coef mat.VecDense
	if err := coef.SolveVec(v, mat.NewVecDense(3, y[:])); err != nil {
		return 0, 0, 0, fmt.Errorf("unable to solve the Vandermonde system for nodes %v: %w", x, err)
	}
	alpha, beta, gamma := coef.AtVec(0), coef.AtVec(1), coef.AtVec(2)

	a = alpha / (h * h)
	b = beta/h - 2*alpha*x[1]/(h*h)
	c = alpha*x[1]*x[1]/(h*h) - beta*x[1]/h + gamma
	return a, b, c, nil
}
