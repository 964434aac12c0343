// Package filon evaluates the Fourier-Laplace transform
//
//	F(ω) = ∫ f(t) exp(-iωt) dt
//
// of a sampled signal with the Filon-Lagrange rule: the signal is replaced by
// piecewise quadratics (one per pair of time steps) and every piece is
// integrated against the oscillatory kernel in closed form. Unlike
// equal-weight quadrature this stays accurate when ω·Δt is large.
package filon

import (
	"context"
	"fmt"
	"math/cmplx"
	"runtime"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
	"github.com/xaionaro-go/qimpedance/pkg/interpolation"
	"github.com/xaionaro-go/qimpedance/pkg/interpolation/lagrange"
)

const stage = "quadrature"

// SegmentIntegral returns the exact value of ∫_{T1}^{T2} p(t)·exp(-iωt) dt
// for the quadratic p of seg. The t2-term is built first and the t1-term is
// subtracted from it; the two nearly cancel for small ω·(T2-T1), so the
// operation order is part of the contract.
func SegmentIntegral(seg impedance.QuadraticSegment, w float64) complex128 {
	a := complex(seg.A, 0)
	b := complex(seg.B, 0)
	c := complex(seg.C, 0)
	t1 := complex(seg.T1, 0)
	t2 := complex(seg.T2, 0)
	ff := complex(w, 0)

	upper := cmplx.Exp(-1i*ff*t2) * (a*(ff*t2*(2+1i*ff*t2)-2i) + ff*(1i*b*ff*t2+b+1i*c*ff))
	lower := 1i * cmplx.Exp(-1i*ff*t1) * (a*(-2+ff*t1*(ff*t1-2i)) + ff*(c*ff+b*(ff*t1-1i)))
	return complex(1/(w*w*w), 0) * (upper - lower)
}

// Accumulate sums SegmentIntegral over segments in their natural order.
func Accumulate(segments []impedance.QuadraticSegment, w float64) complex128 {
	var sum complex128
	for _, seg := range segments {
		sum += SegmentIntegral(seg, w)
	}
	return sum
}

type Evaluator struct {
	// Workers is the number of goroutines sharing the frequency grid.
	// Non-positive means runtime.GOMAXPROCS(0).
	Workers int
}

type Option func(*Evaluator)

func WithWorkers(workers int) Option {
	return func(e *Evaluator) {
		e.Workers = workers
	}
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) workers(freqCount int) int {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return max(1, min(workers, freqCount))
}

// Transform evaluates F(ω_k) for every frequency of the grid.
//
// Frequencies are split into contiguous blocks, one per worker; each worker
// writes only the slots of its own block and reads the shared inputs, so no
// locking is needed. The per-frequency summation order does not depend on
// the number of workers, so the result is bit-identical for any Workers.
func (e *Evaluator) Transform(
	ctx context.Context,
	freqs impedance.FrequencyGrid,
	segments []impedance.QuadraticSegment,
) (_ret impedance.ComplexSpectrum, _err error) {
	logger.Tracef(ctx, "Transform: %d frequencies x %d segments", len(freqs), len(segments))
	defer func() { logger.Tracef(ctx, "/Transform: %v", _err) }()

	if len(segments) == 0 {
		return nil, impedance.Malformed(stage, "no segments to integrate")
	}
	if err := freqs.Validate(stage); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make(impedance.ComplexSpectrum, len(freqs))
	workers := e.workers(len(freqs))
	blockSize := (len(freqs) + workers - 1) / workers
	logger.Debugf(ctx, "using %d workers with blocks of %d frequencies", workers, blockSize)

	var wg sync.WaitGroup
	for lo := 0; lo < len(freqs); lo += blockSize {
		hi := min(lo+blockSize, len(freqs))
		wg.Add(1)
		observability.Go(ctx, func() {
			defer wg.Done()
			for k := lo; k < hi; k++ {
				if ctx.Err() != nil {
					return
				}
				result[k] = Accumulate(segments, freqs[k])
			}
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Transform is a shorthand for New(opts...).Transform.
func Transform(
	ctx context.Context,
	freqs impedance.FrequencyGrid,
	segments []impedance.QuadraticSegment,
	opts ...Option,
) (impedance.ComplexSpectrum, error) {
	return New(opts...).Transform(ctx, freqs, segments)
}

// FilonLagrange fits the series with interp (Lagrange by default when nil)
// and transforms the result.
func FilonLagrange(
	ctx context.Context,
	freqs impedance.FrequencyGrid,
	ts impedance.TimeSeries,
	interp interpolation.SegmentInterpolator,
	opts ...Option,
) (impedance.ComplexSpectrum, error) {
	if interp == nil {
		interp = lagrange.New()
	}
	segments, err := interp.Interpolate(ts)
	if err != nil {
		return nil, fmt.Errorf("unable to interpolate the signal: %w", err)
	}
	spectrum, err := Transform(ctx, freqs, segments, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to transform the signal: %w", err)
	}
	return spectrum, nil
}
