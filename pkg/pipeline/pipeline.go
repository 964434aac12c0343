// Package pipeline chains the stages of an impedance calculation:
// charge series -> ACF -> window -> frequency grid -> Filon-Lagrange
// transform -> admittance and impedance.
package pipeline

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/qimpedance/pkg/acf"
	_ "github.com/xaionaro-go/qimpedance/pkg/acf/implementations/gonum"
	_ "github.com/xaionaro-go/qimpedance/pkg/acf/implementations/radix2"
	"github.com/xaionaro-go/qimpedance/pkg/chargeio"
	"github.com/xaionaro-go/qimpedance/pkg/config"
	"github.com/xaionaro-go/qimpedance/pkg/filon"
	"github.com/xaionaro-go/qimpedance/pkg/freqgrid"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
	"github.com/xaionaro-go/qimpedance/pkg/interpolation"
	"github.com/xaionaro-go/qimpedance/pkg/interpolation/lagrange"
	"github.com/xaionaro-go/qimpedance/pkg/interpolation/vandermonde"
	"github.com/xaionaro-go/qimpedance/pkg/response"
)

type Result struct {
	ReducedTime  []float64
	QACF         []float64
	WindowedQACF []float64
	Frequencies  impedance.FrequencyGrid
	Transform    impedance.ComplexSpectrum
	Admittance   impedance.ComplexSpectrum
	Impedance    impedance.ComplexSpectrum
}

// Tables returns the four output tables in the order they are written.
func (r *Result) Tables() []chargeio.Table {
	return []chargeio.Table{
		chargeio.NewQACFTable(r.ReducedTime, r.QACF),
		chargeio.NewWindowedQACFTable(r.ReducedTime, r.WindowedQACF),
		chargeio.NewAdmittanceTable(r.Frequencies, r.Admittance),
		chargeio.NewImpedanceTable(r.Frequencies, r.Impedance),
	}
}

func newInterpolator(kind config.Interpolator) (interpolation.SegmentInterpolator, error) {
	switch kind {
	case config.InterpolatorLagrange:
		return lagrange.New(), nil
	case config.InterpolatorVandermonde:
		return vandermonde.New(), nil
	default:
		return nil, fmt.Errorf("unknown interpolator '%s'", kind)
	}
}

// Run computes every stage in memory. Nothing is written.
func Run(
	ctx context.Context,
	cfg config.Config,
	charges impedance.TimeSeries,
) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	backend, err := acf.BackendByName(cfg.ACFBackend)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the ACF backend: %w", err)
	}
	interp, err := newInterpolator(cfg.Interpolator)
	if err != nil {
		return nil, err
	}

	qacf, reducedTime, err := acf.ComputeACF(ctx, backend, charges.Value, charges.Time)
	if err != nil {
		return nil, fmt.Errorf("unable to compute the QACF: %w", err)
	}
	windowed, err := acf.ApplyWindow(qacf, reducedTime, cfg.Epsilon, cfg.Tau)
	if err != nil {
		return nil, fmt.Errorf("unable to apply the window: %w", err)
	}
	logger.Infof(ctx, "QACF computed (%d lags, Q0=%v C^2)", len(qacf), qacf[0])

	freqs, err := freqgrid.FromReducedTime(reducedTime, cfg.NFreq)
	if err != nil {
		return nil, fmt.Errorf("unable to build the frequency grid: %w", err)
	}
	logger.Debugf(ctx, "frequency grid: %d points in [%v, %v] rad/s", len(freqs), freqs[0], freqs[len(freqs)-1])

	transform, err := filon.FilonLagrange(
		ctx,
		freqs,
		impedance.TimeSeries{Time: reducedTime, Value: windowed},
		interp,
		filon.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to compute the Fourier-Laplace transform: %w", err)
	}

	admittance, imp, err := response.Map(transform, freqs, cfg.Beta(), windowed[0])
	if err != nil {
		return nil, fmt.Errorf("unable to compute the admittance/impedance: %w", err)
	}
	logger.Infof(ctx, "Admittance / Impedance computed")

	return &Result{
		ReducedTime:  reducedTime,
		QACF:         qacf,
		WindowedQACF: windowed,
		Frequencies:  freqs,
		Transform:    transform,
		Admittance:   admittance,
		Impedance:    imp,
	}, nil
}

// RunFile reads the charge series from inputPath, runs the calculation and
// writes the tables into cfg.OutputDir.
func RunFile(
	ctx context.Context,
	cfg config.Config,
	inputPath string,
) (*Result, []string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	charges, err := chargeio.ReadChargesFile(ctx, inputPath, cfg.ReadOptions())
	if err != nil {
		return nil, nil, err
	}
	logger.Infof(ctx, "Data loaded (%d samples)", charges.Len())

	result, err := Run(ctx, cfg, charges)
	if err != nil {
		return nil, nil, err
	}

	paths, err := WriteOutputs(ctx, cfg, result)
	if err != nil {
		return result, paths, err
	}
	logger.Infof(ctx, "Done.")
	return result, paths, nil
}
