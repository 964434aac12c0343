// Package acf computes the charge autocorrelation function of a recorded
// series (Wiener-Khinchin) and its decay window.
package acf

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/qimpedance/pkg/acf/implementations/godsp"
	"github.com/xaionaro-go/qimpedance/pkg/acf/registry"
	"github.com/xaionaro-go/qimpedance/pkg/acf/types"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
	"gonum.org/v1/gonum/stat"
)

const stage = "acf"

// MinSignalLength is the shortest series whose causal half is still
// long enough for one quadratic segment.
const MinSignalLength = 2 * impedance.MinSamples

type Backend = types.Backend

func DefaultBackend() Backend {
	return godsp.New()
}

// BackendByName returns the backend registered under the given name.
// The name "auto" selects an AutoBackend.
func BackendByName(name string) (Backend, error) {
	if name == AutoBackendName {
		return NewAutoBackend(), nil
	}
	factory, err := registry.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("unable to find the backend (available: %v): %w", registry.Names(), err)
	}
	return factory.NewBackend(), nil
}

// ComputeACF returns the causal half of the autocorrelation of the
// mean-subtracted signal, divided by the series length N, together with
// the first N/2 time stamps. A nil backend means DefaultBackend.
func ComputeACF(
	ctx context.Context,
	backend Backend,
	signal []float64,
	time []float64,
) (acf []float64, reducedTime []float64, err error) {
	n := len(signal)
	if n != len(time) {
		return nil, nil, impedance.Malformed(stage, "signal and time have different lengths: %d != %d", n, len(time))
	}
	if n < MinSignalLength {
		return nil, nil, impedance.Malformed(stage, "at least %d samples are required, got %d", MinSignalLength, n)
	}
	for i, v := range signal {
		if !impedance.IsFinite(v) {
			return nil, nil, impedance.MalformedInputError{Stage: stage, Index: i, Reason: fmt.Sprintf("non-finite sample %v", v)}
		}
	}
	if backend == nil {
		backend = DefaultBackend()
	}

	mean := stat.Mean(signal, nil)
	centered := make([]float64, n)
	for i, v := range signal {
		centered[i] = v - mean
	}
	logger.Tracef(ctx, "autocorrelating %d samples with %T (mean %v)", n, backend, mean)

	sums, err := backend.Autocorrelate(ctx, centered)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to autocorrelate with %T: %w", backend, err)
	}
	if len(sums) != n {
		return nil, nil, fmt.Errorf("backend %T returned %d lags instead of %d", backend, len(sums), n)
	}

	half := n / 2
	acf = make([]float64, half)
	invN := 1 / float64(n)
	for k := range acf {
		acf[k] = sums[k] * invN
	}
	reducedTime = make([]float64, half)
	copy(reducedTime, time[:half])
	return acf, reducedTime, nil
}
