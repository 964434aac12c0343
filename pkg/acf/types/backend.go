package types

import (
	"context"
)

// Backend computes circular autocorrelation sums of a real sequence.
type Backend interface {
	// Autocorrelate returns r[k] = Σ_j x[j]·x[(j+k) mod N] for every
	// lag k in [0, N). The input is expected to be mean-subtracted
	// already and must not be modified.
	Autocorrelate(ctx context.Context, centered []float64) ([]float64, error)
}

type BackendFactory interface {
	Name() string
	NewBackend() Backend
}
