// Package gonum autocorrelates with the real-input FFT of gonum.org/v1/gonum/dsp/fourier.
package gonum

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/qimpedance/pkg/acf/types"
	"gonum.org/v1/gonum/dsp/fourier"
)

type Backend struct{}

var _ types.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{}
}

func (*Backend) Autocorrelate(_ context.Context, centered []float64) ([]float64, error) {
	n := len(centered)
	if n == 0 {
		return nil, fmt.Errorf("empty input")
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, centered)
	for i, c := range coeffs {
		coeffs[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}

	// Sequence is not normalized
	result := fft.Sequence(nil, coeffs)
	invN := 1 / float64(n)
	for i := range result {
		result[i] *= invN
	}
	return result, nil
}
