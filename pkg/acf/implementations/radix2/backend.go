// Package radix2 autocorrelates with the in-place radix-2 FFT of
// github.com/brettbuddin/fourier. Only power-of-two lengths are supported.
package radix2

import (
	"context"
	"fmt"

	"github.com/brettbuddin/fourier"
	"github.com/xaionaro-go/qimpedance/pkg/acf/types"
)

type Backend struct{}

var _ types.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{}
}

func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func (*Backend) Autocorrelate(_ context.Context, centered []float64) ([]float64, error) {
	n := len(centered)
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("the radix-2 backend requires a power-of-two length, got %d", n)
	}

	buf := make([]complex128, n)
	for i, v := range centered {
		buf[i] = complex(v, 0)
	}
	if err := fourier.Forward(buf); err != nil {
		return nil, fmt.Errorf("unable to compute the forward transform: %w", err)
	}
	for i, c := range buf {
		buf[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}

	// The power spectrum of a real signal is real and even, so a second
	// forward pass equals N times the inverse transform.
	if err := fourier.Forward(buf); err != nil {
		return nil, fmt.Errorf("unable to compute the backward transform: %w", err)
	}

	result := make([]float64, n)
	invN := 1 / float64(n)
	for i, c := range buf {
		result[i] = real(c) * invN
	}
	return result, nil
}
