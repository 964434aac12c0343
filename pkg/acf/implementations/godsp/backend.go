// Package godsp autocorrelates with the mixed-radix FFT of
// github.com/mjibson/go-dsp, which accepts any input length.
package godsp

import (
	"context"
	"fmt"

	"github.com/mjibson/go-dsp/fft"
	"github.com/xaionaro-go/qimpedance/pkg/acf/types"
)

type Backend struct{}

var _ types.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{}
}

func (*Backend) Autocorrelate(_ context.Context, centered []float64) ([]float64, error) {
	if len(centered) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	spectrum := fft.FFTReal(centered)
	for i, c := range spectrum {
		spectrum[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}

	// fft.IFFT is normalized by 1/N, which cancels the unnormalized forward pass
	timeDomain := fft.IFFT(spectrum)
	result := make([]float64, len(timeDomain))
	for i, c := range timeDomain {
		result[i] = real(c)
	}
	return result, nil
}
