// Package response maps the Fourier-Laplace transform of the charge
// autocorrelation function to the electrical admittance and impedance via
// the fluctuation-dissipation relation.
package response

import (
	"math/cmplx"

	"github.com/xaionaro-go/qimpedance/pkg/impedance"
)

const stage = "response"

// Admittance returns
//
//	Y(ω_k) = β·(ω_k²·F(ω_k) + i·ω_k·QACF(0))
//
// where F is the transform of the (windowed) ACF, beta = 1/(k_B·T) and q0 is
// the zero-lag ACF value.
func Admittance(
	transform impedance.ComplexSpectrum,
	freqs impedance.FrequencyGrid,
	beta float64,
	q0 float64,
) (impedance.ComplexSpectrum, error) {
	if len(transform) != len(freqs) {
		return nil, impedance.Malformed(stage, "transform and frequency grid lengths differ: %d != %d", len(transform), len(freqs))
	}
	if !(beta > 0) || !impedance.IsFinite(beta) {
		return nil, impedance.Malformed(stage, "inverse temperature must be positive and finite, got %v", beta)
	}
	if err := freqs.Validate(stage); err != nil {
		return nil, err
	}

	y := make(impedance.ComplexSpectrum, len(freqs))
	for k, w := range freqs {
		y[k] = complex(beta, 0) * (complex(w*w, 0)*transform[k] + complex(0, w*q0))
	}
	return y, nil
}

// Impedance returns Z = 1/Y. An exactly zero admittance is rejected with a
// SingularResponseError instead of producing infinities.
func Impedance(
	admittance impedance.ComplexSpectrum,
	freqs impedance.FrequencyGrid,
) (impedance.ComplexSpectrum, error) {
	if len(admittance) != len(freqs) {
		return nil, impedance.Malformed(stage, "admittance and frequency grid lengths differ: %d != %d", len(admittance), len(freqs))
	}

	z := make(impedance.ComplexSpectrum, len(admittance))
	for k, y := range admittance {
		if y == 0 {
			return nil, impedance.SingularResponseError{
				Stage:     stage,
				Index:     k,
				Frequency: freqs[k],
			}
		}
		z[k] = 1 / y
	}
	return z, nil
}

// Map is Admittance followed by Impedance.
func Map(
	transform impedance.ComplexSpectrum,
	freqs impedance.FrequencyGrid,
	beta float64,
	q0 float64,
) (admittance, impedanceSpectrum impedance.ComplexSpectrum, err error) {
	admittance, err = Admittance(transform, freqs, beta, q0)
	if err != nil {
		return nil, nil, err
	}
	impedanceSpectrum, err = Impedance(admittance, freqs)
	if err != nil {
		return nil, nil, err
	}
	return admittance, impedanceSpectrum, nil
}

// Debye returns the admittance of a charge ACF q0·exp(-t/tau0) truncated at
// tmax, i.e. Admittance applied to the exact transform
//
//	F(ω) = q0·(1 - exp(-(1/tau0 + iω)·tmax)) / (1/tau0 + iω).
//
// For tmax → ∞ this is the Debye form β·q0·iω/(1 + iωτ0).
func Debye(
	freqs impedance.FrequencyGrid,
	beta, q0, tau0, tmax float64,
) (impedance.ComplexSpectrum, error) {
	if !(tau0 > 0) || !(tmax > 0) {
		return nil, impedance.Malformed(stage, "relaxation time and duration must be positive (tau0=%v, tmax=%v)", tau0, tmax)
	}
	transform := make(impedance.ComplexSpectrum, len(freqs))
	for k, w := range freqs {
		s := complex(1/tau0, w)
		transform[k] = complex(q0, 0) * (1 - cmplx.Exp(-s*complex(tmax, 0))) / s
	}
	return Admittance(transform, freqs, beta, q0)
}
