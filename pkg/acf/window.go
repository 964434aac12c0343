package acf

import (
	"math"

	"github.com/xaionaro-go/qimpedance/pkg/impedance"
)

// Window is the Fermi-like decay w(t) = (exp(-ε·τ)+1)/(exp(ε·(t-τ))+1).
// It equals 1 at t=0 and falls off around t=τ with width 1/ε.
func Window(t, epsilon, tau float64) float64 {
	return (math.Exp(-epsilon*tau) + 1) / (math.Exp(epsilon*(t-tau)) + 1)
}

// ApplyWindow multiplies the ACF by Window sample-by-sample.
func ApplyWindow(
	acf []float64,
	reducedTime []float64,
	epsilon float64,
	tau float64,
) ([]float64, error) {
	if len(acf) == 0 {
		return nil, impedance.Malformed(stage, "empty ACF")
	}
	if len(acf) != len(reducedTime) {
		return nil, impedance.Malformed(stage, "ACF and time have different lengths: %d != %d", len(acf), len(reducedTime))
	}
	if !impedance.IsFinite(epsilon) || !impedance.IsFinite(tau) {
		return nil, impedance.Malformed(stage, "window parameters must be finite: epsilon=%v tau=%v", epsilon, tau)
	}

	result := make([]float64, len(acf))
	for i, v := range acf {
		result[i] = v * Window(reducedTime[i], epsilon, tau)
	}
	return result, nil
}
