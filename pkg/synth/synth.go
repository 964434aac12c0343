// Package synth generates synthetic total-charge series with a known
// autocorrelation.
package synth

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/xaionaro-go/datacounter"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
	"gonum.org/v1/gonum/stat/distuv"
)

const stage = "synth"

type OrnsteinUhlenbeck struct {
	// Tau0Steps is the relaxation time in samples.
	Tau0Steps float64

	// Sigma is the stationary standard deviation.
	Sigma float64

	Seed uint64
}

func (p OrnsteinUhlenbeck) Validate() error {
	if !(p.Tau0Steps > 0) || !impedance.IsFinite(p.Tau0Steps) {
		return impedance.Malformed(stage, "the relaxation time must be positive, got %v", p.Tau0Steps)
	}
	if !(p.Sigma >= 0) || !impedance.IsFinite(p.Sigma) {
		return impedance.Malformed(stage, "sigma must not be negative, got %v", p.Sigma)
	}
	return nil
}

// Decay is the one-step autoregression coefficient exp(-1/Tau0Steps).
func (p OrnsteinUhlenbeck) Decay() float64 {
	return math.Exp(-1 / p.Tau0Steps)
}

// Generate returns an exactly discretized stationary Ornstein-Uhlenbeck
// sequence, whose autocorrelation is Sigma²·Decay()^|lag|.
func (p OrnsteinUhlenbeck) Generate(steps int) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if steps <= 0 {
		return nil, impedance.Malformed(stage, "the amount of steps must be positive, got %d", steps)
	}

	normal := distuv.Normal{
		Mu:    0,
		Sigma: 1,
		Src:   rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15),
	}
	a := p.Decay()
	noise := p.Sigma * math.Sqrt(1-a*a)

	x := make([]float64, steps)
	x[0] = p.Sigma * normal.Rand()
	for i := 1; i < steps; i++ {
		x[i] = a*x[i-1] + noise*normal.Rand()
	}
	return x, nil
}

// HeaderLines is the amount of comment lines WriteTotalCharges emits
// before the data.
const HeaderLines = 3

// WriteTotalCharges writes the series in the total_charges.out layout:
// three header lines and then "step charge -charge" rows.
func WriteTotalCharges(w io.Writer, charges []float64) (uint64, error) {
	wc := datacounter.NewWriterCounter(w)
	bw := bufio.NewWriter(wc)
	fmt.Fprintf(bw, "# total charges (synthetic)\n")
	fmt.Fprintf(bw, "# step  electrode_1  electrode_2\n")
	fmt.Fprintf(bw, "# ----------------------------------\n")
	for i, q := range charges {
		if _, err := fmt.Fprintf(bw, "%d %.17e %.17e\n", i, q, -q); err != nil {
			return wc.Count(), fmt.Errorf("unable to write row %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return wc.Count(), fmt.Errorf("unable to flush: %w", err)
	}
	return wc.Count(), nil
}
