// Package config holds the physical and run parameters of an impedance
// calculation and loads them from defaults, a YAML file, the environment
// and command-line flags.
package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/qimpedance/pkg/chargeio"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
)

const stage = "config"

type Format string

const (
	FormatText    = Format("text")
	FormatParquet = Format("parquet")
)

func (f Format) Validate() error {
	switch f {
	case FormatText, FormatParquet:
		return nil
	default:
		return impedance.Malformed(stage, "unknown output format '%s' (expected '%s' or '%s')", f, FormatText, FormatParquet)
	}
}

type Interpolator string

const (
	InterpolatorLagrange    = Interpolator("lagrange")
	InterpolatorVandermonde = Interpolator("vandermonde")
)

const (
	DefaultTemperature = 298.0
	DefaultNFreq       = 100
	DefaultEpsilon     = 18.9e9
	DefaultTau         = 0.5e-9
	DefaultBoltzmann   = 1.3806485279e-23
	DefaultACFBackend  = "godsp"
	DefaultOutputDir   = "."
)

type Config struct {
	// Temperature is in K.
	Temperature float64 `mapstructure:"temperature"`

	// TimeStep is the simulated time per row of the input, in s.
	TimeStep float64 `mapstructure:"time-step"`

	NFreq int `mapstructure:"nfreq"`

	// Epsilon (1/s) and Tau (s) shape the ACF decay window.
	Epsilon float64 `mapstructure:"epsilon"`
	Tau     float64 `mapstructure:"tau"`

	Boltzmann        float64 `mapstructure:"boltzmann"`
	ElementaryCharge float64 `mapstructure:"elementary-charge"`
	HeaderLines      int     `mapstructure:"header-lines"`

	// Workers is the amount of quadrature goroutines; zero means GOMAXPROCS.
	Workers int `mapstructure:"workers"`

	ACFBackend   string       `mapstructure:"acf-backend"`
	Interpolator Interpolator `mapstructure:"interpolator"`
	OutputDir    string       `mapstructure:"output-dir"`
	Format       Format       `mapstructure:"format"`
}

func Default() Config {
	return Config{
		Temperature:      DefaultTemperature,
		TimeStep:         chargeio.DefaultTimeStep,
		NFreq:            DefaultNFreq,
		Epsilon:          DefaultEpsilon,
		Tau:              DefaultTau,
		Boltzmann:        DefaultBoltzmann,
		ElementaryCharge: chargeio.DefaultElementaryCharge,
		HeaderLines:      chargeio.DefaultHeaderLines,
		ACFBackend:       DefaultACFBackend,
		Interpolator:     InterpolatorLagrange,
		OutputDir:        DefaultOutputDir,
		Format:           FormatText,
	}
}

// Beta is the inverse thermal energy 1/(k_B·T) in 1/J.
func (c Config) Beta() float64 {
	return 1 / (c.Boltzmann * c.Temperature)
}

func (c Config) ReadOptions() chargeio.ReadOptions {
	return chargeio.ReadOptions{
		HeaderLines:      c.HeaderLines,
		TimeStep:         c.TimeStep,
		ElementaryCharge: c.ElementaryCharge,
	}
}

func (c Config) Validate() error {
	var mErr *multierror.Error
	positive := func(name string, v float64) {
		if !(v > 0) || !impedance.IsFinite(v) {
			mErr = multierror.Append(mErr, impedance.Malformed(stage, "'%s' must be a positive finite number, got %v", name, v))
		}
	}
	positive("temperature", c.Temperature)
	positive("time-step", c.TimeStep)
	positive("epsilon", c.Epsilon)
	positive("tau", c.Tau)
	positive("boltzmann", c.Boltzmann)
	positive("elementary-charge", c.ElementaryCharge)

	if c.NFreq < 2 {
		mErr = multierror.Append(mErr, impedance.Malformed(stage, "'nfreq' must be at least 2, got %d", c.NFreq))
	}
	if c.HeaderLines < 0 {
		mErr = multierror.Append(mErr, impedance.Malformed(stage, "'header-lines' must not be negative, got %d", c.HeaderLines))
	}
	if c.Workers < 0 {
		mErr = multierror.Append(mErr, impedance.Malformed(stage, "'workers' must not be negative, got %d", c.Workers))
	}
	if c.ACFBackend == "" {
		mErr = multierror.Append(mErr, impedance.Malformed(stage, "'acf-backend' is empty"))
	}
	switch c.Interpolator {
	case InterpolatorLagrange, InterpolatorVandermonde:
	default:
		mErr = multierror.Append(mErr, impedance.Malformed(stage, "unknown interpolator '%s'", c.Interpolator))
	}
	if err := c.Format.Validate(); err != nil {
		mErr = multierror.Append(mErr, err)
	}
	if err := mErr.ErrorOrNil(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
