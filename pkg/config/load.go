package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "QIMPEDANCE"
	FlagConfig = "config"
)

// RegisterFlags defines one flag per configuration key (plus --config) on the given set.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String(FlagConfig, "", "path to a YAML config file")
	flags.Float64("temperature", d.Temperature, "temperature (K)")
	flags.Float64("time-step", d.TimeStep, "simulated time per input row (s)")
	flags.Int("nfreq", d.NFreq, "amount of frequencies in the log-spaced grid")
	flags.Float64("epsilon", d.Epsilon, "decay rate of the ACF window (1/s)")
	flags.Float64("tau", d.Tau, "cut-off time of the ACF window (s)")
	flags.Float64("boltzmann", d.Boltzmann, "Boltzmann constant (J/K)")
	flags.Float64("elementary-charge", d.ElementaryCharge, "elementary charge (C)")
	flags.Int("header-lines", d.HeaderLines, "amount of input header lines to skip")
	flags.Int("workers", d.Workers, "quadrature goroutines, 0 means GOMAXPROCS")
	flags.String("acf-backend", d.ACFBackend, "FFT backend of the autocorrelation: godsp, gonum, radix2 or auto")
	flags.String("interpolator", string(d.Interpolator), "segment interpolator: lagrange or vandermonde")
	flags.String("output-dir", d.OutputDir, "directory for the output tables")
	flags.String("format", string(d.Format), "output format: text or parquet")
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("temperature", d.Temperature)
	v.SetDefault("time-step", d.TimeStep)
	v.SetDefault("nfreq", d.NFreq)
	v.SetDefault("epsilon", d.Epsilon)
	v.SetDefault("tau", d.Tau)
	v.SetDefault("boltzmann", d.Boltzmann)
	v.SetDefault("elementary-charge", d.ElementaryCharge)
	v.SetDefault("header-lines", d.HeaderLines)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("acf-backend", d.ACFBackend)
	v.SetDefault("interpolator", string(d.Interpolator))
	v.SetDefault("output-dir", d.OutputDir)
	v.SetDefault("format", string(d.Format))
}

// Load resolves the configuration with the precedence
// flags > environment (QIMPEDANCE_*) > config file > defaults.
// flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile := v.GetString(FlagConfig); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file '%s': %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal the configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
