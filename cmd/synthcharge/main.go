package main

import (
	"context"
	"io"
	"os"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/qimpedance/pkg/synth"
)

func main() {
	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	steps := pflag.Int("steps", 1<<20, "amount of rows to generate")
	tau0Steps := pflag.Float64("tau0-steps", 1000, "relaxation time of the charge, in steps")
	sigma := pflag.Float64("sigma", 1, "standard deviation of the charge, in elementary charges")
	seed := pflag.Uint64("seed", 0, "random seed")
	output := pflag.String("output", "total_charges.out", "output file, '-' means stdout")
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	process := synth.OrnsteinUhlenbeck{
		Tau0Steps: *tau0Steps,
		Sigma:     *sigma,
		Seed:      *seed,
	}
	charges, err := process.Generate(*steps)
	assertNoError(err)

	var w io.Writer = os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		assertNoError(err)
		defer func() {
			assertNoError(f.Close())
		}()
		w = f
	}

	n, err := synth.WriteTotalCharges(w, charges)
	assertNoError(err)
	logger.Infof(ctx, "generated %d rows (%d bytes), decay per step %v", len(charges), n, process.Decay())
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
