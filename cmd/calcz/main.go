package main

import (
	"context"
	"fmt"
	"os"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	_ "github.com/xaionaro-go/qimpedance/pkg/acf/implementations/godsp"
	_ "github.com/xaionaro-go/qimpedance/pkg/acf/implementations/gonum"
	_ "github.com/xaionaro-go/qimpedance/pkg/acf/implementations/radix2"
	"github.com/xaionaro-go/qimpedance/pkg/config"
	"github.com/xaionaro-go/qimpedance/pkg/pipeline"
)

const defaultInput = "total_charges.out"

func main() {
	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	summaryFlag := pflag.Bool("summary", false, "print a decimated admittance/impedance table to stdout")
	summaryRows := pflag.Int("summary-rows", pipeline.DefaultSummaryRows, "amount of frequencies in the summary")
	config.RegisterFlags(pflag.CommandLine)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [%s]\n", os.Args[0], defaultInput)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	input := defaultInput
	switch pflag.NArg() {
	case 0:
	case 1:
		input = pflag.Arg(0)
	default:
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(pflag.CommandLine)
	assertNoError(err)
	logger.Debugf(ctx, "config: %#+v", cfg)

	logger.Infof(ctx, "Start")
	result, paths, err := pipeline.RunFile(ctx, cfg, input)
	assertNoError(err)
	for _, path := range paths {
		logger.Debugf(ctx, "written: %s", path)
	}

	if *summaryFlag {
		assertNoError(pipeline.WriteSummary(os.Stdout, result, *summaryRows))
	}
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
