// Package chargeio reads total-charge series and writes the computed
// tables in the plain-text column layout.
package chargeio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
)

const stage = "chargeio"

const (
	DefaultHeaderLines      = 3
	DefaultTimeStep         = 1e-15
	DefaultElementaryCharge = 1.602176620898e-19

	// ChargeColumn is the zero-based column holding the total charge
	// in elementary-charge units.
	ChargeColumn = 1

	maxLineLength = 1 << 20
)

type ReadOptions struct {
	HeaderLines      int
	TimeStep         float64
	ElementaryCharge float64
}

func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		HeaderLines:      DefaultHeaderLines,
		TimeStep:         DefaultTimeStep,
		ElementaryCharge: DefaultElementaryCharge,
	}
}

func (opts ReadOptions) Validate() error {
	if opts.HeaderLines < 0 {
		return impedance.Malformed(stage, "negative amount of header lines: %d", opts.HeaderLines)
	}
	if !(opts.TimeStep > 0) || !impedance.IsFinite(opts.TimeStep) {
		return impedance.Malformed(stage, "the time step must be positive: %v", opts.TimeStep)
	}
	if !(opts.ElementaryCharge > 0) || !impedance.IsFinite(opts.ElementaryCharge) {
		return impedance.Malformed(stage, "the elementary charge must be positive: %v", opts.ElementaryCharge)
	}
	return nil
}

// ReadCharges parses a total-charges table: the first HeaderLines lines
// are skipped, blank lines and lines starting with '#' are ignored, and
// every other line must have at least two whitespace-separated numeric
// columns. The charge column is converted to Coulombs and the i-th row
// is placed at time i·TimeStep.
func ReadCharges(
	ctx context.Context,
	r io.Reader,
	opts ReadOptions,
) (impedance.TimeSeries, error) {
	if err := opts.Validate(); err != nil {
		return impedance.TimeSeries{}, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var (
		charges []float64
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		if lineNum <= opts.HeaderLines {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) <= ChargeColumn {
			return impedance.TimeSeries{}, impedance.MalformedInputError{
				Stage:  stage,
				Index:  lineNum,
				Reason: fmt.Sprintf("expected at least %d columns, got %d", ChargeColumn+1, len(fields)),
			}
		}
		for col, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil || !impedance.IsFinite(v) {
				return impedance.TimeSeries{}, impedance.MalformedInputError{
					Stage:  stage,
					Index:  lineNum,
					Reason: fmt.Sprintf("column %d: invalid number '%s'", col+1, field),
				}
			}
			if col == ChargeColumn {
				charges = append(charges, v*opts.ElementaryCharge)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return impedance.TimeSeries{}, fmt.Errorf("unable to read line %d: %w", lineNum+1, err)
	}
	if len(charges) == 0 {
		return impedance.TimeSeries{}, impedance.Malformed(stage, "no data rows after %d lines", lineNum)
	}

	ts := impedance.TimeSeries{
		Time:  make([]float64, len(charges)),
		Value: charges,
	}
	for i := range ts.Time {
		ts.Time[i] = float64(i) * opts.TimeStep
	}
	logger.Debugf(ctx, "read %d charge samples (%d lines)", len(charges), lineNum)
	return ts, nil
}

func ReadChargesFile(
	ctx context.Context,
	path string,
	opts ReadOptions,
) (impedance.TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return impedance.TimeSeries{}, fmt.Errorf("unable to open '%s': %w", path, err)
	}
	defer f.Close()

	ts, err := ReadCharges(ctx, f, opts)
	if err != nil {
		return impedance.TimeSeries{}, fmt.Errorf("unable to parse '%s': %w", path, err)
	}
	return ts, nil
}
