// Package parquet exports the computed tables as Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/parquet-go/parquet-go"
	"github.com/xaionaro-go/datacounter"
	"github.com/xaionaro-go/qimpedance/pkg/chargeio"
)

// Extension replaces the ".out" suffix of the text tables.
const Extension = ".parquet"

// TimeSeriesRow is one sample of a QACF table.
type TimeSeriesRow struct {
	// Time is the lag in seconds
	Time float64 `parquet:"time_s,snappy"`

	// Value is the (windowed) charge autocorrelation in C^2
	Value float64 `parquet:"value,snappy"`
}

// SpectrumRow is one frequency of an admittance or impedance table.
type SpectrumRow struct {
	// Frequency is the angular frequency in rad/s
	Frequency float64 `parquet:"frequency_rad_s,snappy"`

	Real float64 `parquet:"real,snappy"`
	Imag float64 `parquet:"imag,snappy"`
}

func FileName(table chargeio.Table) string {
	return strings.TrimSuffix(table.Name, ".out") + Extension
}

func TimeSeriesRows(table chargeio.Table) ([]TimeSeriesRow, error) {
	if table.Kind != chargeio.TableKindTimeSeries || len(table.Columns) != 2 {
		return nil, fmt.Errorf("table '%s' is not a time series (kind %s, %d columns)", table.Name, table.Kind, len(table.Columns))
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	rows := make([]TimeSeriesRow, table.Rows())
	for i := range rows {
		rows[i] = TimeSeriesRow{
			Time:  table.Columns[0][i],
			Value: table.Columns[1][i],
		}
	}
	return rows, nil
}

func SpectrumRows(table chargeio.Table) ([]SpectrumRow, error) {
	if table.Kind != chargeio.TableKindSpectrum || len(table.Columns) != 3 {
		return nil, fmt.Errorf("table '%s' is not a spectrum (kind %s, %d columns)", table.Name, table.Kind, len(table.Columns))
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	rows := make([]SpectrumRow, table.Rows())
	for i := range rows {
		rows[i] = SpectrumRow{
			Frequency: table.Columns[0][i],
			Real:      table.Columns[1][i],
			Imag:      table.Columns[2][i],
		}
	}
	return rows, nil
}

// WriteTableFile writes the table to outputPath, picking the row schema by the table kind.
func WriteTableFile(
	ctx context.Context,
	outputPath string,
	table chargeio.Table,
) (uint64, error) {
	switch table.Kind {
	case chargeio.TableKindTimeSeries:
		rows, err := TimeSeriesRows(table)
		if err != nil {
			return 0, err
		}
		return writeRows(ctx, outputPath, rows)
	case chargeio.TableKindSpectrum:
		rows, err := SpectrumRows(table)
		if err != nil {
			return 0, err
		}
		return writeRows(ctx, outputPath, rows)
	default:
		return 0, fmt.Errorf("unsupported table kind %s of table '%s'", table.Kind, table.Name)
	}
}

func writeRows[T any](
	ctx context.Context,
	outputPath string,
	rows []T,
) (_ uint64, _err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			_err = multierror.Append(_err, fmt.Errorf("unable to close '%s': %w", outputPath, err)).ErrorOrNil()
		}
	}()

	wc := datacounter.NewWriterCounter(file)
	writer := parquet.NewGenericWriter[T](wc)
	if _, err := writer.Write(rows); err != nil {
		var mErr *multierror.Error
		mErr = multierror.Append(mErr, fmt.Errorf("failed to write data to parquet file: %w", err))
		if err := writer.Close(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to close the parquet writer: %w", err))
		}
		return wc.Count(), mErr.ErrorOrNil()
	}
	if err := writer.Close(); err != nil {
		return wc.Count(), fmt.Errorf("unable to close the parquet writer: %w", err)
	}

	logger.Debugf(ctx, "wrote %d rows to '%s' (%d bytes)", len(rows), outputPath, wc.Count())
	return wc.Count(), nil
}
