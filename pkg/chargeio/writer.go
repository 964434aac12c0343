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
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/datacounter"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
)

// WriteTable writes "# <header>" followed by one line per row with the
// columns formatted as %.18e and separated by a single space. It returns
// the amount of bytes written.
func WriteTable(
	ctx context.Context,
	w io.Writer,
	table Table,
) (uint64, error) {
	if err := table.Validate(); err != nil {
		return 0, fmt.Errorf("unable to write table '%s': %w", table.Name, err)
	}

	wc := datacounter.NewWriterCounter(w)
	bw := bufio.NewWriter(wc)
	if _, err := fmt.Fprintf(bw, "# %s\n", table.Header); err != nil {
		return wc.Count(), fmt.Errorf("unable to write the header: %w", err)
	}

	var line []byte
	for row := 0; row < table.Rows(); row++ {
		line = line[:0]
		for col, values := range table.Columns {
			if col > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendFloat(line, values[row], 'e', 18, 64)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return wc.Count(), fmt.Errorf("unable to write row %d: %w", row, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return wc.Count(), fmt.Errorf("unable to flush: %w", err)
	}

	logger.Debugf(ctx, "wrote table '%s': %d rows, %d bytes", table.Name, table.Rows(), wc.Count())
	return wc.Count(), nil
}

func WriteTableFile(
	ctx context.Context,
	path string,
	table Table,
) (_ uint64, _err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("unable to create '%s': %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			_err = multierror.Append(_err, fmt.Errorf("unable to close '%s': %w", path, err)).ErrorOrNil()
		}
	}()

	return WriteTable(ctx, f, table)
}

// ReadTable parses the layout produced by WriteTable.
func ReadTable(r io.Reader) (Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var (
		table   Table
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if lineNum == 1 {
				table.Header = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			}
			continue
		}

		fields := strings.Fields(line)
		if table.Columns == nil {
			table.Columns = make([][]float64, len(fields))
		}
		if len(fields) != len(table.Columns) {
			return Table{}, impedance.MalformedInputError{
				Stage:  stage,
				Index:  lineNum,
				Reason: fmt.Sprintf("expected %d columns, got %d", len(table.Columns), len(fields)),
			}
		}
		for col, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Table{}, impedance.MalformedInputError{
					Stage:  stage,
					Index:  lineNum,
					Reason: fmt.Sprintf("column %d: invalid number '%s'", col+1, field),
				}
			}
			table.Columns[col] = append(table.Columns[col], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return Table{}, fmt.Errorf("unable to read line %d: %w", lineNum+1, err)
	}
	return table, nil
}
