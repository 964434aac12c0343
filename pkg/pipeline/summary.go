package pipeline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// DefaultSummaryRows is the amount of frequencies shown by WriteSummary.
const DefaultSummaryRows = 10

// SummaryIndices picks up to rows indices evenly spread over [0, n),
// always including the first and the last one.
func SummaryIndices(n, rows int) []int {
	if n <= 0 || rows <= 0 {
		return nil
	}
	if rows >= n {
		rows = n
	}
	if rows == 1 {
		return []int{0}
	}
	indices := make([]int, rows)
	for i := range indices {
		indices[i] = i * (n - 1) / (rows - 1)
	}
	return indices
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'e', 4, 64)
}

// WriteSummary renders a decimated admittance/impedance table.
func WriteSummary(
	w io.Writer,
	result *Result,
	rows int,
) error {
	if len(result.Admittance) != len(result.Frequencies) || len(result.Impedance) != len(result.Frequencies) {
		return fmt.Errorf("inconsistent result: %d frequencies, %d admittances, %d impedances",
			len(result.Frequencies), len(result.Admittance), len(result.Impedance))
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "ω (rad/s)", "Re[Y] (1/Ohm)", "Im[Y] (1/Ohm)", "Re[Z] (Ohm)", "Im[Z] (Ohm)"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, idx := range SummaryIndices(len(result.Frequencies), rows) {
		y, z := result.Admittance[idx], result.Impedance[idx]
		data = append(data, []string{
			strconv.Itoa(idx),
			formatFloat(result.Frequencies[idx]),
			formatFloat(real(y)),
			formatFloat(imag(y)),
			formatFloat(real(z)),
			formatFloat(imag(z)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
