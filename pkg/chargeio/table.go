package chargeio

import (
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
)

const (
	FileQACF         = "QACF.out"
	FileWindowedQACF = "QACF_window.out"
	FileAdmittance   = "Admittance.out"
	FileImpedance    = "Impedance.out"

	HeaderQACF         = "Time (s) / QACF (C^2)"
	HeaderWindowedQACF = "Time (s) / Windowed QACF (C^2)"
	HeaderAdmittance   = "Frequency (rad/s) / Re[Y] (1/Ohm) / Im[Y] (1/Ohm)"
	HeaderImpedance    = "Frequency (rad/s) / Re[Z] (Ohm) / Im[Z] (Ohm)"
)

type TableKind int

const (
	TableKindUndefined = TableKind(iota)
	TableKindTimeSeries
	TableKindSpectrum
)

func (k TableKind) String() string {
	switch k {
	case TableKindUndefined:
		return "undefined"
	case TableKindTimeSeries:
		return "time_series"
	case TableKindSpectrum:
		return "spectrum"
	default:
		return "unknown"
	}
}

// Table is a set of equally long numeric columns with a one-line header.
type Table struct {
	Name    string
	Kind    TableKind
	Header  string
	Columns [][]float64
}

func (t Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0])
}

func (t Table) Validate() error {
	if len(t.Columns) == 0 {
		return impedance.Malformed(stage, "table '%s' has no columns", t.Name)
	}
	var mErr *multierror.Error
	for idx, col := range t.Columns[1:] {
		if len(col) != len(t.Columns[0]) {
			mErr = multierror.Append(mErr, impedance.MalformedInputError{
				Stage:  stage,
				Index:  idx + 1,
				Reason: "column length differs from the first column",
			})
		}
	}
	return mErr.ErrorOrNil()
}

func NewQACFTable(time, acf []float64) Table {
	return Table{
		Name:    FileQACF,
		Kind:    TableKindTimeSeries,
		Header:  HeaderQACF,
		Columns: [][]float64{time, acf},
	}
}

func NewWindowedQACFTable(time, acf []float64) Table {
	return Table{
		Name:    FileWindowedQACF,
		Kind:    TableKindTimeSeries,
		Header:  HeaderWindowedQACF,
		Columns: [][]float64{time, acf},
	}
}

func NewAdmittanceTable(freqs impedance.FrequencyGrid, y impedance.ComplexSpectrum) Table {
	return Table{
		Name:    FileAdmittance,
		Kind:    TableKindSpectrum,
		Header:  HeaderAdmittance,
		Columns: [][]float64{freqs, y.Real(), y.Imag()},
	}
}

func NewImpedanceTable(freqs impedance.FrequencyGrid, z impedance.ComplexSpectrum) Table {
	return Table{
		Name:    FileImpedance,
		Kind:    TableKindSpectrum,
		Header:  HeaderImpedance,
		Columns: [][]float64{freqs, z.Real(), z.Imag()},
	}
}
