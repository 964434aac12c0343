package chargeio_test

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/qimpedance/pkg/chargeio"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
)

const sampleTotalCharges = `# total charges
# step   electrode_1   electrode_2
# -----------------------------------
0 1.0 -1.0
1 -2.5 2.5

# restart
2 4e-1 -4e-1
3	0.0	0.0
`

func TestReadCharges(t *testing.T) {
	ctx := context.Background()
	ts, err := chargeio.ReadCharges(ctx, strings.NewReader(sampleTotalCharges), chargeio.DefaultReadOptions())
	require.NoError(t, err)

	e := chargeio.DefaultElementaryCharge
	assert.Equal(t, []float64{1.0 * e, -2.5 * e, 0.4 * e, 0}, ts.Value)
	require.Len(t, ts.Time, 4)
	for i, v := range ts.Time {
		assert.Equal(t, float64(i)*1e-15, v)
	}
}

func TestReadCharges_Options(t *testing.T) {
	ctx := context.Background()
	input := "header\n0 2\n1 3\n2 5\n"
	ts, err := chargeio.ReadCharges(ctx, strings.NewReader(input), chargeio.ReadOptions{
		HeaderLines:      1,
		TimeStep:         2,
		ElementaryCharge: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 4}, ts.Time)
	assert.Equal(t, []float64{20, 30, 50}, ts.Value)
}

func TestReadCharges_HeaderIsSkippedVerbatim(t *testing.T) {
	ctx := context.Background()
	// the header lines are not parsed even when they look like data
	input := "0 100\n1 100\n2 100\n3 7\n"
	ts, err := chargeio.ReadCharges(ctx, strings.NewReader(input), chargeio.ReadOptions{
		HeaderLines:      3,
		TimeStep:         1,
		ElementaryCharge: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, ts.Value)
}

func TestReadCharges_Malformed(t *testing.T) {
	ctx := context.Background()
	opts := chargeio.ReadOptions{HeaderLines: 0, TimeStep: 1, ElementaryCharge: 1}

	for name, tc := range map[string]struct {
		input string
		line  int
	}{
		"single column":  {input: "0 1\n1\n", line: 2},
		"not a number":   {input: "0 1\n1 2\n2 abc\n", line: 3},
		"not finite":     {input: "0 NaN\n", line: 1},
		"bad step field": {input: "x 1\n", line: 1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := chargeio.ReadCharges(ctx, strings.NewReader(tc.input), opts)
			require.ErrorIs(t, err, impedance.ErrMalformedInput)
			var malformed impedance.MalformedInputError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tc.line, malformed.Index)
		})
	}

	_, err := chargeio.ReadCharges(ctx, strings.NewReader("# nothing\n\n"), opts)
	require.ErrorIs(t, err, impedance.ErrMalformedInput)

	_, err = chargeio.ReadCharges(ctx, strings.NewReader("0 1\n"), chargeio.ReadOptions{HeaderLines: -1, TimeStep: 1, ElementaryCharge: 1})
	require.ErrorIs(t, err, impedance.ErrMalformedInput)

	_, err = chargeio.ReadCharges(ctx, strings.NewReader("0 1\n"), chargeio.ReadOptions{TimeStep: math.NaN(), ElementaryCharge: 1})
	require.ErrorIs(t, err, impedance.ErrMalformedInput)
}

func TestReadChargesFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "total_charges.out")
	require.NoError(t, os.WriteFile(path, []byte(sampleTotalCharges), 0o644))

	ts, err := chargeio.ReadChargesFile(ctx, path, chargeio.DefaultReadOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, ts.Len())

	_, err = chargeio.ReadChargesFile(ctx, filepath.Join(t.TempDir(), "missing"), chargeio.DefaultReadOptions())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadCharges_LongInput(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	buf.WriteString("a\nb\nc\n")
	for i := 0; i < 10000; i++ {
		buf.WriteString("1 1\n")
	}
	ts, err := chargeio.ReadCharges(ctx, &buf, chargeio.DefaultReadOptions())
	require.NoError(t, err)
	assert.Equal(t, 10000, ts.Len())
}
