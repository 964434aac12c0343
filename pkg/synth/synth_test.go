package synth

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/qimpedance/pkg/chargeio"
	"github.com/xaionaro-go/qimpedance/pkg/impedance"
	"gonum.org/v1/gonum/stat"
)

func TestOrnsteinUhlenbeck_Statistics(t *testing.T) {
	p := OrnsteinUhlenbeck{Tau0Steps: 5, Sigma: 2, Seed: 42}
	x, err := p.Generate(200000)
	require.NoError(t, err)

	mean, std := stat.MeanStdDev(x, nil)
	assert.InDelta(t, 0, mean, 0.1)
	assert.InDelta(t, 2, std, 0.1)

	// lag-1 correlation coefficient
	lag1 := stat.Correlation(x[:len(x)-1], x[1:], nil)
	assert.InDelta(t, p.Decay(), lag1, 0.02)
}

func TestOrnsteinUhlenbeck_Deterministic(t *testing.T) {
	p := OrnsteinUhlenbeck{Tau0Steps: 3, Sigma: 1, Seed: 7}
	a, err := p.Generate(100)
	require.NoError(t, err)
	b, err := p.Generate(100)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	p.Seed = 8
	c, err := p.Generate(100)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestOrnsteinUhlenbeck_Errors(t *testing.T) {
	_, err := OrnsteinUhlenbeck{Tau0Steps: 0, Sigma: 1}.Generate(10)
	require.ErrorIs(t, err, impedance.ErrMalformedInput)
	_, err = OrnsteinUhlenbeck{Tau0Steps: 1, Sigma: math.NaN()}.Generate(10)
	require.ErrorIs(t, err, impedance.ErrMalformedInput)
	_, err = OrnsteinUhlenbeck{Tau0Steps: 1, Sigma: 1}.Generate(0)
	require.ErrorIs(t, err, impedance.ErrMalformedInput)
}

func TestWriteTotalCharges_ReadBack(t *testing.T) {
	charges := []float64{0.5, -1.25, 3e-7}
	var buf bytes.Buffer
	n, err := WriteTotalCharges(&buf, charges)
	require.NoError(t, err)
	assert.Equal(t, uint64(buf.Len()), n)

	ts, err := chargeio.ReadCharges(context.Background(), &buf, chargeio.ReadOptions{
		HeaderLines:      HeaderLines,
		TimeStep:         1,
		ElementaryCharge: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, charges, ts.Value)
	assert.Equal(t, []float64{0, 1, 2}, ts.Time)
}
