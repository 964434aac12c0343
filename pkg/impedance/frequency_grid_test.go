package impedance

import (
	"errors"
	"math"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyGridValidate(t *testing.T) {
	require.NoError(t, FrequencyGrid{1, 2, 3}.Validate("test"))
	require.ErrorIs(t, FrequencyGrid{}.Validate("test"), ErrMalformedInput)

	err := FrequencyGrid{1, 0, -2, math.NaN(), math.Inf(1), 5}.Validate("test")
	require.ErrorIs(t, err, ErrInvalidFrequency)

	var mErr *multierror.Error
	require.True(t, errors.As(err, &mErr))
	require.Len(t, mErr.Errors, 4)

	var indices []int
	for _, e := range mErr.Errors {
		var freqErr InvalidFrequencyError
		require.ErrorAs(t, e, &freqErr)
		indices = append(indices, freqErr.Index)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, indices)
}
