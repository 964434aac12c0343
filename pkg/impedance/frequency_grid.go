package impedance

import (
	"github.com/hashicorp/go-multierror"
)

// Validate checks that every frequency is finite and strictly positive:
// the oscillatory kernel divides by ω³. All offending indices are reported.
func (g FrequencyGrid) Validate(stage string) error {
	if len(g) == 0 {
		return Malformed(stage, "empty frequency grid")
	}

	var mErr *multierror.Error
	for idx, w := range g {
		if !(w > 0) || !IsFinite(w) {
			mErr = multierror.Append(mErr, InvalidFrequencyError{
				Stage: stage,
				Index: idx,
				Value: w,
			})
		}
	}
	return mErr.ErrorOrNil()
}
