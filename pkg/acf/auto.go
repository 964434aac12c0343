package acf

import (
	"context"
	"fmt"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/qimpedance/pkg/acf/registry"
	"github.com/xaionaro-go/qimpedance/pkg/acf/types"
)

const AutoBackendName = "auto"

var (
	lastSuccessfulBackendFactory       types.BackendFactory
	lastSuccessfulBackendFactoryLocker sync.Mutex
)

func getLastSuccessfulBackendFactory() types.BackendFactory {
	lastSuccessfulBackendFactoryLocker.Lock()
	defer lastSuccessfulBackendFactoryLocker.Unlock()
	return lastSuccessfulBackendFactory
}

func setLastSuccessfulBackendFactory(factory types.BackendFactory) {
	lastSuccessfulBackendFactoryLocker.Lock()
	defer lastSuccessfulBackendFactoryLocker.Unlock()
	lastSuccessfulBackendFactory = factory
}

// AutoBackend tries every registered backend in priority order. The
// backend that succeeded last is shared by all AutoBackend values and
// is tried first next time.
type AutoBackend struct{}

var _ Backend = (*AutoBackend)(nil)

func NewAutoBackend() *AutoBackend {
	return &AutoBackend{}
}

func (*AutoBackend) Autocorrelate(
	ctx context.Context,
	centered []float64,
) ([]float64, error) {
	if factory := getLastSuccessfulBackendFactory(); factory != nil {
		result, err := factory.NewBackend().Autocorrelate(ctx, centered)
		logger.Debugf(ctx, "autocorrelating with the last successful backend '%s' result is %v", factory.Name(), err)
		if err == nil {
			return result, nil
		}
	}

	var mErr *multierror.Error
	for _, factory := range registry.BackendFactories() {
		result, err := factory.NewBackend().Autocorrelate(ctx, centered)
		logger.Debugf(ctx, "autocorrelating with backend '%s' result is %v", factory.Name(), err)
		if err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("backend '%s': %w", factory.Name(), err))
			continue
		}

		setLastSuccessfulBackendFactory(factory)
		return result, nil
	}

	if mErr == nil {
		return nil, fmt.Errorf("no ACF backends are registered")
	}
	return nil, mErr.ErrorOrNil()
}
