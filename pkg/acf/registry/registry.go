package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/xaionaro-go/qimpedance/pkg/acf/types"
)

type backendFactoryWithPriority struct {
	Priority int
	types.BackendFactory
}

var (
	backendFactoryRegistry       = map[string]backendFactoryWithPriority{}
	backendFactoryRegistryLocker sync.Mutex
)

func RegisterBackendFactory(
	priority int,
	factory types.BackendFactory,
) {
	backendFactoryRegistryLocker.Lock()
	defer backendFactoryRegistryLocker.Unlock()
	name := factory.Name()
	if _, ok := backendFactoryRegistry[name]; ok {
		panic(fmt.Errorf("there is already registered an ACF backend factory with name '%s'", name))
	}
	backendFactoryRegistry[name] = backendFactoryWithPriority{
		Priority:       priority,
		BackendFactory: factory,
	}
}

// BackendFactories returns the registered factories, the highest priority first.
func BackendFactories() []types.BackendFactory {
	backendFactoryRegistryLocker.Lock()
	var factoriesWithPriorities []backendFactoryWithPriority
	for _, factory := range backendFactoryRegistry {
		factoriesWithPriorities = append(factoriesWithPriorities, factory)
	}
	backendFactoryRegistryLocker.Unlock()

	sort.Slice(factoriesWithPriorities, func(i, j int) bool {
		a, b := factoriesWithPriorities[i], factoriesWithPriorities[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Name() < b.Name()
	})

	var factories []types.BackendFactory
	for _, factory := range factoriesWithPriorities {
		factories = append(factories, factory.BackendFactory)
	}

	return factories
}

func Names() []string {
	var names []string
	for _, factory := range BackendFactories() {
		names = append(names, factory.Name())
	}
	return names
}

func Lookup(name string) (types.BackendFactory, error) {
	backendFactoryRegistryLocker.Lock()
	defer backendFactoryRegistryLocker.Unlock()
	factory, ok := backendFactoryRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown ACF backend '%s'", name)
	}
	return factory.BackendFactory, nil
}
