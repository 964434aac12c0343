package radix2

import (
	"github.com/xaionaro-go/qimpedance/pkg/acf/registry"
	"github.com/xaionaro-go/qimpedance/pkg/acf/types"
)

const (
	Name     = "radix2"
	Priority = 10
)

func init() {
	registry.RegisterBackendFactory(Priority, BackendFactory{})
}

type BackendFactory struct{}

func (BackendFactory) Name() string {
	return Name
}

func (BackendFactory) NewBackend() types.Backend {
	return New()
}
