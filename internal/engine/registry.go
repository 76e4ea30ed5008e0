package engine

import (
	"fmt"
	"sync"
)

// Factory builds a new engine handle. Factories must return an error rather
// than a nil Engine when the backend cannot start.
type Factory func(cfg Config) (Engine, error)

// Registered backend names.
const (
	BackendRecord = "record"
	BackendTcell  = "tcell"
	BackendImage  = "image"
)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)

	// Selection order for Default: real surfaces first, recording last.
	priority = []string{BackendTcell, BackendImage, BackendRecord}
)

func init() {
	Register(BackendRecord, func(cfg Config) (Engine, error) {
		return NewRecorder(cfg), nil
	})
}

// Register installs a backend factory under name. Backend packages call this
// from their init functions; a later registration under the same name
// replaces the earlier one.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// Open builds a handle with the named backend. An empty name selects the
// default backend by priority order.
func Open(name string, cfg Config) (Engine, error) {
	if name == "" {
		return openDefault(cfg)
	}

	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}

	e, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInitFailed, name, err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s returned no handle", ErrInitFailed, name)
	}
	return e, nil
}

func openDefault(cfg Config) (Engine, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range priority {
		factory, ok := factories[name]
		if !ok {
			continue
		}
		if e, err := factory(cfg); err == nil && e != nil {
			return e, nil
		}
	}
	return nil, ErrBackendNotAvailable
}
