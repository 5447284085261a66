package bundle

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is a function that creates a new Bundler instance.
// Used for dynamic bundler registration via init() functions.
type Factory func(cfg Config) Bundler

// Global registry for bundler factories.
// Bundlers register themselves via init() functions.
var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register registers a bundler factory globally.
// This is typically called from init() functions in bundler packages.
// Returns an error if a bundler with the same name is already registered.
func Register(name string, factory Factory) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		return fmt.Errorf("bundler %s already registered", name)
	}

	factories[name] = factory
	return nil
}

// MustRegister is a convenience function that panics on registration error.
// Use this in init() functions where registration must succeed.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}

// Get instantiates a registered bundler by name with the given config.
func Get(name string, cfg Config) (Bundler, bool) {
	mu.RLock()
	defer mu.RUnlock()

	factory, ok := factories[name]
	if !ok {
		return nil, false
	}
	return factory(cfg), true
}

// Names returns all registered bundler names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
