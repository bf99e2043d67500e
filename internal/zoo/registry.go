package zoo

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a Model instance.
type Factory func() (Model, error)

type entry struct {
	desc    Description
	factory Factory
}

var (
	mu       sync.RWMutex
	registry = make(map[string]entry)
)

// Register makes a model available under its described name.
// It panics if the name is already taken; registration happens once
// at init time.
func Register(desc Description, factory Factory) {
	mu.Lock()
	defer mu.Unlock()

	if desc.Name == "" {
		panic("zoo: Register with empty model name")
	}
	if _, dup := registry[desc.Name]; dup {
		panic(fmt.Sprintf("zoo: Register called twice for model %q", desc.Name))
	}
	registry[desc.Name] = entry{desc: desc, factory: factory}
}

// Describe returns the description of a registered model without
// instantiating it.
func Describe(name string) (Description, error) {
	mu.RLock()
	e, ok := registry[name]
	mu.RUnlock()

	if !ok {
		return Description{}, fmt.Errorf("model %q is not registered", name)
	}
	return e.desc, nil
}

// Get resolves a registered model by name.
func Get(name string) (Model, error) {
	mu.RLock()
	e, ok := registry[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("model %q is not registered", name)
	}
	return e.factory()
}

// List returns the names of all registered models, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
