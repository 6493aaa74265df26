package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]Resource)
	registryMu sync.RWMutex
)

// Register adds a resource to the registry.
// Panics if a resource with the same key is already registered or if the
// descriptor is incomplete.
func Register(res Resource) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[res.Key]; exists {
		panic(fmt.Sprintf("resource already registered: %s", res.Key))
	}
	if res.Key == "" || res.Table == "" {
		panic(fmt.Sprintf("resource %q needs a key and a table", res.Key))
	}
	if res.Kind == KindFact && len(res.Fields) == 0 {
		panic(fmt.Sprintf("fact resource %s has no fields", res.Key))
	}

	// Fill defaults so callers only describe what differs.
	fields := make([]Field, len(res.Fields))
	for i, f := range res.Fields {
		if f.Column == "" {
			f.Column = f.Name
		}
		fields[i] = f
	}
	res.Fields = fields

	if len(res.Order) == 0 {
		if res.Kind == KindCountry {
			res.Order = countryOrder
		} else {
			res.Order = factOrder
		}
	}

	registry[res.Key] = res
}

// Get returns a resource by key.
// Returns false if not found.
func Get(key string) (Resource, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	res, ok := registry[key]
	return res, ok
}

// All returns all registered resources sorted by key.
func All() []Resource {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Resource, 0, len(registry))
	for _, res := range registry {
		result = append(result, res)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// ByTag returns the resources carrying a tag, sorted by key.
func ByTag(tag Tag) []Resource {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []Resource
	for _, res := range registry {
		if res.Tag == tag {
			result = append(result, res)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// Count returns the number of registered resources.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered resources.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Resource)
}
