// Package registry keeps one canonical weave.BlockType per name and loads
// whole pipelines (block types plus agents) from YAML manifests.
//
// BlockType equality is structural, so two independently constructed types
// sharing a name already compare equal. What a registry adds is an explicit
// home for a pipeline's vocabulary: instead of scattering package-level
// BlockType globals, define the names in one place and pass the registry
// through configuration.
//
//	reg := registry.New()
//	topic := reg.Define("Topic")
//	questions := reg.Define("ResearchQuestions")
package registry

import (
	"sort"
	"sync"

	"github.com/blockweave/weave"
)

// Registry maps names to canonical weave.BlockType values. The zero value is
// not usable; create one with [New]. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]weave.BlockType
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]weave.BlockType)}
}

// Define returns the block type registered under name, creating it on first
// use. Defining the same name twice returns the same value, so independent
// packages sharing a registry can never end up with diverging types.
// An empty name returns the zero BlockType, which the core rejects at use.
func (r *Registry) Define(name string) weave.BlockType {
	if name == "" {
		return weave.BlockType{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.types[name]; ok {
		return t
	}
	t := weave.NewBlockType(name)
	r.types[name] = t
	return t
}

// Lookup returns the block type registered under name, if any.
func (r *Registry) Lookup(name string) (weave.BlockType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]
	return t, ok
}

// Types returns all registered block types, sorted by name.
func (r *Registry) Types() []weave.BlockType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]weave.BlockType, 0, len(r.types))
	for _, t := range r.types {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].Name() < types[j].Name()
	})
	return types
}
