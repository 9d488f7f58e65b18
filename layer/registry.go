// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"fmt"
	"sort"
)

// Registry owns layers by ID. Relations between layers (an equirect and its
// source) are stored as IDs and resolved here, so removing a layer is
// immediately visible to everything that refers to it.
//
// Registry is NOT safe for concurrent use; it lives on the render thread.
type Registry struct {
	layers map[ID]Layer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{layers: make(map[ID]Layer)}
}

// Add takes ownership of l.
func (r *Registry) Add(l Layer) error {
	if _, ok := r.layers[l.ID()]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, l.ID())
	}
	r.layers[l.ID()] = l
	return nil
}

// Lookup returns the layer with id.
func (r *Registry) Lookup(id ID) (Layer, bool) {
	l, ok := r.layers[id]
	return l, ok
}

// Remove destroys the layer with id and forgets it.
// Returns false if no such layer exists.
func (r *Registry) Remove(id ID) bool {
	l, ok := r.layers[id]
	if !ok {
		return false
	}
	l.Destroy()
	delete(r.layers, id)
	return true
}

// Len returns the number of layers.
func (r *Registry) Len() int {
	return len(r.layers)
}

// IDs returns the registered IDs in ascending order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.layers))
	for id := range r.layers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clear destroys and forgets every layer.
func (r *Registry) Clear() {
	for id, l := range r.layers {
		l.Destroy()
		delete(r.layers, id)
	}
}
