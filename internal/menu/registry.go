package menu

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// RootID identifies the menu opened at startup.
const RootID = "root"

// Registry exposes lookup utilities for menu definitions.
type Registry struct {
	root  *Definition
	nodes map[string]*Definition
}

// NewRegistry creates a registry whose root menu is root. The root's ID is
// forced to RootID.
func NewRegistry(root *Definition) *Registry {
	r := &Registry{nodes: make(map[string]*Definition)}
	if root != nil {
		root.SetID(RootID)
		r.root = root
		r.nodes[RootID] = root
	}
	return r
}

// Register adds def under its ID.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return fmt.Errorf("register: nil definition")
	}
	id := strings.TrimSpace(def.ID())
	if id == "" {
		return fmt.Errorf("register %q: menu id required", def.Title())
	}
	if _, ok := r.nodes[id]; ok {
		return fmt.Errorf("register %q: %w", id, ErrDuplicateMenu)
	}
	r.nodes[id] = def
	if id == RootID {
		r.root = def
	}
	return nil
}

// SetRoot replaces the root menu, forcing its ID to RootID.
func (r *Registry) SetRoot(def *Definition) {
	if def == nil {
		return
	}
	def.SetID(RootID)
	r.root = def
	r.nodes[RootID] = def
}

// Root returns the registry root.
func (r *Registry) Root() *Definition {
	return r.root
}

// Find locates a definition by ID.
func (r *Registry) Find(id string) (*Definition, bool) {
	def, ok := r.nodes[id]
	return def, ok
}

// IDs lists the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	return slices.Sorted(maps.Keys(r.nodes))
}

// Len returns the number of registered menus.
func (r *Registry) Len() int {
	return len(r.nodes)
}
