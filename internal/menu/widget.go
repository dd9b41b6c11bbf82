package menu

import (
	"maps"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultDenyMessage is shown when a permission has no custom denial text.
const DefaultDenyMessage = "You don't have permission to use that!"

// Permission pairs a permission node with the text shown when it is missing.
type Permission struct {
	Node    string
	Message string
}

// Widget is a clickable grid entry: a payload plus click bindings, an
// optional permission gate and typed annotations.
type Widget struct {
	Payload Payload

	bindings    []ClickBinding
	permissions *orderedmap.OrderedMap[string, string]
	annotations map[string]any
}

// NewWidget wraps a payload.
func NewWidget(payload Payload) *Widget {
	return &Widget{
		Payload:     payload.Clone(),
		permissions: orderedmap.New[string, string](),
	}
}

// OnClick registers a binding. Bindings without an action are ignored.
func (w *Widget) OnClick(binding ClickBinding) *Widget {
	if binding.Action == nil {
		return w
	}
	w.bindings = append(w.bindings, Bind(binding.Action, binding.Kinds...))
	return w
}

// Bindings returns the registered bindings in registration order.
func (w *Widget) Bindings() []ClickBinding {
	return slices.Clone(w.bindings)
}

// MatchingBindings returns the bindings that fire for kind.
func (w *Widget) MatchingBindings(kind ClickKind) []ClickBinding {
	var matched []ClickBinding
	for _, b := range w.bindings {
		if b.Matches(kind) {
			matched = append(matched, b)
		}
	}
	return matched
}

// RequirePermission gates the widget behind node. An empty message falls back
// to DefaultDenyMessage. Re-adding a node replaces its message but keeps its
// original position.
func (w *Widget) RequirePermission(node, message string) *Widget {
	if node == "" {
		return w
	}
	if message == "" {
		message = DefaultDenyMessage
	}
	w.perms().Set(node, message)
	return w
}

// Permissions returns the required permissions in the order they were added.
func (w *Widget) Permissions() []Permission {
	if w.permissions == nil {
		return nil
	}
	out := make([]Permission, 0, w.permissions.Len())
	for pair := w.permissions.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Permission{Node: pair.Key, Message: pair.Value})
	}
	return out
}

// HasPermissions reports whether the widget is gated.
func (w *Widget) HasPermissions() bool {
	return w.permissions != nil && w.permissions.Len() > 0
}

// Clone returns an independent copy. Actions are shared; everything else is
// copied.
func (w *Widget) Clone() *Widget {
	if w == nil {
		return nil
	}
	dup := NewWidget(w.Payload)
	for _, b := range w.bindings {
		dup.bindings = append(dup.bindings, Bind(b.Action, b.Kinds...))
	}
	for _, p := range w.Permissions() {
		dup.permissions.Set(p.Node, p.Message)
	}
	if len(w.annotations) > 0 {
		dup.annotations = maps.Clone(w.annotations)
	}
	return dup
}

func (w *Widget) perms() *orderedmap.OrderedMap[string, string] {
	if w.permissions == nil {
		w.permissions = orderedmap.New[string, string]()
	}
	return w.permissions
}

// Key names a typed annotation slot on a widget.
type Key[T any] struct {
	name string
}

// NewKey creates an annotation key. Keys with the same name and type address
// the same slot.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the key's name.
func (k Key[T]) Name() string {
	return k.name
}

// Store attaches value to w under key, replacing any previous value.
func Store[T any](w *Widget, key Key[T], value T) *Widget {
	if w.annotations == nil {
		w.annotations = make(map[string]any)
	}
	w.annotations[key.name] = value
	return w
}

// Load fetches the value stored under key.
func Load[T any](w *Widget, key Key[T]) (T, bool) {
	var zero T
	if w == nil || w.annotations == nil {
		return zero, false
	}
	raw, ok := w.annotations[key.name]
	if !ok {
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return value, true
}
