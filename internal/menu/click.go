package menu

import (
	"fmt"
	"strings"
)

// ClickKind classifies a click on a grid slot.
type ClickKind int

const (
	Left ClickKind = iota
	Right
	Middle
	ShiftLeft
	ShiftRight
	Drop
	// Any matches every click kind, including ones added later.
	Any
)

var clickKindNames = map[ClickKind]string{
	Left:       "left",
	Right:      "right",
	Middle:     "middle",
	ShiftLeft:  "shift-left",
	ShiftRight: "shift-right",
	Drop:       "drop",
	Any:        "any",
}

func (k ClickKind) String() string {
	if name, ok := clickKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("click(%d)", int(k))
}

// ParseClickKind resolves a click kind from its name. Underscores and spaces
// are accepted in place of dashes.
func ParseClickKind(name string) (ClickKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)
	for kind, known := range clickKindNames {
		if known == normalized {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown click kind %q", name)
}

// Action is the deferred operation run when a binding matches.
type Action func()

// ClickBinding ties an action to the click kinds that trigger it.
type ClickBinding struct {
	Kinds  []ClickKind
	Action Action
}

// Bind creates a binding for the given kinds. With no kinds the binding
// matches every click.
func Bind(action Action, kinds ...ClickKind) ClickBinding {
	if len(kinds) == 0 {
		kinds = []ClickKind{Any}
	}
	dup := make([]ClickKind, len(kinds))
	copy(dup, kinds)
	return ClickBinding{Kinds: dup, Action: action}
}

// Matches reports whether the binding fires for the observed click kind.
func (b ClickBinding) Matches(observed ClickKind) bool {
	for _, kind := range b.Kinds {
		if kind == observed || kind == Any {
			return true
		}
	}
	return false
}
