// Package catalog loads menu definitions from a YAML file.
//
// A catalog lists menus; each menu names its grid geometry, borders and
// widgets. Widgets with a slot are pinned on every page, widgets without one
// become paginated items. Click bindings name an action string that is turned
// into a call on a Host when the binding fires.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

// DefaultSize is used for menus that do not declare one.
const DefaultSize = 54

// ErrUnknownMenu is returned when an action or back-link names a menu the
// catalog does not define.
var ErrUnknownMenu = errors.New("unknown menu")

// Catalog is a parsed catalog file.
type Catalog struct {
	path     string
	registry *menu.Registry
	previous map[string]string

	rootTitle   string
	rootStatics map[int]*menu.Widget
	rootItems   []*menu.Widget
}

// Load reads and parses the catalog at path.
func Load(path string, host Host) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		events.Catalog.Error(path, err)
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, host)
	if err != nil {
		events.Catalog.Error(path, err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.path = path
	events.Catalog.Load(path, c.registry.Len())
	return c, nil
}

// Parse builds a catalog from YAML data.
func Parse(data []byte, host Host) (*Catalog, error) {
	var doc fileSpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if host == nil {
		host = nopHost{}
	}

	c := &Catalog{
		registry:    menu.NewRegistry(nil),
		previous:    make(map[string]string),
		rootStatics: make(map[int]*menu.Widget),
	}
	known := make(map[string]bool, len(doc.Menus)+1)
	known[menu.RootID] = true
	for _, m := range doc.Menus {
		known[strings.TrimSpace(m.ID)] = true
	}

	for i, spec := range doc.Menus {
		id := strings.TrimSpace(spec.ID)
		if id == "" {
			return nil, fmt.Errorf("menu %d: id required", i)
		}
		def, err := spec.build(host, known)
		if err != nil {
			return nil, fmt.Errorf("menu %q: %w", id, err)
		}
		if id == menu.RootID {
			c.rootTitle = spec.Title
			c.rootStatics = def.StaticWidgets()
			c.rootItems = def.Items()
			continue
		}
		def.SetID(id)
		if err := c.registry.Register(def); err != nil {
			return nil, err
		}
		if prev := strings.TrimSpace(spec.Previous); prev != "" {
			if !known[prev] {
				return nil, fmt.Errorf("menu %q: previous %q: %w", id, prev, ErrUnknownMenu)
			}
			c.previous[id] = prev
		}
	}
	c.link()
	return c, nil
}

// Path returns the file the catalog was loaded from.
func (c *Catalog) Path() string { return c.path }

// Find returns the definition registered under id. The root is only
// available after Attach.
func (c *Catalog) Find(id string) (*menu.Definition, bool) {
	return c.registry.Find(id)
}

// IDs lists every menu, including the root once attached.
func (c *Catalog) IDs() []string { return c.registry.IDs() }

// RootTitle returns the title declared for the root menu, if any.
func (c *Catalog) RootTitle() string { return c.rootTitle }

// Attach adds the catalog's root widgets to root, makes it the registry root
// and points every menu whose previous menu is the root at it. Call it each
// time the root definition is rebuilt.
func (c *Catalog) Attach(root *menu.Definition) error {
	if root == nil {
		return nil
	}
	for slot, w := range c.rootStatics {
		if err := root.AddStaticWidget(slot, w); err != nil {
			return fmt.Errorf("root widget: %w", err)
		}
	}
	for _, w := range c.rootItems {
		root.AddItem(w)
	}
	c.registry.SetRoot(root)
	c.link()
	return nil
}

func (c *Catalog) link() {
	for id, prev := range c.previous {
		def, ok := c.registry.Find(id)
		if !ok {
			continue
		}
		if target, ok := c.registry.Find(prev); ok {
			def.SetPrevious(target)
		}
	}
}
