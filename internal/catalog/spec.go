package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

type fileSpec struct {
	Menus []menuSpec `yaml:"menus"`
}

type menuSpec struct {
	ID            string         `yaml:"id"`
	Title         string         `yaml:"title"`
	Size          int            `yaml:"size"`
	Previous      string         `yaml:"previous"`
	SearchRows    []int          `yaml:"search_rows"`
	Offsets       []int          `yaml:"offsets"`
	InlineNav     bool           `yaml:"inline_nav"`
	PageRow       *int           `yaml:"page_row"`
	BackButton    *bool          `yaml:"back_button"`
	AllowCreative bool           `yaml:"allow_creative"`
	PageNumbers   bool           `yaml:"page_numbers"`
	PageFormat    string         `yaml:"page_format"`
	Borders       map[int]string `yaml:"borders"`
	SearchMode    string         `yaml:"search_mode"`
	Widgets       []widgetSpec   `yaml:"widgets"`
}

type widgetSpec struct {
	Slot     *int          `yaml:"slot"`
	Name     string        `yaml:"name"`
	Icon     string        `yaml:"icon"`
	Lore     []string      `yaml:"lore"`
	Color    string        `yaml:"color"`
	Amount   int           `yaml:"amount"`
	Perms    yaml.Node     `yaml:"permissions"`
	Bindings []bindingSpec `yaml:"bindings"`
}

type bindingSpec struct {
	Kinds  []string `yaml:"kinds"`
	Action string   `yaml:"action"`
}

func (m menuSpec) build(host Host, known map[string]bool) (*menu.Definition, error) {
	size := m.Size
	if size == 0 {
		size = DefaultSize
	}
	def, err := menu.NewDefinition(m.Title, size)
	if err != nil {
		return nil, err
	}

	if len(m.SearchRows) > 0 {
		if len(m.SearchRows) != 2 {
			return nil, fmt.Errorf("search_rows: want [start, end], got %v: %w", m.SearchRows, menu.ErrInvalidRange)
		}
		if err := def.SetSearchRows(m.SearchRows[0], m.SearchRows[1]); err != nil {
			return nil, err
		}
	}
	switch len(m.Offsets) {
	case 0:
	case 1:
		if err := def.SetSymmetricOffset(m.Offsets[0]); err != nil {
			return nil, err
		}
	case 2:
		if err := def.SetSearchOffset(m.Offsets[0], m.Offsets[1]); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("offsets: want [top, bottom], got %v: %w", m.Offsets, menu.ErrInvalidRange)
	}
	if m.InlineNav {
		if err := def.SetInlineNavigation(true); err != nil {
			return nil, err
		}
	}
	if m.PageRow != nil {
		if err := def.SetPageRow(*m.PageRow); err != nil {
			return nil, err
		}
	}
	if m.BackButton != nil {
		def.SetBackButton(*m.BackButton)
	}
	def.SetAllowCreative(m.AllowCreative)
	if m.PageNumbers || m.PageFormat != "" {
		def.SetShowPageNumbers(true, m.PageFormat)
	}
	mode, err := menu.ParseSearchMode(m.SearchMode)
	if err != nil {
		return nil, err
	}
	def.SetSearchMode(mode)

	for row, name := range m.Borders {
		color, err := menu.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("border row %d: %w", row, err)
		}
		if err := def.AddBorder(row, color); err != nil {
			return nil, err
		}
	}

	for i, ws := range m.Widgets {
		w, err := ws.build(host, known)
		if err != nil {
			return nil, fmt.Errorf("widget %d (%s): %w", i, ws.Name, err)
		}
		if ws.Slot == nil {
			def.AddItem(w)
			continue
		}
		if err := def.AddStaticWidget(*ws.Slot, w); err != nil {
			return nil, err
		}
	}
	return def, nil
}

func (ws widgetSpec) build(host Host, known map[string]bool) (*menu.Widget, error) {
	color, err := menu.ParseColor(ws.Color)
	if err != nil {
		return nil, err
	}
	w := menu.NewWidget(menu.Payload{
		Name:   ws.Name,
		Icon:   ws.Icon,
		Lore:   ws.Lore,
		Color:  color,
		Amount: ws.Amount,
	})

	perms, err := permissionPairs(&ws.Perms)
	if err != nil {
		return nil, err
	}
	for _, p := range perms {
		w.RequirePermission(p[0], p[1])
	}

	for _, b := range ws.Bindings {
		kinds := make([]menu.ClickKind, 0, len(b.Kinds))
		for _, name := range b.Kinds {
			kind, err := menu.ParseClickKind(name)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, kind)
		}
		action, err := parseAction(b.Action, host, known)
		if err != nil {
			return nil, err
		}
		w.OnClick(menu.Bind(action, kinds...))
	}
	return w, nil
}

// permissionPairs reads the permissions mapping in document order. A plain
// list of nodes is accepted too and gets the default denial message.
func permissionPairs(node *yaml.Node) ([][2]string, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
		out := make([][2]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("permissions: line %d: want node: message", key.Line)
			}
			out = append(out, [2]string{key.Value, value.Value})
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([][2]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("permissions: line %d: want a node name", item.Line)
			}
			out = append(out, [2]string{item.Value, ""})
		}
		return out, nil
	}
	return nil, fmt.Errorf("permissions: line %d: want a mapping or list", node.Line)
}
