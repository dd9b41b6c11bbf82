package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

const sample = `
menus:
  - id: root
    title: ignored by attach
    widgets:
      - slot: 45
        name: Tools
        icon: chest
        color: yellow
        bindings:
          - kinds: [left]
            action: open:tools
      - name: scratch
        icon: note
  - id: tools
    title: Tools
    size: 27
    previous: root
    search_rows: [0, 1]
    offsets: [1]
    inline_nav: true
    page_numbers: true
    borders:
      2: purple
    search_mode: fuzzy
    widgets:
      - name: New window
        icon: window
        lore: [opens a window]
        permissions:
          tmux.window.new: Ask an admin
          tmux.window.*: Nearly there
        bindings:
          - kinds: [left, shift_left]
            action: "tmux: new-window"
          - action: message:hello
      - slot: 26
        name: Search logs
        bindings:
          - kinds: [right]
            action: search:log
`

type recordingHost struct {
	calls []string
	err   error
}

func (h *recordingHost) record(call string) error {
	h.calls = append(h.calls, call)
	return h.err
}

func (h *recordingHost) OpenMenu(id string) error     { return h.record("open " + id) }
func (h *recordingHost) Back() error                  { return h.record("back") }
func (h *recordingHost) Close()                       { h.record("close") }
func (h *recordingHost) NextPage() error              { return h.record("next") }
func (h *recordingHost) PreviousPage() error          { return h.record("previous") }
func (h *recordingHost) Search(keyword string)        { h.record("search " + keyword) }
func (h *recordingHost) RunTmux(command string) error { return h.record("tmux " + command) }
func (h *recordingHost) Message(text string)          { h.calls = append(h.calls, "message "+text) }

func fireAll(w *menu.Widget, kind menu.ClickKind) {
	for _, b := range w.MatchingBindings(kind) {
		b.Action()
	}
}

func TestParseBuildsMenus(t *testing.T) {
	host := &recordingHost{}
	c, err := Parse([]byte(sample), host)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff([]string{"tools"}, c.IDs()); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}

	tools, ok := c.Find("tools")
	if !ok {
		t.Fatal("expected tools menu")
	}
	if tools.Size() != 27 || tools.Title() != "Tools" {
		t.Fatalf("unexpected tools menu %q/%d", tools.Title(), tools.Size())
	}
	layout := tools.Layout()
	if layout.SearchStart != 0 || layout.SearchEnd != 1 || layout.TopOffset != 2 || layout.BottomOffset != 2 {
		t.Fatalf("unexpected layout %+v", layout)
	}
	if !tools.InlineNavigation() || !tools.ShowPageNumbers() || tools.SearchMode() != menu.SearchFuzzy {
		t.Fatal("expected inline nav, page numbers and fuzzy search")
	}
	if diff := cmp.Diff(map[int]menu.Color{2: menu.ColorPurple}, tools.Borders()); diff != "" {
		t.Fatalf("unexpected borders (-want +got):\n%s", diff)
	}
	if tools.ItemCount() != 1 || len(tools.StaticWidgets()) != 1 {
		t.Fatalf("expected one item and one static, got %d/%d", tools.ItemCount(), len(tools.StaticWidgets()))
	}

	item := tools.Items()[0]
	if diff := cmp.Diff([]string{"opens a window"}, item.Payload.Lore); diff != "" {
		t.Fatalf("unexpected lore (-want +got):\n%s", diff)
	}
	want := []menu.Permission{
		{Node: "tmux.window.new", Message: "Ask an admin"},
		{Node: "tmux.window.*", Message: "Nearly there"},
	}
	if diff := cmp.Diff(want, item.Permissions()); diff != "" {
		t.Fatalf("unexpected permissions (-want +got):\n%s", diff)
	}

	fireAll(item, menu.ShiftLeft)
	fireAll(item, menu.Middle)
	fireAll(tools.StaticWidgets()[26], menu.Right)
	wantCalls := []string{"tmux new-window", "message hello", "message hello", "search log"}
	if diff := cmp.Diff(wantCalls, host.calls); diff != "" {
		t.Fatalf("unexpected host calls (-want +got):\n%s", diff)
	}
}

func TestAttachMergesRootAndLinksPrevious(t *testing.T) {
	host := &recordingHost{}
	c, err := Parse([]byte(sample), host)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tools, _ := c.Find("tools")
	if tools.Previous() != nil {
		t.Fatal("expected previous unresolved before attach")
	}

	root, err := menu.NewDefinition("sessions", 54)
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	if err := c.Attach(root); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if tools.Previous() != root {
		t.Fatal("expected tools to link back to root")
	}
	if root.ID() != menu.RootID || root.ItemCount() != 1 {
		t.Fatalf("expected root id and catalog item, got %q/%d", root.ID(), root.ItemCount())
	}
	fireAll(root.StaticWidgets()[45], menu.Left)
	if diff := cmp.Diff([]string{"open tools"}, host.calls); diff != "" {
		t.Fatalf("unexpected host calls (-want +got):\n%s", diff)
	}

	rebuilt, _ := menu.NewDefinition("sessions", 54)
	if err := c.Attach(rebuilt); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if tools.Previous() != rebuilt {
		t.Fatal("expected back-link to follow the rebuilt root")
	}
}

func TestActionErrorsReportedAsMessages(t *testing.T) {
	host := &recordingHost{err: errors.New("no server")}
	c, err := Parse([]byte(`
menus:
  - id: m
    size: 9
    widgets:
      - slot: 0
        name: run
        bindings:
          - action: tmux:list-sessions
`), host)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, _ := c.Find("m")
	fireAll(m.StaticWidgets()[0], menu.Left)
	if diff := cmp.Diff([]string{"tmux list-sessions", "message no server"}, host.calls); diff != "" {
		t.Fatalf("unexpected host calls (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"missing id":      {doc: "menus: [{title: x}]"},
		"bad size":        {doc: "menus: [{id: a, size: 10}]", want: menu.ErrInvalidSize},
		"unknown open":    {doc: "menus: [{id: a, widgets: [{name: x, bindings: [{action: 'open:nope'}]}]}]", want: ErrUnknownMenu},
		"unknown prev":    {doc: "menus: [{id: a, previous: nope}]", want: ErrUnknownMenu},
		"bad verb":        {doc: "menus: [{id: a, widgets: [{name: x, bindings: [{action: 'explode'}]}]}]"},
		"bad kind":        {doc: "menus: [{id: a, widgets: [{name: x, bindings: [{kinds: [twist], action: close}]}]}]"},
		"bad colour":      {doc: "menus: [{id: a, widgets: [{name: x, color: mauve}]}]"},
		"bad border":      {doc: "menus: [{id: a, size: 9, borders: {3: red}}]", want: menu.ErrInvalidRow},
		"bad range":       {doc: "menus: [{id: a, search_rows: [0]}]", want: menu.ErrInvalidRange},
		"inline no box":   {doc: "menus: [{id: a, inline_nav: true}]", want: menu.ErrNoSearchBox},
		"slot outside":    {doc: "menus: [{id: a, size: 9, widgets: [{slot: 9, name: x}]}]", want: menu.ErrInvalidSlot},
		"duplicate":       {doc: "menus: [{id: a}, {id: a}]", want: menu.ErrDuplicateMenu},
		"bad permissions": {doc: "menus: [{id: a, widgets: [{name: x, permissions: 3}]}]"},
		"not yaml":        {doc: "menus: ["},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPermissionListForm(t *testing.T) {
	c, err := Parse([]byte("menus: [{id: a, widgets: [{name: x, permissions: [p.one, p.two]}]}]"), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a, _ := c.Find("a")
	perms := a.Items()[0].Permissions()
	if len(perms) != 2 || perms[0].Node != "p.one" || perms[1].Message != menu.DefaultDenyMessage {
		t.Fatalf("unexpected permissions %+v", perms)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menus.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Path() != path {
		t.Fatalf("expected path %q, got %q", path, c.Path())
	}
	if c.RootTitle() != "ignored by attach" {
		t.Fatalf("unexpected root title %q", c.RootTitle())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil || !strings.Contains(err.Error(), "read catalog") {
		t.Fatalf("expected read error, got %v", err)
	}
}
