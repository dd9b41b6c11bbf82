package session

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/tmux-popup-grid/internal/display"
	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

func newDefinition(t *testing.T, title string, size, items int) *menu.Definition {
	t.Helper()
	def, err := menu.NewDefinition(title, size)
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	for i := range items {
		def.AddItem(menu.NewWidget(menu.Payload{Name: fmt.Sprintf("item-%02d", i)}))
	}
	return def
}

func shownNames(t *testing.T, mem *display.Memory, viewer string) []string {
	t.Helper()
	g, ok := mem.Shown(viewer)
	if !ok {
		t.Fatalf("expected grid shown to %s", viewer)
	}
	names := make([]string, len(g.Slots))
	for i, p := range g.Slots {
		if p != nil {
			names[i] = p.Name
		}
	}
	return names
}

func fire(t *testing.T, s *Session, slot int) {
	t.Helper()
	w, ok := s.StaticWidgets()[slot]
	if !ok {
		t.Fatalf("expected widget pinned at slot %d", slot)
	}
	for _, b := range w.MatchingBindings(menu.Left) {
		b.Action()
	}
}

func TestOpenFirstPage(t *testing.T) {
	mem := display.NewMemory()
	mgr := NewManager(mem, nil)
	def := newDefinition(t, "Shop", 54, 40)
	if err := def.SetSearchRows(0, 3); err != nil {
		t.Fatalf("SetSearchRows: %v", err)
	}

	s, err := mgr.Open("alice", def)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.MaxPage() != 1 {
		t.Fatalf("expected max page 1, got %d", s.MaxPage())
	}
	names := shownNames(t, mem, "alice")
	for i := range 35 {
		if want := fmt.Sprintf("item-%02d", i); names[i] != want {
			t.Fatalf("slot %d: expected %s, got %q", i, want, names[i])
		}
	}
	if names[35] != "Next Page" {
		t.Fatalf("expected next control at 35, got %q", names[35])
	}
	if names[36] != "" {
		t.Fatalf("expected no back control without a previous menu, got %q", names[36])
	}
}

func TestNextControlMovesToLastPage(t *testing.T) {
	mem := display.NewMemory()
	mgr := NewManager(mem, nil)
	def := newDefinition(t, "Shop", 54, 40)
	_ = def.SetSearchRows(0, 3)

	s, err := mgr.Open("alice", def)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	fire(t, s, 35)
	if s.Page() != 1 {
		t.Fatalf("expected page 1, got %d", s.Page())
	}

	names := shownNames(t, mem, "alice")
	want := []string{"item-36", "item-37", "item-38", "item-39"}
	if diff := cmp.Diff(want, names[:4]); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
	for i := 4; i <= 35; i++ {
		if names[i] != "" {
			t.Fatalf("expected slot %d cleared, got %q", i, names[i])
		}
	}
	if names[36] != "Previous Page" {
		t.Fatalf("expected previous control at 36, got %q", names[36])
	}

	fire(t, s, 36)
	if s.Page() != 0 {
		t.Fatalf("expected previous control to return to page 0, got %d", s.Page())
	}
}

func TestMiddlePageShowsNextAndPrevious(t *testing.T) {
	mem := display.NewMemory()
	mgr := NewManager(mem, nil)
	parent := newDefinition(t, "Parent", 27, 0)
	def := newDefinition(t, "Shop", 54, 80)
	_ = def.SetSearchRows(0, 3)
	def.SetPrevious(parent)

	s, err := mgr.Open("alice", def)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.MaxPage() != 2 {
		t.Fatalf("expected max page 2, got %d", s.MaxPage())
	}
	if err := s.GoToPage(1); err != nil {
		t.Fatalf("GoToPage: %v", err)
	}

	names := shownNames(t, mem, "alice")
	if names[0] != "item-36" {
		t.Fatalf("expected page 1 to start at item-36, got %q", names[0])
	}
	if names[35] != "Next Page" {
		t.Fatalf("expected next control at 35, got %q", names[35])
	}
	if names[36] != "Previous Page" {
		t.Fatalf("expected previous control to win over back at 36, got %q", names[36])
	}
}

func TestBackControlOpensPreviousMenu(t *testing.T) {
	mem := display.NewMemory()
	mgr := NewManager(mem, nil)
	parent := newDefinition(t, "Parent", 27, 0)
	child := newDefinition(t, "Child", 54, 10)
	_ = child.SetSearchRows(0, 3)
	child.SetPrevious(parent)

	s, err := mgr.Open("bob", child)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if names := shownNames(t, mem, "bob"); names[36] != "Back" {
		t.Fatalf("expected back control at 36, got %q", names[36])
	}
	fire(t, s, 36)

	current, ok := mgr.Lookup("bob")
	if !ok || current.Definition() != parent {
		t.Fatal("expected back control to open the parent menu")
	}
	if g, _ := mem.Shown("bob"); g.Title != "Parent" {
		t.Fatalf("expected parent grid shown, got %q", g.Title)
	}

	child.SetBackButton(false)
	s, _ = mgr.Open("bob", child)
	if _, ok := s.StaticWidgets()[36]; ok {
		t.Fatal("expected no back control when disabled")
	}
}

func TestSearchFiltersAndResets(t *testing.T) {
	mem := display.NewMemory()
	mgr := NewManager(mem, nil)
	def := newDefinition(t, "Shop", 54, 40)
	_ = def.SetSearchRows(0, 3)

	s, _ := mgr.Open("carol", def)
	_ = s.GoToPage(1)

	s.Search("ITEM-1")
	if s.Page() != 0 || s.MaxPage() != 0 {
		t.Fatalf("expected search to reset to a single page, got %d/%d", s.Page(), s.MaxPage())
	}
	if len(s.Items()) != 10 || s.Keyword() != "ITEM-1" {
		t.Fatalf("expected 10 matches, got %d", len(s.Items()))
	}
	names := shownNames(t, mem, "carol")
	if names[0] != "item-10" || names[9] != "item-19" || names[10] != "" {
		t.Fatalf("unexpected filtered grid %v", names[:11])
	}
	if names[35] != "" {
		t.Fatalf("expected no next control on a single page, got %q", names[35])
	}

	s.Search("")
	if len(s.Items()) != 40 || s.MaxPage() != 1 || s.Keyword() != "" {
		t.Fatalf("expected full list restored, got %d items", len(s.Items()))
	}
}

func TestFuzzySearch(t *testing.T) {
	mgr := NewManager(display.NewMemory(), nil)
	def := newDefinition(t, "Sessions", 27, 0)
	_ = def.SetSearchRows(0, 1)
	def.SetSearchMode(menu.SearchFuzzy)
	for _, name := range []string{"dotfiles", "scratch", "docs-site"} {
		def.AddItem(menu.NewWidget(menu.Payload{Name: name}))
	}
	s, _ := mgr.Open("v", def)
	s.Search("dsi")
	if len(s.Items()) != 1 || s.Items()[0].Payload.Name != "docs-site" {
		t.Fatalf("expected fuzzy match on docs-site, got %d items", len(s.Items()))
	}
}

func TestExactMultipleAddsTrailingPage(t *testing.T) {
	mem := display.NewMemory()
	mgr := NewManager(mem, nil)
	def := newDefinition(t, "Shop", 54, 72)
	_ = def.SetSearchRows(0, 3)

	s, _ := mgr.Open("dave", def)
	if s.MaxPage() != 2 {
		t.Fatalf("expected max page 2, got %d", s.MaxPage())
	}
	if err := s.GoToPage(2); err != nil {
		t.Fatalf("GoToPage(2): %v", err)
	}
	names := shownNames(t, mem, "dave")
	for i := range 36 {
		if names[i] != "" {
			t.Fatalf("expected empty trailing page, slot %d has %q", i, names[i])
		}
	}
	if names[36] != "Previous Page" {
		t.Fatalf("expected previous control, got %q", names[36])
	}
}

func TestGoToPageRejectsOutOfRange(t *testing.T) {
	mgr := NewManager(display.NewMemory(), nil)
	def := newDefinition(t, "Shop", 54, 40)
	_ = def.SetSearchRows(0, 3)

	s, _ := mgr.Open("erin", def)
	for _, page := range []int{-1, 2} {
		if err := s.GoToPage(page); !errors.Is(err, ErrInvalidPage) {
			t.Fatalf("page %d: expected ErrInvalidPage, got %v", page, err)
		}
	}
	if s.Page() != 0 {
		t.Fatalf("expected page unchanged, got %d", s.Page())
	}
	if _, err := mgr.OpenAt("erin", def, 5); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected OpenAt to reject page 5, got %v", err)
	}
	if current, _ := mgr.Lookup("erin"); current != s {
		t.Fatal("expected failed OpenAt to keep the existing session")
	}
}

func TestPageTitleRecreatesGrid(t *testing.T) {
	mem := display.NewMemory()
	mgr := NewManager(mem, nil)
	def := newDefinition(t, "Shop", 54, 40)
	_ = def.SetSearchRows(0, 3)
	def.SetShowPageNumbers(true, "")

	s, _ := mgr.Open("fay", def)
	first := s.Handle()
	if g, _ := mem.Shown("fay"); g.Title != "Shop (0/1)" {
		t.Fatalf("unexpected title %q", g.Title)
	}
	_ = s.NextPage()
	if s.Handle() == first {
		t.Fatal("expected a new grid for a new title")
	}
	g, _ := mem.Shown("fay")
	if g.Title != "Shop (1/1)" || g.Handle != s.Handle() {
		t.Fatalf("expected new grid shown, got %q", g.Title)
	}
	if _, ok := mem.Snapshot(first); ok {
		t.Fatal("expected old grid released")
	}
}

func TestBordersAndStaticsLayering(t *testing.T) {
	mem := display.NewMemory()
	mgr := NewManager(mem, nil)
	def := newDefinition(t, "Shop", 54, 3)
	_ = def.SetSearchRows(1, 4)
	_ = def.AddBorder(0, menu.ColorRed)
	_ = def.AddStaticWidget(4, menu.NewWidget(menu.Payload{Name: "hidden"}))
	_ = def.AddStaticWidget(49, menu.NewWidget(menu.Payload{Name: "close"}))

	s, _ := mgr.Open("gus", def)
	g, _ := mem.Shown("gus")
	for slot := range 9 {
		if p := g.Payload(slot); p == nil || p.Color != menu.ColorRed {
			t.Fatalf("expected red border at slot %d, got %+v", slot, p)
		}
	}
	if p := g.Payload(49); p == nil || p.Name != "close" {
		t.Fatalf("expected static widget at 49, got %+v", p)
	}
	if len(s.StaticWidgets()) != 10 {
		t.Fatalf("expected border and static widgets pinned, got %d", len(s.StaticWidgets()))
	}
}

func TestResolvePrefersStaticsThenLastSimilar(t *testing.T) {
	mgr := NewManager(display.NewMemory(), nil)
	def := newDefinition(t, "Shop", 27, 0)
	_ = def.SetSearchRows(0, 1)
	dup := menu.Payload{Name: "twin"}
	first := menu.NewWidget(dup)
	menu.Store(first, menu.NewKey[int]("n"), 1)
	second := menu.NewWidget(dup)
	menu.Store(second, menu.NewKey[int]("n"), 2)
	def.AddItem(first)
	def.AddItem(second)
	_ = def.AddStaticWidget(26, menu.NewWidget(menu.Payload{Name: "pinned"}))

	s, _ := mgr.Open("hal", def)
	w, ok := s.Resolve(1, &dup)
	if !ok {
		t.Fatal("expected item resolved")
	}
	if n, _ := menu.Load(w, menu.NewKey[int]("n")); n != 2 {
		t.Fatalf("expected last similar item, got %d", n)
	}
	if w, ok := s.Resolve(26, nil); !ok || w.Payload.Name != "pinned" {
		t.Fatal("expected static widget resolved by slot")
	}
	if _, ok := s.Resolve(5, &menu.Payload{Name: "other"}); ok {
		t.Fatal("expected unknown payload to miss")
	}
}

func TestSortPersistsAcrossSearch(t *testing.T) {
	mgr := NewManager(display.NewMemory(), nil)
	def := newDefinition(t, "Shop", 54, 12)
	_ = def.SetSearchRows(0, 3)

	s, _ := mgr.Open("ivy", def)
	s.Sort(func(a, b *menu.Widget) int { return strings.Compare(b.Payload.Name, a.Payload.Name) })
	if got := s.Items()[0].Payload.Name; got != "item-11" {
		t.Fatalf("expected descending order, got %s first", got)
	}
	s.Search("item-0")
	if got := s.Items()[0].Payload.Name; got != "item-09" {
		t.Fatalf("expected sort kept after search, got %s first", got)
	}
	if def.Items()[0].Payload.Name != "item-00" {
		t.Fatal("expected definition order untouched")
	}
}

func TestReopenKeepsKeywordAndClampsPage(t *testing.T) {
	mem := display.NewMemory()
	mgr := NewManager(mem, nil)
	def := newDefinition(t, "Shop", 54, 80)
	_ = def.SetSearchRows(0, 3)

	s, _ := mgr.Open("jo", def)
	_ = s.GoToPage(2)

	smaller := newDefinition(t, "Shop", 54, 40)
	_ = smaller.SetSearchRows(0, 3)
	re, err := mgr.Reopen("jo", smaller)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	if re.Page() != 1 {
		t.Fatalf("expected page clamped to 1, got %d", re.Page())
	}

	re.Search("item-3")
	again, _ := mgr.Reopen("jo", smaller)
	if again.Keyword() != "item-3" || len(again.Items()) != 10 {
		t.Fatalf("expected keyword carried over, got %q with %d items", again.Keyword(), len(again.Items()))
	}
}

func TestCloseForgetsSession(t *testing.T) {
	mem := display.NewMemory()
	mgr := NewManager(mem, nil)
	def := newDefinition(t, "Shop", 9, 0)
	_, _ = mgr.Open("kim", def)
	_, _ = mgr.Open("lee", def)
	if diff := cmp.Diff([]string{"kim", "lee"}, mgr.Viewers()); diff != "" {
		t.Fatalf("unexpected viewers (-want +got):\n%s", diff)
	}
	mgr.Close("kim")
	if _, ok := mgr.Lookup("kim"); ok {
		t.Fatal("expected session removed")
	}
	if mem.IsOpen("kim") {
		t.Fatal("expected display closed")
	}
	if err := mgr.Back("lee", nil); err != nil || mem.IsOpen("lee") {
		t.Fatal("expected back without a previous menu to close the display")
	}
}
