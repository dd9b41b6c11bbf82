package events

import "github.com/atomicstack/tmux-popup-grid/internal/logging"

type MenuTracer struct{}

type ClickTracer struct{}

type CatalogTracer struct{}

var (
	Menu    = MenuTracer{}
	Click   = ClickTracer{}
	Catalog = CatalogTracer{}
)

func (MenuTracer) Open(viewer, menuID, title string, page int) {
	logging.Trace("menu.open", map[string]any{"viewer": viewer, "menu": menuID, "title": title, "page": page})
}

func (MenuTracer) Reopen(viewer, menuID, keyword string, page int) {
	logging.Trace("menu.reopen", map[string]any{"viewer": viewer, "menu": menuID, "keyword": keyword, "page": page})
}

func (MenuTracer) Page(viewer, menuID string, page, maxPage int) {
	logging.Trace("menu.page", map[string]any{"viewer": viewer, "menu": menuID, "page": page, "max": maxPage})
}

func (MenuTracer) Search(viewer, menuID, keyword string, matches int) {
	logging.Trace("menu.search", map[string]any{"viewer": viewer, "menu": menuID, "keyword": keyword, "matches": matches})
}

func (MenuTracer) Sort(viewer, menuID string) {
	logging.Trace("menu.sort", map[string]any{"viewer": viewer, "menu": menuID})
}

func (MenuTracer) Close(viewer string) {
	logging.Trace("menu.close", map[string]any{"viewer": viewer})
}

// NavFailed is logged when a navigation control could not change page or
// open the previous menu.
func (MenuTracer) NavFailed(viewer, menuID, control string, err error) {
	logging.Trace("menu.nav.error", map[string]any{"viewer": viewer, "menu": menuID, "control": control, "error": err.Error()})
}

func (ClickTracer) NoSession(viewer string, slot int) {
	logging.Trace("click.no-session", map[string]any{"viewer": viewer, "slot": slot})
}

func (ClickTracer) Blocked(viewer, menuID string, slot int) {
	logging.Trace("click.blocked", map[string]any{"viewer": viewer, "menu": menuID, "slot": slot})
}

func (ClickTracer) NoWidget(viewer, menuID string, slot int) {
	logging.Trace("click.no-widget", map[string]any{"viewer": viewer, "menu": menuID, "slot": slot})
}

func (ClickTracer) Denied(viewer, menuID string, slot int, message string) {
	logging.Trace("click.denied", map[string]any{"viewer": viewer, "menu": menuID, "slot": slot, "message": message})
}

func (ClickTracer) Dispatch(viewer, menuID string, slot int, kind string) {
	logging.Trace("click.dispatch", map[string]any{"viewer": viewer, "menu": menuID, "slot": slot, "kind": kind})
}

func (CatalogTracer) Load(path string, menus int) {
	logging.Trace("catalog.load", map[string]any{"path": path, "menus": menus})
}

func (CatalogTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("catalog.error", map[string]any{"path": path, "error": err.Error()})
}
