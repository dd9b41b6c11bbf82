package dispatcher

import (
	"github.com/atomicstack/tmux-popup-grid/internal/backend"
	"github.com/atomicstack/tmux-popup-grid/internal/state"
	"github.com/atomicstack/tmux-popup-grid/internal/tmux"
)

type Result struct {
	SessionsUpdated bool
	CatalogChanged  bool
}

type Dispatcher struct {
	sessions state.SessionStore
	catalog  state.CatalogStore
}

func New(s state.SessionStore, c state.CatalogStore) *Dispatcher {
	return &Dispatcher{sessions: s, catalog: c}
}

// Handle folds evt into the stores. The first catalog stamp only seeds the
// store; later stamps report a change.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindSessions:
		if snapshot, ok := evt.Data.(tmux.SessionSnapshot); ok {
			d.sessions.SetEntries(snapshot.Sessions)
			d.sessions.SetCurrent(snapshot.Current)
			res.SessionsUpdated = true
		}
	case backend.KindCatalog:
		if stamp, ok := evt.Data.(backend.CatalogStamp); ok {
			seeded := d.catalog.Path() != ""
			if d.catalog.Observe(stamp.Path, stamp.ModTime, stamp.Size) && seeded {
				res.CatalogChanged = true
			}
		}
	}
	return res
}
