package backend

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/tmux-popup-grid/internal/tmux"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindSessions Kind = iota
	KindCatalog
)

func (k Kind) String() string {
	switch k {
	case KindSessions:
		return "sessions"
	case KindCatalog:
		return "catalog"
	}
	return "unknown"
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data any
	Err  error
}

// CatalogStamp identifies one revision of the catalog file.
type CatalogStamp struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// errUnchanged tells poll to skip emitting for this tick.
var errUnchanged = errors.New("unchanged")

var (
	fetchSessions = tmux.FetchSessions
	statFile      = os.Stat
)

// Watcher polls tmux and the catalog file at a fixed interval and publishes
// events.
type Watcher struct {
	socketPath  string
	catalogPath string
	interval    time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events  chan Event
	refresh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls every interval. The catalog
// poller only runs when catalogPath is set.
func NewWatcher(socketPath, catalogPath string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 1500 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		socketPath:  socketPath,
		catalogPath: catalogPath,
		interval:    interval,
		ctx:         ctx,
		cancel:      cancel,
		events:      make(chan Event, 16),
		refresh:     make(chan struct{}, 1),
	}

	w.startSessionPoller()
	if catalogPath != "" {
		w.startCatalogPoller()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Refresh asks the session poller to fetch again without waiting for the
// next tick. Requests made while one is pending are merged.
func (w *Watcher) Refresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startSessionPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindSessions, w.refresh, func(ctx context.Context) (any, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		return fetchSessions(w.socketPath)
	})
}

func (w *Watcher) startCatalogPoller() {
	var last CatalogStamp
	w.wg.Add(1)
	go w.poll(KindCatalog, nil, func(ctx context.Context) (any, error) {
		info, err := statFile(w.catalogPath)
		if err != nil {
			return nil, err
		}
		stamp := CatalogStamp{Path: w.catalogPath, ModTime: info.ModTime(), Size: info.Size()}
		if stamp == last {
			return nil, errUnchanged
		}
		last = stamp
		return stamp, nil
	})
}

// poll emits on start, on every tick and whenever trigger fires. A nil
// trigger never fires.
func (w *Watcher) poll(kind Kind, trigger <-chan struct{}, fetch func(context.Context) (any, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		switch {
		case errors.Is(err, errUnchanged):
			return true
		case w.ctx.Err() != nil:
			return false
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		case <-trigger:
			if !emit() {
				return
			}
			ticker.Reset(w.interval)
		}
	}
}
