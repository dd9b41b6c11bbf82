package tmux_test

import (
	"slices"
	"testing"

	"github.com/atomicstack/tmux-popup-grid/internal/testutil"
	"github.com/atomicstack/tmux-popup-grid/internal/tmux"
)

func TestSessionsAgainstRealServer(t *testing.T) {
	socket := testutil.StartTmuxServer(t, "alpha", "beta")

	snap, err := tmux.FetchSessions(socket)
	if err != nil {
		t.Fatalf("FetchSessions: %v", err)
	}
	names := snap.Names()
	if !slices.Contains(names, "alpha") || !slices.Contains(names, "beta") {
		t.Fatalf("expected alpha and beta, got %v", names)
	}

	if err := tmux.KillSession(socket, "beta"); err != nil {
		t.Fatalf("KillSession: %v", err)
	}
	snap, err = tmux.FetchSessions(socket)
	if err != nil {
		t.Fatalf("FetchSessions after kill: %v", err)
	}
	if slices.Contains(snap.Names(), "beta") {
		t.Fatalf("expected beta gone, got %v", snap.Names())
	}
}
