package app

import "testing"

func TestOracleGrantsViewerPermissions(t *testing.T) {
	cfg := Config{Viewer: "alice", Permissions: []string{"tmux.session.*"}}
	oracle := cfg.Oracle()
	if !oracle.HasPermission("alice", "tmux.session.kill") {
		t.Fatal("expected alice to hold tmux.session.kill")
	}
	if oracle.HasPermission("bob", "tmux.session.kill") {
		t.Fatal("expected bob to lack tmux.session.kill")
	}
}

func TestOracleWithoutPermissionsDeniesAll(t *testing.T) {
	oracle := Config{Viewer: "alice"}.Oracle()
	if oracle.HasPermission("alice", "tmux.session.kill") {
		t.Fatal("expected no grants by default")
	}
}
