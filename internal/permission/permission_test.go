package permission

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCovers(t *testing.T) {
	cases := []struct {
		grant, perm string
		want        bool
	}{
		{"*", "tmux.session.kill", true},
		{"tmux.*", "tmux.session.kill", true},
		{"tmux.session.*", "tmux.session.kill", true},
		{"tmux.session.kill", "tmux.session.kill", true},
		{"tmux.window.*", "tmux.session.kill", false},
		{"tmux", "tmux.session.kill", false},
		{"tmux.session.k", "tmux.session.kill", false},
		{"", "tmux", false},
		{"*", "", false},
	}
	for _, tc := range cases {
		if got := Covers(tc.grant, tc.perm); got != tc.want {
			t.Fatalf("Covers(%q, %q): expected %v, got %v", tc.grant, tc.perm, tc.want, got)
		}
	}
}

func TestStaticGrants(t *testing.T) {
	oracle := NewStatic("menu.open")
	oracle.Grant("alice", "tmux.session.*", " ", "tmux.session.*")

	if !oracle.HasPermission("bob", "menu.open") {
		t.Fatal("expected everyone grant to apply")
	}
	if oracle.HasPermission("bob", "tmux.session.kill") {
		t.Fatal("expected bob to lack kill")
	}
	if !oracle.HasPermission("alice", "tmux.session.kill") {
		t.Fatal("expected alice wildcard grant")
	}
	if diff := cmp.Diff([]string{"menu.open", "tmux.session.*"}, oracle.Grants("alice")); diff != "" {
		t.Fatalf("unexpected grants (-want +got):\n%s", diff)
	}

	oracle.Revoke("alice", "tmux.session.*")
	if oracle.HasPermission("alice", "tmux.session.kill") {
		t.Fatal("expected revoked grant to stop applying")
	}
}

func TestPartialPermission(t *testing.T) {
	oracle := NewStatic()
	oracle.Grant("carol", "tmux.session.switch")

	if !oracle.HasPartialPermission("carol", "tmux.session.kill") {
		t.Fatal("expected sibling grant to count as partial")
	}
	if oracle.HasPartialPermission("carol", "tmux.window.kill") {
		t.Fatal("expected unrelated node not to be partial")
	}
	if oracle.HasPartialPermission("carol", "kill") {
		t.Fatal("expected single segment node never partial")
	}
}

func TestParseList(t *testing.T) {
	got := ParseList(" a.b , ,c.*,")
	if diff := cmp.Diff([]string{"a.b", "c.*"}, got); diff != "" {
		t.Fatalf("unexpected list (-want +got):\n%s", diff)
	}
}
