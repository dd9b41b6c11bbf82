package testutil

import (
	"strings"
	"testing"
)

func TestStartTmuxServerCreatesSessions(t *testing.T) {
	socket := StartTmuxServer(t, "alpha", "beta")
	out, err := TmuxCommand(socket, "list-sessions", "-F", "#S").Output()
	if err != nil {
		t.Skipf("skipping: list-sessions failed: %v", err)
	}
	got := strings.Fields(string(out))
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Fatalf("expected alpha and beta, got %v", got)
	}
}
