package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// SwitchClient points clientID (or the current client when empty) at the
// target session.
func SwitchClient(socketPath, clientID, target string) error {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return fmt.Errorf("session target required")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	opts := &gotmux.SwitchClientOptions{TargetSession: trimmed}
	if strings.TrimSpace(clientID) != "" {
		opts.TargetClient = clientID
	}
	return client.SwitchClient(opts)
}

// DetachSession detaches every client from target. Sessions without clients
// are left alone.
func DetachSession(socketPath, target string) error {
	return withSession(socketPath, target, func(client tmuxClient, name string, session sessionHandle) error {
		hasClient, err := sessionHasClient(client, name)
		if err != nil || !hasClient {
			return err
		}
		return session.Detach()
	})
}

// KillSession kills target.
func KillSession(socketPath, target string) error {
	return withSession(socketPath, target, func(_ tmuxClient, _ string, session sessionHandle) error {
		return session.Kill()
	})
}

func withSession(socketPath, target string, fn func(tmuxClient, string, sessionHandle) error) error {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return fmt.Errorf("session target required")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := findSession(client, trimmed)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session %s not found", trimmed)
	}
	return fn(client, sessionName(trimmed), session)
}

func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_POPUP_GRID_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func sessionName(target string) string {
	if idx := strings.IndexRune(target, ':'); idx > 0 {
		return target[:idx]
	}
	return target
}

func findSession(client tmuxClient, target string) (sessionHandle, error) {
	session, err := client.GetSessionByName(sessionName(target))
	if err != nil {
		return nil, err
	}
	return newSessionHandle(session), nil
}

func sessionHasClient(client tmuxClient, session string) (bool, error) {
	clients, err := client.ListClients()
	if err != nil {
		return false, err
	}
	for _, c := range clients {
		if c == nil || c.ControlMode {
			continue
		}
		if strings.TrimSpace(c.Session) == session {
			return true, nil
		}
	}
	return false, nil
}

// CurrentClientID returns the name of the client that launched the popup, so
// switch-client targets the visible client rather than the control-mode
// connection. Empty when it cannot be determined.
func CurrentClientID(socketPath string) string {
	client, err := newTmux(socketPath)
	if err != nil {
		return ""
	}
	defer client.Close()
	name, err := client.DisplayMessage(strings.TrimSpace(os.Getenv("TMUX_PANE")), "#{client_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}
