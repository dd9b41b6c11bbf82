package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-popup-grid/internal/logging/events"
	"github.com/atomicstack/tmux-popup-grid/internal/tmux"
	"github.com/atomicstack/tmux-popup-grid/internal/ui/command"
)

var (
	switchClient  = tmux.SwitchClient
	detachSession = tmux.DetachSession
	killSession   = tmux.KillSession
	runTmux       = tmux.RunCommand
	currentClient = tmux.CurrentClientID
)

func (m *Model) enqueueTmux(id, label string, run func() error, quit bool) {
	m.bus.Enqueue(command.Request{ID: id, Label: label, Run: run, Quit: quit})
}

func (m *Model) switchTo(name string) {
	m.enqueueTmux("tmux:switch", name, func() error {
		events.Tmux.Switch(name)
		return switchClient(m.socketPath, currentClient(m.socketPath), name)
	}, true)
}

func (m *Model) detach(name string) {
	m.enqueueTmux("tmux:detach", name, func() error {
		events.Tmux.Detach(name)
		return detachSession(m.socketPath, name)
	}, false)
}

func (m *Model) kill(name string) {
	m.enqueueTmux("tmux:kill", name, func() error {
		events.Tmux.Kill(name)
		return killSession(m.socketPath, name)
	}, false)
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	m.applyResult(res)
	return nil
}

func (m *Model) handleCommandResultsMsg(msg tea.Msg) tea.Cmd {
	results, ok := msg.(command.Results)
	if !ok {
		return nil
	}
	if m.inflight > 0 {
		m.inflight--
	}
	for _, res := range results {
		m.applyResult(res)
	}
	return nil
}

func (m *Model) applyResult(res command.Result) {
	if res.Err != nil {
		m.errMsg = res.Err.Error()
		m.forceClearInfo()
		events.Action.Error(res.Err)
		return
	}
	info := fmt.Sprintf("%s %s", res.ID, res.Label)
	if m.verbose {
		m.setInfo(info)
	}
	events.Action.Success(info)
	if res.Quit {
		m.quitting = true
		return
	}
	// the session list is stale after anything that changed the server
	if m.backend != nil {
		m.backend.Refresh()
	}
}
