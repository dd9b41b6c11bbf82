package catalog

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

// Host carries out catalog actions for the viewer whose click fired them.
type Host interface {
	OpenMenu(id string) error
	Back() error
	Close()
	NextPage() error
	PreviousPage() error
	Search(keyword string)
	RunTmux(command string) error
	Message(text string)
}

// parseAction turns an action string into a menu action bound to host.
func parseAction(spec string, host Host, known map[string]bool) (menu.Action, error) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")
	arg = strings.TrimSpace(arg)
	report := func(err error) {
		if err != nil {
			host.Message(err.Error())
		}
	}
	switch strings.ToLower(verb) {
	case "open":
		if !known[arg] {
			return nil, fmt.Errorf("action %q: %w", spec, ErrUnknownMenu)
		}
		return func() { report(host.OpenMenu(arg)) }, nil
	case "back":
		return func() { report(host.Back()) }, nil
	case "close":
		return host.Close, nil
	case "next":
		return func() { report(host.NextPage()) }, nil
	case "previous":
		return func() { report(host.PreviousPage()) }, nil
	case "search":
		return func() { host.Search(arg) }, nil
	case "tmux":
		if arg == "" {
			return nil, fmt.Errorf("action %q: tmux command required", spec)
		}
		return func() { report(host.RunTmux(arg)) }, nil
	case "message":
		return func() { host.Message(arg) }, nil
	case "":
		return nil, fmt.Errorf("binding without action")
	}
	return nil, fmt.Errorf("unknown action %q", spec)
}

type nopHost struct{}

func (nopHost) OpenMenu(string) error { return nil }
func (nopHost) Back() error           { return nil }
func (nopHost) Close()                {}
func (nopHost) NextPage() error       { return nil }
func (nopHost) PreviousPage() error   { return nil }
func (nopHost) Search(string)         {}
func (nopHost) RunTmux(string) error  { return nil }
func (nopHost) Message(string)        {}
