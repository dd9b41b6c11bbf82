// Package ui contains the Bubble Tea program that presents menu grids inside a
// tmux popup.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses and mouse clicks become router.Click values for the slot under
//     the cursor. The router resolves the widget, checks its permissions and
//     runs the matching bindings synchronously.
//   - Bindings that touch tmux only enqueue work on the command bus
//     (internal/ui/command). The queue is drained at the end of every update into
//     a single tea.Cmd, whose Results message reports errors in the status line.
//
// State ownership:
//   - Pagination and search state live in the viewer's session.Session. The
//     model never draws from its own copy: View reads the grid the session
//     rendered onto a display.Memory.
//   - The slot cursor and the search prompt live in internal/ui/state.
//   - tmux sessions and the catalog revision are kept in internal/state stores,
//     updated by the dispatcher from backend.Watcher events. A session update
//     rebuilds the root definition and reopens it with Manager.Reopen, so the
//     viewer keeps their keyword and page.
package ui
