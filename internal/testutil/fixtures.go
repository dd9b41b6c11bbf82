package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

// Definition builds a menu definition of size slots holding n numbered items
// named "item-00", "item-01" and so on.
func Definition(t *testing.T, title string, size, n int) *menu.Definition {
	t.Helper()
	def, err := menu.NewDefinition(title, size)
	if err != nil {
		t.Fatalf("NewDefinition(%q, %d): %v", title, size, err)
	}
	for i := range n {
		def.AddItem(menu.NewWidget(menu.Payload{Name: fmt.Sprintf("item-%02d", i)}))
	}
	return def
}

// Counter returns an action that increments a shared count, and a reader for
// the count.
func Counter() (menu.Action, func() int) {
	var mu sync.Mutex
	n := 0
	return func() {
			mu.Lock()
			n++
			mu.Unlock()
		}, func() int {
			mu.Lock()
			defer mu.Unlock()
			return n
		}
}

// Feedback records denial cues and messages per viewer.
type Feedback struct {
	mu       sync.Mutex
	denied   map[string]int
	messages map[string][]string
}

// NewFeedback returns an empty recorder.
func NewFeedback() *Feedback {
	return &Feedback{denied: map[string]int{}, messages: map[string][]string{}}
}

func (f *Feedback) Denied(viewer string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.denied[viewer]++
}

func (f *Feedback) Message(viewer, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[viewer] = append(f.messages[viewer], text)
}

// DeniedCount returns how many denial cues viewer received.
func (f *Feedback) DeniedCount(viewer string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.denied[viewer]
}

// Messages returns the messages sent to viewer.
func (f *Feedback) Messages(viewer string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages[viewer]...)
}
