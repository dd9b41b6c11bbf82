// Package permission answers whether a viewer holds a permission node.
// Nodes are dot separated ("tmux.session.kill"); a grant of "tmux.*" covers
// every node under tmux and "*" covers everything.
package permission

import (
	"slices"
	"strings"
	"sync"
)

// Oracle reports whether viewer holds perm.
type Oracle interface {
	HasPermission(viewer, perm string) bool
}

// PartialOracle is implemented by oracles that can tell when a viewer holds
// something close to perm without holding perm itself.
type PartialOracle interface {
	Oracle
	HasPartialPermission(viewer, perm string) bool
}

// Static is an Oracle backed by fixed grant lists. Grants added with Everyone
// apply to all viewers.
type Static struct {
	mu       sync.RWMutex
	everyone []string
	byViewer map[string][]string
}

// NewStatic returns an oracle granting perms to every viewer.
func NewStatic(perms ...string) *Static {
	s := &Static{byViewer: make(map[string][]string)}
	s.Everyone(perms...)
	return s
}

// Everyone grants perms to all viewers.
func (s *Static) Everyone(perms ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.everyone = appendGrants(s.everyone, perms)
}

// Grant gives perms to viewer.
func (s *Static) Grant(viewer string, perms ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byViewer[viewer] = appendGrants(s.byViewer[viewer], perms)
}

// Revoke removes an exact grant from viewer.
func (s *Static) Revoke(viewer, perm string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byViewer[viewer] = slices.DeleteFunc(s.byViewer[viewer], func(g string) bool { return g == perm })
}

// Grants returns the grants that apply to viewer.
func (s *Static) Grants(viewer string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Concat(s.everyone, s.byViewer[viewer])
}

// HasPermission implements Oracle.
func (s *Static) HasPermission(viewer, perm string) bool {
	return slices.ContainsFunc(s.Grants(viewer), func(g string) bool { return Covers(g, perm) })
}

// HasPartialPermission implements PartialOracle. It is true when one of the
// viewer's grants shares the parent node of perm.
func (s *Static) HasPartialPermission(viewer, perm string) bool {
	parent := Parent(perm)
	if parent == "" {
		return false
	}
	return slices.ContainsFunc(s.Grants(viewer), func(g string) bool {
		return g == parent || strings.HasPrefix(g, parent+".")
	})
}

// Covers reports whether grant matches perm.
func Covers(grant, perm string) bool {
	switch {
	case grant == "" || perm == "":
		return false
	case grant == "*" || grant == perm:
		return true
	case strings.HasSuffix(grant, ".*"):
		return strings.HasPrefix(perm, strings.TrimSuffix(grant, "*"))
	}
	return false
}

// Parent returns perm without its last segment, or "" for a single segment.
func Parent(perm string) string {
	i := strings.LastIndexByte(perm, '.')
	if i <= 0 {
		return ""
	}
	return perm[:i]
}

// ParseList splits a comma separated grant list, dropping blanks.
func ParseList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func appendGrants(dst, perms []string) []string {
	for _, p := range perms {
		if p = strings.TrimSpace(p); p != "" && !slices.Contains(dst, p) {
			dst = append(dst, p)
		}
	}
	return dst
}
