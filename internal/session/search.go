package session

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"

	"github.com/atomicstack/tmux-popup-grid/internal/menu"
)

// filterItems keeps the items whose plain name matches keyword. An empty
// keyword keeps everything. The returned slice is always freshly allocated.
func filterItems(items []*menu.Widget, keyword string, mode menu.SearchMode) []*menu.Widget {
	out := make([]*menu.Widget, 0, len(items))
	if keyword == "" {
		return append(out, items...)
	}
	folded := cases.Fold().String(keyword)
	for _, item := range items {
		if matches(item.Payload.PlainName(), keyword, folded, mode) {
			out = append(out, item)
		}
	}
	return out
}

func matches(name, keyword, folded string, mode menu.SearchMode) bool {
	if mode == menu.SearchFuzzy {
		return fuzzy.MatchNormalizedFold(keyword, name)
	}
	return strings.Contains(cases.Fold().String(name), folded)
}
