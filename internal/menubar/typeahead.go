package menubar

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TypeAhead moves focus to the next sibling of id matching the typed text:
// first by hotkey, then by title prefix, then by fuzzy rank. The search
// starts after id and wraps.
func (b *Bar) TypeAhead(id NodeID, text string) Result {
	text = strings.TrimSpace(text)
	if !b.valid(id) || text == "" {
		return b.result(false)
	}
	target := b.matchSibling(id, text)
	if target == NoNode {
		return b.result(false)
	}
	if target != id {
		b.Focus(target)
	}
	return b.result(true)
}

func (b *Bar) matchSibling(id NodeID, text string) NodeID {
	set := b.siblings(id)
	start := b.indexOf(id, set)
	n := len(set)
	ordered := make([]NodeID, 0, n)
	for i := 1; i <= n; i++ {
		ordered = append(ordered, set[(start+i)%n])
	}

	for _, candidate := range ordered {
		if hk := b.nodes[candidate].Hotkey; hk != "" && strings.EqualFold(hk, text) {
			return candidate
		}
	}
	lower := strings.ToLower(text)
	for _, candidate := range ordered {
		if strings.HasPrefix(strings.ToLower(b.nodes[candidate].Title), lower) {
			return candidate
		}
	}
	titles := make([]string, len(ordered))
	for i, candidate := range ordered {
		titles[i] = b.nodes[candidate].Title
	}
	ranks := fuzzy.RankFindNormalizedFold(text, titles)
	if len(ranks) == 0 {
		return NoNode
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return ordered[best.OriginalIndex]
}
