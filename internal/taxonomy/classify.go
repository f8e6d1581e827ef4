package taxonomy

import (
	"unicode/utf8"

	"github.com/MikeSquared-Agency/strata/internal/corpus"
)

// Classify runs every rule in the set against one decoded message. Every
// match of every expression emits its own occurrence; nothing is capped or
// deduplicated here.
func (rs *RuleSet) Classify(msg corpus.OrderedMessage, convTitle string, window int) []Occurrence {
	var out []Occurrence
	for _, cr := range rs.rules {
		for _, re := range cr.res {
			for _, loc := range re.FindAllStringIndex(msg.Text, -1) {
				out = append(out, Occurrence{
					RuleID:       cr.rule.ID,
					Category:     cr.rule.Category,
					Weight:       cr.rule.Weight,
					Conversation: convTitle,
					NodeID:       msg.NodeID,
					Excerpt:      Excerpt(msg.Text, loc[0], loc[1], window),
					Timestamp:    msg.Timestamp,
				})
			}
		}
	}
	return out
}

// Excerpt takes up to window bytes of context on each side of the match,
// clipped to the text bounds and snapped to rune boundaries, with an
// ellipsis marker on any clipped end.
func Excerpt(text string, start, end, window int) string {
	lo := start - window
	if lo < 0 {
		lo = 0
	}
	hi := end + window
	if hi > len(text) {
		hi = len(text)
	}

	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}

	out := text[lo:hi]
	if lo > 0 {
		out = "..." + out
	}
	if hi < len(text) {
		out += "..."
	}
	return out
}
