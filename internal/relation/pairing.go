package relation

import (
	"strings"

	"github.com/MikeSquared-Agency/strata/internal/corpus"
	"github.com/MikeSquared-Agency/strata/internal/taxonomy"
)

// PairProblems scans one decoded conversation for problem statements followed
// shortly by solution statements. The window is positional over the full
// sequence, so other-role messages consume window slots without being
// candidates. A problem with no solution indicator inside its window yields
// nothing; each problem pairs with at most one solution.
func (e *Extractor) PairProblems(msgs []corpus.OrderedMessage, convTitle string) []Record {
	p := e.pairing
	var out []Record
	for i := 0; i+1 < len(msgs); i++ {
		if msgs[i].Role != p.Role {
			continue
		}
		if !containsAny(strings.ToLower(msgs[i].Text), p.ProblemIndicators) {
			continue
		}
		end := i + p.Window
		if end > len(msgs)-1 {
			end = len(msgs) - 1
		}
		for j := i + 1; j <= end; j++ {
			if msgs[j].Role != p.Role {
				continue
			}
			if !containsAny(strings.ToLower(msgs[j].Text), p.SolutionIndicators) {
				continue
			}
			left := capRunes(msgs[i].Text, p.ExcerptCap)
			out = append(out, Record{
				Kind:         KindProblemSolution,
				Left:         left,
				Right:        capRunes(msgs[j].Text, p.ExcerptCap),
				Excerpt:      left,
				Conversation: convTitle,
				Category:     taxonomy.Categorize(left, e.cats),
			})
			break
		}
	}
	return out
}

func containsAny(lower string, indicators []string) bool {
	for _, in := range indicators {
		if strings.Contains(lower, in) {
			return true
		}
	}
	return false
}

// capRunes truncates s to at most n runes without splitting a character.
func capRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
