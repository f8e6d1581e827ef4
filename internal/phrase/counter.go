package phrase

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// PhraseCount is one phrase and how often it appeared.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// Counter tallies two and three word phrases across messages. Text is
// lowercased and split on whitespace; phrases led by very short words
// ("to", "a") are connective noise and are skipped. Two-word phrases
// additionally require a substantial second word.
type Counter struct {
	counts map[string]int
	seen   map[string]int
	next   int
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int), seen: make(map[string]int)}
}

// Observe tallies one message's phrases.
func (c *Counter) Observe(text string) {
	words := strings.Fields(strings.ToLower(text))
	for i := 0; i+1 < len(words); i++ {
		if wordLen(words[i]) > 2 && wordLen(words[i+1]) > 2 {
			c.add(words[i] + " " + words[i+1])
		}
	}
	for i := 0; i+2 < len(words); i++ {
		if wordLen(words[i]) > 2 {
			c.add(words[i] + " " + words[i+1] + " " + words[i+2])
		}
	}
}

func (c *Counter) add(p string) {
	if _, ok := c.counts[p]; !ok {
		c.seen[p] = c.next
		c.next++
	}
	c.counts[p]++
}

// Len reports how many distinct phrases have been seen.
func (c *Counter) Len() int { return len(c.counts) }

// Top returns up to n phrases observed at least minCount times, most
// frequent first, first-seen order breaking ties.
func (c *Counter) Top(n, minCount int) []PhraseCount {
	if n <= 0 {
		return nil
	}
	out := make([]PhraseCount, 0, len(c.counts))
	for p, count := range c.counts {
		if count >= minCount {
			out = append(out, PhraseCount{Phrase: p, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return c.seen[out[i].Phrase] < c.seen[out[j].Phrase]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func wordLen(w string) int { return utf8.RuneCountInString(w) }
