package temporal

import (
	"sort"
	"unicode/utf8"

	"github.com/MikeSquared-Agency/strata/internal/corpus"
)

// Bucket accumulates running tallies for one calendar period. Buckets are
// created lazily on the first message observed in their period and never
// deleted.
type Bucket struct {
	Period     string
	Messages   int
	TotalRunes int
	Categories map[string]int
}

// CategoryCount is one category's tally inside a trend summary.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TrendSummary is a point-in-time snapshot of one bucket.
type TrendSummary struct {
	Period        string          `json:"period"`
	Messages      int             `json:"messages"`
	AvgTextLen    float64         `json:"avg_text_len"`
	TopCategories []CategoryCount `json:"top_categories"`
}

// Aggregator buckets messages into calendar periods under one granularity.
type Aggregator struct {
	granularity Granularity
	buckets     map[string]*Bucket
}

func NewAggregator(g Granularity) *Aggregator {
	return &Aggregator{granularity: g, buckets: make(map[string]*Bucket)}
}

// Observe adds one message to its period's bucket under the given category
// label. Messages without a timestamp are excluded from temporal aggregation
// entirely; they still count in every non-temporal pass.
func (a *Aggregator) Observe(msg corpus.OrderedMessage, category string) {
	if msg.Timestamp.IsZero() {
		return
	}
	key := PeriodKey(msg.Timestamp, a.granularity)
	b := a.buckets[key]
	if b == nil {
		b = &Bucket{Period: key, Categories: make(map[string]int)}
		a.buckets[key] = b
	}
	b.Messages++
	b.TotalRunes += utf8.RuneCountInString(msg.Text)
	if category != "" {
		b.Categories[category]++
	}
}

// Len reports how many periods have been observed so far.
func (a *Aggregator) Len() int { return len(a.buckets) }

// Snapshot returns one summary per bucket in period order. Averages and top
// categories are recomputed from the running tallies at call time; earlier
// snapshots are never revised. TopCategories keeps at most topN entries by
// count, label breaking ties.
func (a *Aggregator) Snapshot(topN int) []TrendSummary {
	keys := make([]string, 0, len(a.buckets))
	for k := range a.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]TrendSummary, 0, len(keys))
	for _, k := range keys {
		b := a.buckets[k]
		s := TrendSummary{Period: b.Period, Messages: b.Messages}
		if b.Messages > 0 {
			s.AvgTextLen = float64(b.TotalRunes) / float64(b.Messages)
		}
		s.TopCategories = topCategories(b.Categories, topN)
		out = append(out, s)
	}
	return out
}

func topCategories(tally map[string]int, n int) []CategoryCount {
	if len(tally) == 0 || n <= 0 {
		return nil
	}
	all := make([]CategoryCount, 0, len(tally))
	for c, count := range tally {
		all = append(all, CategoryCount{Category: c, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Category < all[j].Category
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
