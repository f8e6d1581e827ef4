package consolidate

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/strata/internal/batch"
	"github.com/MikeSquared-Agency/strata/internal/phrase"
	"github.com/MikeSquared-Agency/strata/internal/relation"
	"github.com/MikeSquared-Agency/strata/internal/taxonomy"
	"github.com/MikeSquared-Agency/strata/internal/temporal"
)

// Consolidate merges everything a run accumulated into one report snapshot.
// Inputs are read, never mutated; the report owns fresh structures only.
func Consolidate(acc *Accumulator, trends []temporal.TrendSummary, phrases []phrase.PhraseCount, stats batch.RunStats, opts Options) *Report {
	caps := opts.Caps
	if caps == (Caps{}) {
		caps = DefaultCaps()
	}

	r := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Source:      opts.Source,
		Granularity: opts.Granularity,
		Stats:       stats,
		Trends:      trends,
		Phrases:     phrases,
	}
	for _, tax := range acc.Taxonomies() {
		r.Taxonomies = append(r.Taxonomies, TaxonomyInsights{
			Taxonomy: tax,
			Rules:    rankRules(acc.Occurrences(tax), caps.ExamplesPerRule),
		})
	}
	r.Relations = groupRelations(acc.Relations(), caps.RelationsPerCategory)
	return r
}

// rankRules deduplicates occurrences per rule by normalized excerpt, then
// ranks rules by summed weight of the survivors. Ties keep first-seen order.
func rankRules(occs []taxonomy.Occurrence, examplesPerRule int) []RuleInsight {
	type ruleAgg struct {
		insight RuleInsight
		seen    map[string]bool
	}
	byRule := make(map[string]*ruleAgg)
	var ruleOrder []string

	for _, o := range occs {
		agg := byRule[o.RuleID]
		if agg == nil {
			agg = &ruleAgg{
				insight: RuleInsight{RuleID: o.RuleID, Category: o.Category, Weight: o.Weight},
				seen:    make(map[string]bool),
			}
			byRule[o.RuleID] = agg
			ruleOrder = append(ruleOrder, o.RuleID)
		}
		key := normalizeExcerpt(o.Excerpt)
		if agg.seen[key] {
			continue
		}
		agg.seen[key] = true
		agg.insight.Occurrences++
		agg.insight.Score += o.Weight
		if len(agg.insight.Examples) < examplesPerRule {
			agg.insight.Examples = append(agg.insight.Examples, o.Excerpt)
		}
	}

	out := make([]RuleInsight, 0, len(ruleOrder))
	for _, id := range ruleOrder {
		out = append(out, byRule[id].insight)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// groupRelations buckets records by kind and category, keeping arrival
// order inside each bucket and capping the stored records. Groups come out
// sorted by kind then category.
func groupRelations(recs []relation.Record, perCategory int) []RelationGroup {
	type key struct {
		kind     relation.Kind
		category string
	}
	byKey := make(map[key]*RelationGroup)
	var keys []key

	for _, rec := range recs {
		k := key{kind: rec.Kind, category: rec.Category}
		g := byKey[k]
		if g == nil {
			g = &RelationGroup{Kind: rec.Kind, Category: rec.Category}
			byKey[k] = g
			keys = append(keys, k)
		}
		g.Count++
		if len(g.Records) < perCategory {
			g.Records = append(g.Records, rec)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].kind != keys[j].kind {
			return keys[i].kind < keys[j].kind
		}
		return keys[i].category < keys[j].category
	})
	out := make([]RelationGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	return out
}

// normalizeExcerpt is the dedup key: lowercased with whitespace runs
// collapsed to single spaces.
func normalizeExcerpt(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
