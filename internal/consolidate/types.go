package consolidate

import (
	"time"

	"github.com/MikeSquared-Agency/strata/internal/batch"
	"github.com/MikeSquared-Agency/strata/internal/phrase"
	"github.com/MikeSquared-Agency/strata/internal/relation"
	"github.com/MikeSquared-Agency/strata/internal/temporal"
)

// Caps bounds the presentation lists in a consolidated report. Nothing is
// truncated earlier in the pipeline; these are the only cut points.
type Caps struct {
	ExamplesPerRule      int `json:"examples_per_rule"`
	TopPhrases           int `json:"top_phrases"`
	PhraseMinCount       int `json:"phrase_min_count"`
	TopCategories        int `json:"top_categories"`
	RelationsPerCategory int `json:"relations_per_category"`
}

// DefaultCaps mirrors what the reports have always shown: three examples
// per pattern, thirty phrases seen at least five times, three categories
// per trend bucket, ten relations per group.
func DefaultCaps() Caps {
	return Caps{
		ExamplesPerRule:      3,
		TopPhrases:           30,
		PhraseMinCount:       5,
		TopCategories:        3,
		RelationsPerCategory: 10,
	}
}

// Options fixes report metadata and presentation caps.
type Options struct {
	Source      string
	Granularity temporal.Granularity
	Caps        Caps
}

// RuleInsight is one rule's consolidated standing within its taxonomy:
// occurrence count after dedup, summed weight as the ranking score, and a
// few example excerpts.
type RuleInsight struct {
	RuleID      string   `json:"rule_id"`
	Category    string   `json:"category"`
	Weight      int      `json:"weight"`
	Occurrences int      `json:"occurrences"`
	Score       int      `json:"score"`
	Examples    []string `json:"examples"`
}

// TaxonomyInsights carries one taxonomy's ranked rules.
type TaxonomyInsights struct {
	Taxonomy string        `json:"taxonomy"`
	Rules    []RuleInsight `json:"rules"`
}

// RelationGroup holds one kind/category bucket of relation records. Count
// is the total observed; Records is capped for presentation.
type RelationGroup struct {
	Kind     relation.Kind     `json:"kind"`
	Category string            `json:"category"`
	Count    int               `json:"count"`
	Records  []relation.Record `json:"records"`
}

// Report is the single immutable snapshot handed to report renderers.
type Report struct {
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Source      string                  `json:"source"`
	Granularity temporal.Granularity    `json:"granularity"`
	Stats       batch.RunStats          `json:"stats"`
	Taxonomies  []TaxonomyInsights      `json:"taxonomies"`
	Relations   []RelationGroup         `json:"relations"`
	Trends      []temporal.TrendSummary `json:"trends"`
	Phrases     []phrase.PhraseCount    `json:"phrases"`
}
