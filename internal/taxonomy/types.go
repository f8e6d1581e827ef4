package taxonomy

import "time"

// Rule is one weighted pattern: it fires on a message when any of its match
// expressions finds a case-insensitive match.
type Rule struct {
	ID          string   `yaml:"id" json:"id"`
	Expressions []string `yaml:"expressions" json:"expressions"`
	Weight      int      `yaml:"weight" json:"weight"`
	Category    string   `yaml:"category" json:"category"`
}

// Taxonomy is a named flat table of rules: one analysis pass's worth of
// patterns ("themes", "cognitive_patterns", ...). Taxonomies are data, so a
// new pass is a new table rather than new code.
type Taxonomy struct {
	Name  string `yaml:"name" json:"name"`
	Rules []Rule `yaml:"rules" json:"rules"`
}

// Occurrence records one match of one rule expression against one message.
// Granularity is per match: three hits in one message yield three
// occurrences, each carrying the rule's weight. Deduplication happens at
// consolidation, never here.
type Occurrence struct {
	RuleID       string    `json:"rule_id"`
	Category     string    `json:"category"`
	Weight       int       `json:"weight"`
	Conversation string    `json:"conversation"`
	NodeID       string    `json:"node_id"`
	Excerpt      string    `json:"excerpt"`
	Timestamp    time.Time `json:"timestamp"`
}
