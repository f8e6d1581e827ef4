package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/MikeSquared-Agency/strata/internal/consolidate"
	"github.com/MikeSquared-Agency/strata/internal/relation"
)

// WriteJSON persists the full report, creating parent directories as needed.
func WriteJSON(path string, rep *consolidate.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a previously written report.
func ReadJSON(path string) (*consolidate.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var rep consolidate.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &rep, nil
}

// WriteMarkdown renders the report as a markdown document and writes it.
func WriteMarkdown(path string, rep *consolidate.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return os.WriteFile(path, []byte(RenderMarkdown(rep)), 0o644)
}

// RenderMarkdown produces the human-readable framework document: ranked
// patterns with examples, relations as IF/THEN style entries, activity per
// period, frequent phrases, and the run counters. Empty sections are
// omitted and the numbering stays dense.
func RenderMarkdown(rep *consolidate.Report) string {
	var sb strings.Builder

	sb.WriteString("# Conversation Mining Report\n\n")
	fmt.Fprintf(&sb, "Run %s, generated %s.\n\n", rep.RunID, rep.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Based on %d messages across %d conversations from %s.\n\n",
		rep.Stats.MessagesDecoded, rep.Stats.Conversations, rep.Source)

	section := 1

	if len(rep.Taxonomies) > 0 {
		fmt.Fprintf(&sb, "## %d. Pattern Taxonomies\n\n", section)
		section++
		for _, tax := range rep.Taxonomies {
			fmt.Fprintf(&sb, "### %s\n\n", titleize(tax.Taxonomy))
			for _, rule := range tax.Rules {
				fmt.Fprintf(&sb, "**%s** (%s): score %d, %d occurrences\n",
					titleize(rule.RuleID), rule.Category, rule.Score, rule.Occurrences)
				for _, ex := range rule.Examples {
					fmt.Fprintf(&sb, "- \"%s\"\n", ex)
				}
				sb.WriteString("\n")
			}
		}
	}

	if len(rep.Relations) > 0 {
		fmt.Fprintf(&sb, "## %d. Extracted Relations\n\n", section)
		section++
		for _, g := range rep.Relations {
			fmt.Fprintf(&sb, "### %s / %s (%d)\n\n", titleize(string(g.Kind)), g.Category, g.Count)
			left, right := kindLabels(g.Kind)
			for _, rec := range g.Records {
				fmt.Fprintf(&sb, "**%s**: %s\n", left, rec.Left)
				fmt.Fprintf(&sb, "**%s**: %s\n", right, rec.Right)
				if rec.Else != "" {
					fmt.Fprintf(&sb, "**ELSE**: %s\n", rec.Else)
				}
				if rec.Conversation != "" {
					fmt.Fprintf(&sb, "*Context*: %s\n", rec.Conversation)
				}
				sb.WriteString("\n")
			}
		}
	}

	if len(rep.Trends) > 0 {
		fmt.Fprintf(&sb, "## %d. Evolution Over Time\n\n", section)
		section++
		for _, tr := range rep.Trends {
			fmt.Fprintf(&sb, "### %s\n\n", tr.Period)
			fmt.Fprintf(&sb, "- Messages: %d\n", tr.Messages)
			fmt.Fprintf(&sb, "- Avg length: %.0f chars\n", tr.AvgTextLen)
			if len(tr.TopCategories) > 0 {
				top := tr.TopCategories[0]
				fmt.Fprintf(&sb, "- Main focus: %s (%d messages)\n", top.Category, top.Count)
			}
			sb.WriteString("\n")
		}
	}

	if len(rep.Phrases) > 0 {
		fmt.Fprintf(&sb, "## %d. Common Phrases\n\n", section)
		section++
		for _, p := range rep.Phrases {
			fmt.Fprintf(&sb, "- \"%s\" (%d times)\n", p.Phrase, p.Count)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## %d. Run Statistics\n\n", section)
	fmt.Fprintf(&sb, "- Conversations: %d\n", rep.Stats.Conversations)
	fmt.Fprintf(&sb, "- Messages analyzed: %d\n", rep.Stats.MessagesDecoded)
	fmt.Fprintf(&sb, "- Pattern occurrences: %d\n", rep.Stats.Occurrences)
	fmt.Fprintf(&sb, "- Relations: %d inline, %d paired\n", rep.Stats.Relations, rep.Stats.ProblemPairs)
	fmt.Fprintf(&sb, "- Skipped records: %d\n", rep.Stats.SkippedRecords)
	fmt.Fprintf(&sb, "- Malformed nodes: %d\n", rep.Stats.MalformedNodes)
	if rep.Stats.ConversationsFailed > 0 {
		fmt.Fprintf(&sb, "- Failed conversations: %d\n", rep.Stats.ConversationsFailed)
	}
	fmt.Fprintf(&sb, "- Duration: %s\n", rep.Stats.Duration().Round(time.Millisecond))

	return sb.String()
}

// kindLabels picks the left/right line labels for one relation kind, the
// same labels the historical framework documents used.
func kindLabels(k relation.Kind) (string, string) {
	switch k {
	case relation.KindBeliefAction:
		return "Belief", "Results in"
	case relation.KindProblemSolution:
		return "Problem", "Solution"
	default:
		return "IF", "THEN"
	}
}

// titleize turns snake_case identifiers into heading text.
func titleize(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
