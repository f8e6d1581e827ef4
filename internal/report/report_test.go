package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/strata/internal/batch"
	"github.com/MikeSquared-Agency/strata/internal/consolidate"
	"github.com/MikeSquared-Agency/strata/internal/phrase"
	"github.com/MikeSquared-Agency/strata/internal/relation"
	"github.com/MikeSquared-Agency/strata/internal/temporal"
)

func fullReport() *consolidate.Report {
	return &consolidate.Report{
		RunID:       "3f1c9a2e-0000-4000-8000-000000000000",
		GeneratedAt: time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC),
		Source:      "conversations.json",
		Granularity: temporal.Monthly,
		Stats: batch.RunStats{
			StartedAt:       time.Date(2024, 4, 2, 9, 29, 58, 0, time.UTC),
			FinishedAt:      time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC),
			Conversations:   12,
			MessagesDecoded: 240,
			Occurrences:     31,
			Relations:       6,
			ProblemPairs:    2,
			SkippedRecords:  1,
			MalformedNodes:  3,
		},
		Taxonomies: []consolidate.TaxonomyInsights{
			{
				Taxonomy: "thinking_styles",
				Rules: []consolidate.RuleInsight{
					{
						RuleID:      "recursive_thinking",
						Category:    "Recursive Thinking",
						Weight:      1,
						Occurrences: 4,
						Score:       4,
						Examples:    []string{"a feedback loop between the two"},
					},
				},
			},
		},
		Relations: []consolidate.RelationGroup{
			{
				Kind:     relation.KindIfThen,
				Category: "general",
				Count:    2,
				Records: []relation.Record{
					{
						Kind:         relation.KindIfThen,
						Left:         "the build fails",
						Right:        "rerun the deploy",
						Else:         "ship it",
						Conversation: "Deploy automation",
						Category:     "general",
					},
				},
			},
			{
				Kind:     relation.KindProblemSolution,
				Category: "coding",
				Count:    1,
				Records: []relation.Record{
					{
						Kind:     relation.KindProblemSolution,
						Left:     "the tests are flaky",
						Right:    "pinned the clock in every suite",
						Category: "coding",
					},
				},
			},
		},
		Trends: []temporal.TrendSummary{
			{
				Period:     "2024-03",
				Messages:   120,
				AvgTextLen: 83.4,
				TopCategories: []temporal.CategoryCount{
					{Category: "automation", Count: 70},
				},
			},
		},
		Phrases: []phrase.PhraseCount{
			{Phrase: "the deploy", Count: 9},
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(fullReport())

	checks := []string{
		"# Conversation Mining Report",
		"Based on 240 messages across 12 conversations from conversations.json.",
		"## 1. Pattern Taxonomies",
		"### Thinking Styles",
		"**Recursive Thinking** (Recursive Thinking): score 4, 4 occurrences",
		"- \"a feedback loop between the two\"",
		"## 2. Extracted Relations",
		"### If Then / general (2)",
		"**IF**: the build fails",
		"**THEN**: rerun the deploy",
		"**ELSE**: ship it",
		"*Context*: Deploy automation",
		"### Problem Solution / coding (1)",
		"**Problem**: the tests are flaky",
		"**Solution**: pinned the clock in every suite",
		"## 3. Evolution Over Time",
		"### 2024-03",
		"- Messages: 120",
		"- Avg length: 83 chars",
		"- Main focus: automation (70 messages)",
		"## 4. Common Phrases",
		"- \"the deploy\" (9 times)",
		"## 5. Run Statistics",
		"- Relations: 6 inline, 2 paired",
		"- Malformed nodes: 3",
		"- Duration: 2s",
	}
	for _, check := range checks {
		if !strings.Contains(md, check) {
			t.Errorf("markdown missing %q", check)
		}
	}
	if strings.Contains(md, "Failed conversations") {
		t.Error("zero failures should not render a failure line")
	}
}

func TestRenderMarkdown_EmptySectionsSkipped(t *testing.T) {
	rep := &consolidate.Report{
		RunID:  "r",
		Source: "conversations.json",
	}
	md := RenderMarkdown(rep)

	if strings.Contains(md, "Pattern Taxonomies") || strings.Contains(md, "Extracted Relations") {
		t.Errorf("empty sections should be omitted:\n%s", md)
	}
	// Stats is the only section left, so it takes the first number.
	if !strings.Contains(md, "## 1. Run Statistics") {
		t.Errorf("stats section should renumber:\n%s", md)
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	rep := fullReport()
	path := filepath.Join(t.TempDir(), "out", "reports", "run.json")

	if err := WriteJSON(path, rep); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got consolidate.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RunID != rep.RunID {
		t.Errorf("run id = %q, want %q", got.RunID, rep.RunID)
	}
	if len(got.Relations) != 2 || got.Relations[0].Records[0].Else != "ship it" {
		t.Errorf("relations did not survive the round trip: %+v", got.Relations)
	}
	if got.Stats.MessagesDecoded != 240 {
		t.Errorf("stats did not survive: %+v", got.Stats)
	}
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	if err := WriteMarkdown(path, fullReport()); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Conversation Mining Report") {
		t.Errorf("unexpected document head: %.60s", data)
	}
}
