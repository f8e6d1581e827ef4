package relation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/MikeSquared-Agency/strata/internal/corpus"
)

func pmsg(role, text string) corpus.OrderedMessage {
	return corpus.OrderedMessage{Role: role, Text: text}
}

func TestPairProblems(t *testing.T) {
	e := newExtractor(t)

	problem := "how do I automate the release so it stops paging me at night"
	solution := "so I went with a canary rollout and the pages stopped"
	msgs := []corpus.OrderedMessage{
		pmsg("user", problem),
		pmsg("assistant", "have you considered a canary deployment strategy"),
		pmsg("user", solution),
	}

	recs := e.PairProblems(msgs, "release pain")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.Kind != KindProblemSolution {
		t.Errorf("Kind = %q, want %q", rec.Kind, KindProblemSolution)
	}
	if rec.Left != problem {
		t.Errorf("Left = %q, want the problem text", rec.Left)
	}
	if rec.Right != solution {
		t.Errorf("Right = %q, want the solution text", rec.Right)
	}
	if rec.Conversation != "release pain" {
		t.Errorf("Conversation = %q, want %q", rec.Conversation, "release pain")
	}
	if rec.Category != "automation" {
		t.Errorf("Category = %q, want %q", rec.Category, "automation")
	}
}

func TestPairProblems_NoSolutionInWindow(t *testing.T) {
	e := newExtractor(t)

	// The solution indicator sits three messages out, one past the window.
	msgs := []corpus.OrderedMessage{
		pmsg("user", "I am stuck on the migration and nothing moves"),
		pmsg("user", "thanks for looking at this with me"),
		pmsg("user", "another thing entirely while you are here"),
		pmsg("user", "ended up rewriting the migration from scratch"),
	}

	if recs := e.PairProblems(msgs, "migration"); len(recs) != 0 {
		t.Errorf("got %d records, want 0: %+v", len(recs), recs)
	}
}

func TestPairProblems_OtherRolesConsumeWindow(t *testing.T) {
	e := newExtractor(t)

	// Both window slots hold assistant messages, so the user's own
	// solution at position four is never examined.
	msgs := []corpus.OrderedMessage{
		pmsg("user", "I am stuck on the importer and need a second pair of eyes"),
		pmsg("assistant", "let us walk through the stack trace together"),
		pmsg("assistant", "the fault is in the retry wrapper"),
		pmsg("user", "ended up patching the retry wrapper myself"),
	}

	if recs := e.PairProblems(msgs, "importer"); len(recs) != 0 {
		t.Errorf("got %d records, want 0: %+v", len(recs), recs)
	}
}

func TestPairProblems_FirstSolutionWins(t *testing.T) {
	e := newExtractor(t)

	msgs := []corpus.OrderedMessage{
		pmsg("user", "trying to tame the log volume before it eats the disk"),
		pmsg("user", "decided to sample debug lines at one percent"),
		pmsg("user", "ended up dropping trace logs entirely"),
	}

	recs := e.PairProblems(msgs, "logs")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(recs), recs)
	}
	if !strings.Contains(recs[0].Right, "decided to sample") {
		t.Errorf("Right = %q, want the first solution in the window", recs[0].Right)
	}
}

func TestPairProblems_RoleAnchored(t *testing.T) {
	e := newExtractor(t)

	// Assistant messages never open a pairing window.
	msgs := []corpus.OrderedMessage{
		pmsg("assistant", "how do I put this: your config is inverted"),
		pmsg("user", "so I flipped the config and it worked"),
	}

	if recs := e.PairProblems(msgs, "config"); len(recs) != 0 {
		t.Errorf("got %d records, want 0: %+v", len(recs), recs)
	}
}

func TestPairProblems_CapsPairText(t *testing.T) {
	e := newExtractor(t)

	long := "need to shrink this payload " + strings.Repeat("x", 400)
	msgs := []corpus.OrderedMessage{
		pmsg("user", long),
		pmsg("user", "fixed it by gzipping the body"),
	}

	recs := e.PairProblems(msgs, "payloads")
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(recs), recs)
	}
	if got := utf8.RuneCountInString(recs[0].Left); got != 300 {
		t.Errorf("len(Left) = %d runes, want 300", got)
	}
	if recs[0].Right != "fixed it by gzipping the body" {
		t.Errorf("Right = %q", recs[0].Right)
	}
}

func TestPairProblems_LastMessageCannotOpen(t *testing.T) {
	e := newExtractor(t)

	msgs := []corpus.OrderedMessage{
		pmsg("user", "help with the scheduler would be appreciated"),
	}
	if recs := e.PairProblems(msgs, "scheduler"); len(recs) != 0 {
		t.Errorf("got %d records, want 0: %+v", len(recs), recs)
	}
}
