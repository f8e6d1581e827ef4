package relation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MikeSquared-Agency/strata/internal/taxonomy"
)

type compiledTable struct {
	kind       Kind
	minCapture int
	res        []*regexp.Regexp
}

// Extractor applies compiled relation tables to single messages and pairing
// rules across whole message sequences. It is stateless across calls.
type Extractor struct {
	tables  []compiledTable
	pairing PairingRules
	cats    []taxonomy.Category
	window  int
}

// New compiles the rule tables and fixes the pairing policy. Expressions are
// matched case-insensitively against the original text, so captures and
// excerpts keep their casing. An expression that does not compile, or that
// carries fewer than two capture groups, is a configuration error.
func New(tables []Table, pairing PairingRules, cats []taxonomy.Category, excerptWindow int) (*Extractor, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no relation tables")
	}
	if pairing.Role == "" {
		pairing.Role = "user"
	}
	if pairing.Window <= 0 {
		pairing.Window = 2
	}
	if pairing.ExcerptCap <= 0 {
		pairing.ExcerptCap = 300
	}
	if excerptWindow <= 0 {
		excerptWindow = 200
	}

	e := &Extractor{pairing: pairing, cats: cats, window: excerptWindow}
	for _, tbl := range tables {
		if tbl.Kind == "" {
			return nil, fmt.Errorf("relation table with empty kind")
		}
		if len(tbl.Expressions) == 0 {
			return nil, fmt.Errorf("relation table %s has no expressions", tbl.Kind)
		}
		ct := compiledTable{kind: tbl.Kind, minCapture: tbl.MinCapture}
		for _, expr := range tbl.Expressions {
			re, err := regexp.Compile("(?i)" + expr)
			if err != nil {
				return nil, fmt.Errorf("relation table %s: compile %q: %w", tbl.Kind, expr, err)
			}
			if re.NumSubexp() < 2 {
				return nil, fmt.Errorf("relation table %s: expression %q needs two capture groups", tbl.Kind, expr)
			}
			ct.res = append(ct.res, re)
		}
		e.tables = append(e.tables, ct)
	}
	return e, nil
}

// Extract runs every table expression over one message's text and returns a
// record per qualifying match. A match qualifies when both left and right
// captures are non-empty after trimming and meet the table's minimum length.
func (e *Extractor) Extract(text, convTitle string) []Record {
	var out []Record
	for _, tbl := range e.tables {
		for _, re := range tbl.res {
			for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
				if rec, ok := e.record(tbl, text, convTitle, m); ok {
					out = append(out, rec)
				}
			}
		}
	}
	return out
}

func (e *Extractor) record(tbl compiledTable, text, convTitle string, m []int) (Record, bool) {
	left := trimCapture(group(text, m, 1))
	right := trimCapture(group(text, m, 2))
	if left == "" || right == "" {
		return Record{}, false
	}
	if tbl.minCapture > 0 &&
		(utf8.RuneCountInString(left) < tbl.minCapture || utf8.RuneCountInString(right) < tbl.minCapture) {
		return Record{}, false
	}
	return Record{
		Kind:         tbl.kind,
		Left:         left,
		Right:        right,
		Else:         trimCapture(group(text, m, 3)),
		Excerpt:      taxonomy.Excerpt(text, m[0], m[1], e.window),
		Conversation: convTitle,
		Category:     taxonomy.Categorize(left, e.cats),
	}, true
}

// group returns capture i's text, or "" when the group did not participate.
func group(text string, m []int, i int) string {
	lo, hi := 2*i, 2*i+1
	if hi >= len(m) || m[lo] < 0 || m[hi] < 0 {
		return ""
	}
	return text[m[lo]:m[hi]]
}

// trimCapture strips surrounding whitespace and trailing sentence
// punctuation. Captures receive no further normalization.
func trimCapture(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,!?;:")
	return strings.TrimSpace(s)
}
