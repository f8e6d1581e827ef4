package relation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table is an ordered set of capture-group expressions that all produce the
// same relation kind. Every expression needs at least two capture groups
// (left, right); a third group becomes the else branch. MinCapture drops
// matches whose captures are too short to mean anything.
type Table struct {
	Kind        Kind     `yaml:"kind" json:"kind"`
	Expressions []string `yaml:"expressions" json:"expressions"`
	MinCapture  int      `yaml:"min_capture" json:"min_capture"`
}

// PairingRules drives cross-message problem/solution pairing. A message from
// Role containing a problem indicator opens a window over the next Window
// messages; the first same-role message in the window containing a solution
// indicator closes the pair. Indicator checks are plain lowercase substring
// containment.
type PairingRules struct {
	Role               string   `yaml:"role" json:"role"`
	ProblemIndicators  []string `yaml:"problem_indicators" json:"problem_indicators"`
	SolutionIndicators []string `yaml:"solution_indicators" json:"solution_indicators"`
	Window             int      `yaml:"window" json:"window"`
	ExcerptCap         int      `yaml:"excerpt_cap" json:"excerpt_cap"`
}

// DefaultTables returns the built-in relation rules. Capture groups are
// negated character classes bounded by required separators; the separator
// carries the structure, not backtracking.
func DefaultTables() []Table {
	return []Table{
		{
			Kind: KindIfThen,
			Expressions: []string{
				`\bif\s+([^,.!?]+),\s*(?:then\s+)?([^.!?]+)`,
				`\bif\s+([^,.!?]+?)\s+then\s+([^.!?]+)`,
				`\bwhen\s+([^,.!?]+),\s*([^.!?]+)`,
				`\b(?:anytime|whenever)\s+([^,.!?]+),\s*([^.!?]+)`,
				`([^?!.:]+?)\s+\?\s+([^:!.?]+?)\s+:\s+([^.!?]+)`,
			},
		},
		{
			Kind: KindConditionAction,
			Expressions: []string{
				`\bwhen\s+([^,.!?]+?),?\s+(?:i|we|you)\s+([^.!?]+)`,
				`\b(?:every time|whenever)\s+([^,.!?]+?),?\s+(?:i|we)\s+([^.!?]+)`,
			},
		},
		{
			// Stated beliefs, length-gated.
			Kind:       KindBeliefAction,
			MinCapture: 10,
			Expressions: []string{
				`\bi\s+(?:believe|think|know)\s+([^,.!?]+?),?\s+so\s+(?:i|we)\s+([^.!?]+)`,
				`\b(?:since|because)\s+([^,.!?]+),\s*(?:i|we)\s+([^.!?]+)`,
				`([^,.!?]+?)\s+(?:means|equals)\s+([^.!?]+)`,
				`\bif\s+you\s+([^,.!?]+),\s*you\s+([^.!?]+)`,
			},
		},
		{
			// Reasoned choices, no length gate.
			Kind: KindBeliefAction,
			Expressions: []string{
				`\b(?:chose|picked|went with)\s+([^,.!?]+?)\s+(?:because|since)\s+([^.!?]+)`,
				`\binstead\s+of\s+([^,.!?]+),\s*(?:i|we)\s+([^.!?]+)`,
				`([^,.!?]+?)\s+(?:makes sense|works better)\s+because\s+([^.!?]+)`,
			},
		},
		{
			Kind: KindProblemSolution,
			Expressions: []string{
				`\b(?:the problem is|issue is)\s+([^,.!?]+?),?\s+so\s+([^.!?]+)`,
				`([^,.!?]+?)\s+(?:sucks|is broken),?\s+so\s+([^.!?]+)`,
				`\b(?:need to|have to)\s+([^,.!?]+?)\s+(?:because|since)\s+([^.!?]+)`,
			},
		},
	}
}

// RulesFile is the on-disk shape of a custom relation configuration. Either
// section may be omitted; callers fall back to the built-in defaults for
// whatever the file leaves out.
type RulesFile struct {
	Tables  []Table      `yaml:"tables"`
	Pairing PairingRules `yaml:"pairing"`
}

// LoadFile reads custom relation rules from a YAML file. Expression
// validation happens in New, so a broken rule still fails before any
// extraction runs.
func LoadFile(path string) (RulesFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RulesFile{}, fmt.Errorf("read relation rules: %w", err)
	}
	var rf RulesFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return RulesFile{}, fmt.Errorf("parse relation rules %s: %w", path, err)
	}
	return rf, nil
}

// DefaultPairing returns the built-in cross-message pairing policy: user
// messages only, a two-message window, pair text capped at 300 characters.
func DefaultPairing() PairingRules {
	return PairingRules{
		Role: "user",
		ProblemIndicators: []string{
			"how do i", "how can i", "need to", "trying to",
			"issue with", "problem is", "stuck on", "help with",
		},
		SolutionIndicators: []string{
			"so i", "decided to", "went with",
			"ended up", "solution was", "fixed it by",
		},
		Window:     2,
		ExcerptCap: 300,
	}
}
