package relation

// Kind names the shape of an extracted relation. The built-in tables cover
// four kinds; custom tables may introduce their own.
type Kind string

const (
	KindConditionAction Kind = "condition_action"
	KindBeliefAction    Kind = "belief_action"
	KindProblemSolution Kind = "problem_solution"
	KindIfThen          Kind = "if_then"
)

// Record is one extracted relation. Left and Right are trimmed capture
// substrings and are never re-parsed downstream; Else is only populated by
// ternary-style rules. Category comes from keyword lookup on the left side.
type Record struct {
	Kind         Kind   `json:"kind"`
	Left         string `json:"left"`
	Right        string `json:"right"`
	Else         string `json:"else,omitempty"`
	Excerpt      string `json:"excerpt"`
	Conversation string `json:"conversation"`
	Category     string `json:"category"`
}
