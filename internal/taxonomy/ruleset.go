package taxonomy

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// compiledRule pairs a rule with its compiled expressions.
type compiledRule struct {
	rule Rule
	res  []*regexp.Regexp
}

// RuleSet is a compiled taxonomy ready for classification.
type RuleSet struct {
	name  string
	rules []compiledRule
}

// Name returns the taxonomy name.
func (rs *RuleSet) Name() string { return rs.name }

// Rules returns the source rules in table order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	for i, cr := range rs.rules {
		out[i] = cr.rule
	}
	return out
}

// Compile validates a taxonomy and compiles its expressions. Any malformed
// expression fails the whole compile.
func Compile(tax Taxonomy) (*RuleSet, error) {
	if tax.Name == "" {
		return nil, fmt.Errorf("taxonomy has no name")
	}
	if len(tax.Rules) == 0 {
		return nil, fmt.Errorf("taxonomy %s has no rules", tax.Name)
	}

	rs := &RuleSet{name: tax.Name}
	for _, rule := range tax.Rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("taxonomy %s: rule with empty id", tax.Name)
		}
		if rule.Weight <= 0 {
			return nil, fmt.Errorf("taxonomy %s: rule %s: weight must be positive, got %d", tax.Name, rule.ID, rule.Weight)
		}
		if len(rule.Expressions) == 0 {
			return nil, fmt.Errorf("taxonomy %s: rule %s has no expressions", tax.Name, rule.ID)
		}

		cr := compiledRule{rule: rule}
		for _, expr := range rule.Expressions {
			re, err := regexp.Compile("(?i)" + expr)
			if err != nil {
				return nil, fmt.Errorf("taxonomy %s: rule %s: compile %q: %w", tax.Name, rule.ID, expr, err)
			}
			cr.res = append(cr.res, re)
		}
		rs.rules = append(rs.rules, cr)
	}
	return rs, nil
}

// CompileAll compiles a list of taxonomies, failing on the first bad one.
func CompileAll(taxonomies []Taxonomy) ([]*RuleSet, error) {
	var sets []*RuleSet
	for _, tax := range taxonomies {
		rs, err := Compile(tax)
		if err != nil {
			return nil, err
		}
		sets = append(sets, rs)
	}
	return sets, nil
}

// LoadFile reads taxonomies from a YAML file (a list of taxonomy tables)
// and compiles them. Parse and compile errors are both fatal to the load.
func LoadFile(path string) ([]*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomies: %w", err)
	}

	var taxonomies []Taxonomy
	if err := yaml.Unmarshal(data, &taxonomies); err != nil {
		return nil, fmt.Errorf("parse taxonomies %s: %w", path, err)
	}

	sets, err := CompileAll(taxonomies)
	if err != nil {
		return nil, fmt.Errorf("load taxonomies %s: %w", path, err)
	}
	return sets, nil
}
