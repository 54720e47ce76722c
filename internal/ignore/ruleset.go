package ignore

import (
	"strings"
)

// RuleSet is an ordered sequence of compiled rules. Value semantics keep a
// directory's rules scoped to that directory and its descendants: Extend
// copies, so rules appended while descending never leak to sibling subtrees.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet constructs a rule set from compiled rules.
func NewRuleSet(rules []Rule) RuleSet {
	return RuleSet{rules: append([]Rule(nil), rules...)}
}

// Extend returns a new rule set with additionalRules appended after the
// existing ones so that deeper rule files evaluate most-specific-last.
func (set RuleSet) Extend(additionalRules []Rule) RuleSet {
	if len(additionalRules) == 0 {
		return set
	}
	combinedRules := make([]Rule, 0, len(set.rules)+len(additionalRules))
	combinedRules = append(combinedRules, set.rules...)
	combinedRules = append(combinedRules, additionalRules...)
	return RuleSet{rules: combinedRules}
}

// Len returns the number of compiled rules in the set.
func (set RuleSet) Len() int {
	return len(set.rules)
}

// Excluded reports whether the candidate path, given relative to the
// traversal root in slash form, is excluded. Every rule is evaluated in
// order and the last matching rule decides; a negated rule re-includes.
func (set RuleSet) Excluded(relativePath string, isDirectory bool) bool {
	excluded, _ := set.Decide(relativePath, isDirectory)
	return excluded
}

// Decide evaluates the set against the candidate path. The second return
// value reports whether any rule matched at all, which lets callers layer a
// later rule set on top of an earlier one without losing the distinction
// between "no opinion" and "explicitly included".
func (set RuleSet) Decide(relativePath string, isDirectory bool) (bool, bool) {
	pathSegments := strings.Split(strings.TrimSuffix(relativePath, pathSeparator), pathSeparator)
	excluded := false
	matched := false
	for _, candidateRule := range set.rules {
		if candidateRule.Matches(pathSegments, isDirectory) {
			matched = true
			excluded = !candidateRule.Negated()
		}
	}
	return excluded, matched
}
