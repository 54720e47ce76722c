// Package ignore compiles ignore-rule files into ordered pattern lists and
// decides whether candidate paths are excluded from traversal.
package ignore

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	commentPrefix       = "#"
	negationPrefix      = "!"
	pathSeparator       = "/"
	doubleStarSegment   = "**"
	matchProbeValue     = "probe"
	malformedLineFormat = "malformed ignore pattern %q: %v"
)

// Rule is one compiled ignore pattern together with its polarity and the
// directory scope of the rule file it came from. Rules are evaluated in
// discovery order with the last matching rule winning; a negated rule
// re-includes a previously excluded path.
type Rule struct {
	patternSegments []string
	domainSegments  []string
	negated         bool
	directoryOnly   bool
	anchored        bool
}

// Negated reports whether the rule re-includes matching paths.
func (rule Rule) Negated() bool {
	return rule.negated
}

// CompileRuleLine parses a single rule-file line scoped to domainSegments,
// the slash-separated path of the rule file's directory relative to the
// traversal root (nil for the root itself). The second return value is false
// for blank lines and comments. Malformed patterns return an error so the
// caller can warn and drop the line.
func CompileRuleLine(line string, domainSegments []string) (Rule, bool, error) {
	trimmedLine := strings.TrimSpace(line)
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
		return Rule{}, false, nil
	}

	compiledRule := Rule{domainSegments: append([]string(nil), domainSegments...)}

	patternText := trimmedLine
	if strings.HasPrefix(patternText, negationPrefix) {
		compiledRule.negated = true
		patternText = strings.TrimPrefix(patternText, negationPrefix)
	}
	if strings.HasSuffix(patternText, pathSeparator) {
		compiledRule.directoryOnly = true
		patternText = strings.TrimSuffix(patternText, pathSeparator)
	}
	if strings.HasPrefix(patternText, pathSeparator) {
		compiledRule.anchored = true
		patternText = strings.TrimPrefix(patternText, pathSeparator)
	}
	if strings.Contains(patternText, pathSeparator) {
		compiledRule.anchored = true
	}
	if patternText == "" {
		return Rule{}, false, nil
	}

	compiledRule.patternSegments = strings.Split(patternText, pathSeparator)
	for _, patternSegment := range compiledRule.patternSegments {
		if patternSegment == doubleStarSegment {
			continue
		}
		if _, matchError := filepath.Match(patternSegment, matchProbeValue); matchError != nil {
			return Rule{}, false, fmt.Errorf(malformedLineFormat, trimmedLine, matchError)
		}
	}
	return compiledRule, true, nil
}

// Matches reports whether the rule applies to the candidate path, given as
// slash-separated segments relative to the traversal root.
func (rule Rule) Matches(pathSegments []string, isDirectory bool) bool {
	scopedSegments, inDomain := stripDomain(pathSegments, rule.domainSegments)
	if !inDomain || len(scopedSegments) == 0 {
		return false
	}

	if rule.directoryOnly {
		return rule.matchesDirectoryRule(scopedSegments, isDirectory)
	}
	if rule.anchored {
		return segmentsMatch(rule.patternSegments, scopedSegments)
	}
	return rule.matchesAnySegment(scopedSegments)
}

// matchesDirectoryRule matches a trailing-slash rule against the directory
// itself and every descendant path beneath it.
func (rule Rule) matchesDirectoryRule(scopedSegments []string, isDirectory bool) bool {
	if rule.anchored {
		for prefixLength := 1; prefixLength <= len(scopedSegments); prefixLength++ {
			if !segmentsMatch(rule.patternSegments, scopedSegments[:prefixLength]) {
				continue
			}
			if prefixLength == len(scopedSegments) {
				return isDirectory
			}
			return true
		}
		return false
	}
	for segmentIndex, pathSegment := range scopedSegments {
		if matched := segmentMatches(rule.patternSegments[0], pathSegment); !matched {
			continue
		}
		if segmentIndex == len(scopedSegments)-1 {
			return isDirectory
		}
		return true
	}
	return false
}

// matchesAnySegment implements standard semantics for patterns without a
// slash: the pattern matches the candidate's base name, and matching any
// ancestor component excludes everything beneath that component.
func (rule Rule) matchesAnySegment(scopedSegments []string) bool {
	for _, pathSegment := range scopedSegments {
		if segmentMatches(rule.patternSegments[0], pathSegment) {
			return true
		}
	}
	return false
}

// stripDomain removes the rule's scope prefix from pathSegments. The second
// return value is false when the candidate lies outside the rule's scope.
func stripDomain(pathSegments, domainSegments []string) ([]string, bool) {
	if len(pathSegments) < len(domainSegments) {
		return nil, false
	}
	for segmentIndex, domainSegment := range domainSegments {
		if pathSegments[segmentIndex] != domainSegment {
			return nil, false
		}
	}
	return pathSegments[len(domainSegments):], true
}

// segmentsMatch matches pattern segments against path segments, expanding
// "**" to any number of path segments including zero.
func segmentsMatch(patternSegments, pathSegments []string) bool {
	if len(patternSegments) == 0 {
		return len(pathSegments) == 0
	}
	if patternSegments[0] == doubleStarSegment {
		for skipCount := 0; skipCount <= len(pathSegments); skipCount++ {
			if segmentsMatch(patternSegments[1:], pathSegments[skipCount:]) {
				return true
			}
		}
		return false
	}
	if len(pathSegments) == 0 {
		return false
	}
	if !segmentMatches(patternSegments[0], pathSegments[0]) {
		return false
	}
	return segmentsMatch(patternSegments[1:], pathSegments[1:])
}

// segmentMatches evaluates a single pattern segment with filepath.Match
// semantics. Patterns are validated at compile time, so a match error here
// only reports a non-match.
func segmentMatches(patternSegment, pathSegment string) bool {
	isMatched, matchError := filepath.Match(patternSegment, pathSegment)
	return matchError == nil && isMatched
}
