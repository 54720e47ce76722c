package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const (
	warningRuleFileFormat  = "failed to read %s: %v; its rules are skipped"
	warningRuleLineFormat  = "%s: %v; line is skipped"
	warningExtraRuleFormat = "invalid exclude pattern: %v; pattern is skipped"
)

// WarnFunction receives human-readable warnings about rule files that could
// not be used. Loading never fails hard: a bad rule file contributes zero
// rules and the run continues.
type WarnFunction func(message string)

// Loader discovers and compiles rule files during traversal.
type Loader struct {
	// RuleFileNames lists recognized rule file names in evaluation order;
	// rules from later names override rules from earlier ones within the
	// same directory.
	RuleFileNames []string
	// Warn receives non-fatal loading problems. May be nil.
	Warn WarnFunction
}

// LoadDirectoryRules reads every recognized rule file in directoryPath and
// returns the compiled rules scoped to domainSegments, the directory's
// slash-separated path relative to the traversal root (nil for the root).
func (loader Loader) LoadDirectoryRules(directoryPath string, domainSegments []string) []Rule {
	var loadedRules []Rule
	for _, ruleFileName := range loader.RuleFileNames {
		ruleFilePath := filepath.Join(directoryPath, ruleFileName)
		fileRules, loadError := loader.loadRuleFile(ruleFilePath, domainSegments)
		if loadError != nil {
			loader.warn(fmt.Sprintf(warningRuleFileFormat, ruleFilePath, loadError))
			continue
		}
		loadedRules = append(loadedRules, fileRules...)
	}
	return loadedRules
}

// loadRuleFile compiles one rule file. A missing file is not an error and
// yields no rules; malformed lines are warned about and dropped.
func (loader Loader) loadRuleFile(ruleFilePath string, domainSegments []string) ([]Rule, error) {
	fileHandle, openError := os.Open(ruleFilePath)
	if openError != nil {
		if os.IsNotExist(openError) {
			return nil, nil
		}
		return nil, openError
	}
	defer fileHandle.Close()

	var compiledRules []Rule
	lineScanner := bufio.NewScanner(fileHandle)
	for lineScanner.Scan() {
		compiledRule, usable, compileError := CompileRuleLine(lineScanner.Text(), domainSegments)
		if compileError != nil {
			loader.warn(fmt.Sprintf(warningRuleLineFormat, ruleFilePath, compileError))
			continue
		}
		if usable {
			compiledRules = append(compiledRules, compiledRule)
		}
	}
	if scanError := lineScanner.Err(); scanError != nil {
		return nil, scanError
	}
	return compiledRules, nil
}

// CompileExtraPatterns compiles additional exclude patterns supplied on the
// command line, scoped to the traversal root. Invalid patterns are warned
// about and dropped.
func CompileExtraPatterns(patterns []string, warn WarnFunction) []Rule {
	var compiledRules []Rule
	for _, patternText := range patterns {
		compiledRule, usable, compileError := CompileRuleLine(patternText, nil)
		if compileError != nil {
			if warn != nil {
				warn(fmt.Sprintf(warningExtraRuleFormat, compileError))
			}
			continue
		}
		if usable {
			compiledRules = append(compiledRules, compiledRule)
		}
	}
	return compiledRules
}

func (loader Loader) warn(message string) {
	if loader.Warn != nil {
		loader.Warn(message)
	}
}
