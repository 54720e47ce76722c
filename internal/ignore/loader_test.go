package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadDirectoryRulesReadsRecognizedFiles verifies that rules from every
// recognized rule file are compiled in file-name order.
func TestLoadDirectoryRulesReadsRecognizedFiles(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, ".gitignore"), "*.log\n# comment\n\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, ".ignore"), "!keep.log\n")

	loader := Loader{RuleFileNames: []string{".gitignore", ".ignore"}}
	loadedRules := loader.LoadDirectoryRules(rootDirectory, nil)

	if len(loadedRules) != 2 {
		testingHandle.Fatalf("loaded %d rules, want 2", len(loadedRules))
	}
	ruleSet := NewRuleSet(loadedRules)
	if !ruleSet.Excluded("debug.log", false) {
		testingHandle.Fatalf("debug.log should be excluded")
	}
	if ruleSet.Excluded("keep.log", false) {
		testingHandle.Fatalf("keep.log should be re-included by the later rule file")
	}
}

// TestLoadDirectoryRulesMissingFilesYieldNoRules verifies that absent rule
// files are not an error.
func TestLoadDirectoryRulesMissingFilesYieldNoRules(testingHandle *testing.T) {
	loader := Loader{RuleFileNames: []string{".gitignore", ".ignore"}}
	loadedRules := loader.LoadDirectoryRules(testingHandle.TempDir(), nil)
	if len(loadedRules) != 0 {
		testingHandle.Fatalf("loaded %d rules from an empty directory, want 0", len(loadedRules))
	}
}

// TestLoadDirectoryRulesWarnsOnMalformedLine verifies that a malformed
// pattern produces a warning and the remaining lines still compile.
func TestLoadDirectoryRulesWarnsOnMalformedLine(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, ".gitignore"), "[abc\n*.tmp\n")

	var warnings []string
	loader := Loader{
		RuleFileNames: []string{".gitignore"},
		Warn:          func(message string) { warnings = append(warnings, message) },
	}
	loadedRules := loader.LoadDirectoryRules(rootDirectory, nil)

	if len(loadedRules) != 1 {
		testingHandle.Fatalf("loaded %d rules, want 1 surviving rule", len(loadedRules))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "malformed") {
		testingHandle.Fatalf("expected one malformed-pattern warning, got %v", warnings)
	}
	if !NewRuleSet(loadedRules).Excluded("scratch.tmp", false) {
		testingHandle.Fatalf("surviving rule should still exclude scratch.tmp")
	}
}

// TestCompileExtraPatternsDropsInvalidEntries verifies warning-and-skip
// behavior for command-line exclude patterns.
func TestCompileExtraPatternsDropsInvalidEntries(testingHandle *testing.T) {
	var warnings []string
	compiledRules := CompileExtraPatterns(
		[]string{"*.bak", "[oops", "node_modules/"},
		func(message string) { warnings = append(warnings, message) },
	)
	if len(compiledRules) != 2 {
		testingHandle.Fatalf("compiled %d rules, want 2", len(compiledRules))
	}
	if len(warnings) != 1 {
		testingHandle.Fatalf("expected one warning, got %v", warnings)
	}
}
