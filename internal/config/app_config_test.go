package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadApplicationConfigurationMissingFilesYieldDefaults verifies that
// absent configuration files produce the zero configuration.
func TestLoadApplicationConfigurationMissingFilesYieldDefaults(testingHandle *testing.T) {
	testingHandle.Setenv("HOME", testingHandle.TempDir())
	loaded, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: testingHandle.TempDir()})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration failed: %v", loadError)
	}
	if !reflect.DeepEqual(loaded, ApplicationConfiguration{}) {
		testingHandle.Fatalf("expected zero configuration, got %+v", loaded)
	}
}

// TestLoadApplicationConfigurationReadsLocalFile verifies decoding of a
// working-directory configuration file.
func TestLoadApplicationConfigurationReadsLocalFile(testingHandle *testing.T) {
	testingHandle.Setenv("HOME", testingHandle.TempDir())
	workingDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(workingDirectory, ConfigFileName), `
clipboard: false
stdout: true
tokens:
  enabled: true
  model: gpt-4o
paths:
  exclude:
    - "*.gen.go"
    - "dist/"
  use_gitignore: true
  infrastructure_directories:
    - .git
    - .direnv
`)

	loaded, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration failed: %v", loadError)
	}
	if loaded.Clipboard == nil || *loaded.Clipboard {
		testingHandle.Fatalf("clipboard setting not decoded: %+v", loaded.Clipboard)
	}
	if loaded.Stdout == nil || !*loaded.Stdout {
		testingHandle.Fatalf("stdout setting not decoded: %+v", loaded.Stdout)
	}
	if loaded.Tokens.Enabled == nil || !*loaded.Tokens.Enabled || loaded.Tokens.Model != "gpt-4o" {
		testingHandle.Fatalf("token settings not decoded: %+v", loaded.Tokens)
	}
	expectedExcludes := []string{"*.gen.go", "dist/"}
	if !reflect.DeepEqual(loaded.Paths.Exclude, expectedExcludes) {
		testingHandle.Fatalf("exclude patterns %v, want %v", loaded.Paths.Exclude, expectedExcludes)
	}
	expectedInfrastructure := []string{".git", ".direnv"}
	if !reflect.DeepEqual(loaded.Paths.InfrastructureDirectories, expectedInfrastructure) {
		testingHandle.Fatalf("infrastructure directories %v, want %v", loaded.Paths.InfrastructureDirectories, expectedInfrastructure)
	}
}

// TestLoadApplicationConfigurationLocalOverridesGlobal verifies merge
// precedence between home and working directory files.
func TestLoadApplicationConfigurationLocalOverridesGlobal(testingHandle *testing.T) {
	homeDirectory := testingHandle.TempDir()
	testingHandle.Setenv("HOME", homeDirectory)
	writeTestFile(testingHandle, filepath.Join(homeDirectory, ConfigFileName), "clipboard: true\ntokens:\n  model: global-model\n")

	workingDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(workingDirectory, ConfigFileName), "tokens:\n  model: local-model\n")

	loaded, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration failed: %v", loadError)
	}
	if loaded.Tokens.Model != "local-model" {
		testingHandle.Fatalf("model %q, want local override", loaded.Tokens.Model)
	}
	if loaded.Clipboard == nil || !*loaded.Clipboard {
		testingHandle.Fatalf("global clipboard setting should survive the merge")
	}
}

// TestMergeOverlaysOnlyProvidedValues verifies field-wise merge semantics.
func TestMergeOverlaysOnlyProvidedValues(testingHandle *testing.T) {
	enabled := true
	disabled := false
	base := ApplicationConfiguration{
		Clipboard: &enabled,
		Tokens:    TokenConfiguration{Model: "base-model"},
		Paths:     PathConfiguration{Exclude: []string{"*.log"}},
	}
	override := ApplicationConfiguration{
		Clipboard: &disabled,
		Paths:     PathConfiguration{UseGitignore: &enabled},
	}

	merged := base.Merge(override)
	if merged.Clipboard == nil || *merged.Clipboard {
		testingHandle.Fatalf("clipboard override lost in merge")
	}
	if merged.Tokens.Model != "base-model" {
		testingHandle.Fatalf("base model should survive when override omits it")
	}
	if !reflect.DeepEqual(merged.Paths.Exclude, []string{"*.log"}) {
		testingHandle.Fatalf("base excludes should survive when override omits them")
	}
	if merged.Paths.UseGitignore == nil || !*merged.Paths.UseGitignore {
		testingHandle.Fatalf("gitignore override lost in merge")
	}
}
