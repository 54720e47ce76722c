package utils

import (
	"path/filepath"
	"reflect"
	"testing"
)

// TestDeduplicatePatterns verifies order-preserving duplicate removal.
func TestDeduplicatePatterns(testingHandle *testing.T) {
	input := []string{"*.log", "build/", "*.log", "dist/", "build/"}
	expected := []string{"*.log", "build/", "dist/"}
	if result := DeduplicatePatterns(input); !reflect.DeepEqual(result, expected) {
		testingHandle.Fatalf("DeduplicatePatterns = %v, want %v", result, expected)
	}
}

// TestRelativePathOrSelf verifies relative path calculation in slash form.
func TestRelativePathOrSelf(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	nestedPath := filepath.Join(rootDirectory, "sub", "file.go")
	if relativePath := RelativePathOrSelf(nestedPath, rootDirectory); relativePath != "sub/file.go" {
		testingHandle.Fatalf("RelativePathOrSelf = %q, want %q", relativePath, "sub/file.go")
	}
	if relativePath := RelativePathOrSelf(rootDirectory, rootDirectory); relativePath != "." {
		testingHandle.Fatalf("RelativePathOrSelf for the root = %q, want %q", relativePath, ".")
	}
}

// TestFormatByteSize verifies human-readable size rendering of the summary.
func TestFormatByteSize(testingHandle *testing.T) {
	testCases := []struct {
		byteCount int
		expected  string
	}{
		{byteCount: 0, expected: "0b"},
		{byteCount: 512, expected: "512b"},
		{byteCount: 1023, expected: "1023b"},
		{byteCount: 2048, expected: "2.0kb"},
		{byteCount: 1536, expected: "1.5kb"},
		{byteCount: 10 * 1024 * 1024, expected: "10.0mb"},
		{byteCount: 3 * 1024 * 1024 * 1024, expected: "3.0gb"},
	}
	for _, testCase := range testCases {
		if formatted := FormatByteSize(testCase.byteCount); formatted != testCase.expected {
			testingHandle.Fatalf("FormatByteSize(%d) = %q, want %q", testCase.byteCount, formatted, testCase.expected)
		}
	}
}

// TestApplicationVersionNeverEmpty verifies that version resolution always
// yields a printable value, even without release build metadata.
func TestApplicationVersionNeverEmpty(testingHandle *testing.T) {
	if version := ApplicationVersion(); version == "" {
		testingHandle.Fatalf("ApplicationVersion returned an empty string")
	}
}
