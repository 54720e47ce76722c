// Package utils contains general helper functions used across the context-creator tool.
package utils

import (
	"path/filepath"
)

// Well-known file and directory names used across the project.
const (
	// GitIgnoreFileName is the name of the Git ignore rule file.
	GitIgnoreFileName = ".gitignore"
	// IgnoreFileName is the name of the tool's own ignore rule file.
	IgnoreFileName = ".ignore"
	// GitDirectoryName is the name of the Git metadata directory.
	GitDirectoryName = ".git"
)

// DefaultInfrastructureDirectories lists directory names that are always
// excluded from traversal even when no ignore rule mentions them.
var DefaultInfrastructureDirectories = []string{
	GitDirectoryName,
	".hg",
	".svn",
	".vscode",
	".idea",
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the slash-separated relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteRootError := filepath.Abs(root)
	if absoluteRootError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relativePathError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativePathError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}
