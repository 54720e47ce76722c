// Package walker enumerates directory entries in deterministic order,
// consulting the ignore rules and the text classifier to select the files
// that enter the context document.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/petrovito/context-creator/internal/ignore"
	"github.com/petrovito/context-creator/internal/types"
	"github.com/petrovito/context-creator/internal/utils"
)

const (
	pathSeparator = "/"

	warningReadDirectoryFormat   = "failed to read directory %s: %v; its entries are skipped"
	warningStatEntryFormat       = "failed to stat %s: %v; entry is skipped"
	warningResolveFormat         = "failed to resolve %s: %v; entry is skipped"
	warningSymlinkCycleFormat    = "symlink cycle at %s resolving to %s; branch is skipped"
	warningClassifyFileFormat    = "failed to classify file %s: %v; file is skipped"
	warningReadFileFormat        = "failed to read file %s: %v; file is skipped"
	warningInvalidEncodingFormat = "file %s is not valid UTF-8; file is skipped"
)

// Visitor receives each accepted file entry in traversal order.
type Visitor func(types.FileEntry) error

// Options configures a traversal run.
type Options struct {
	// Root is the absolute, validated directory the walk starts from.
	Root string
	// RuleLoader discovers and compiles rule files along the traversal path.
	RuleLoader ignore.Loader
	// ExtraRules hold command-line exclude patterns. They are evaluated
	// after every discovered rule file, so they override rule-file decisions.
	ExtraRules ignore.RuleSet
	// InfrastructureDirectories are directory names pruned unconditionally.
	InfrastructureDirectories []string
	// ServiceFileNames are file names (the rule files themselves) that are
	// never included in the output.
	ServiceFileNames []string
	// Visit is invoked once per accepted file, in traversal order.
	Visit Visitor
	// Skipped is invoked for every entry excluded from the document, with the
	// exclusion recorded in the entry's Kind. May be nil.
	Skipped func(entry types.FileEntry)
	// Warn receives non-fatal per-entry problems. May be nil.
	Warn func(message string)
}

// Walk traverses options.Root depth-first. Entries of each directory are
// visited in the case-sensitive lexicographic order returned by os.ReadDir,
// so repeated runs over an unchanged tree produce an identical sequence.
// All per-entry errors are downgraded to warnings; only a visitor error
// aborts the walk.
func Walk(options Options) error {
	run := &walkRun{options: options, visitedDirectories: map[string]struct{}{}}

	resolvedRoot, resolveError := filepath.EvalSymlinks(options.Root)
	if resolveError != nil {
		return fmt.Errorf("failed to resolve root %s: %w", options.Root, resolveError)
	}
	run.visitedDirectories[resolvedRoot] = struct{}{}

	rootRules := ignore.NewRuleSet(options.RuleLoader.LoadDirectoryRules(options.Root, nil))
	return run.walkDirectory(options.Root, nil, rootRules)
}

type walkRun struct {
	options Options
	// visitedDirectories holds the resolved paths of the current ancestor
	// chain. A directory whose resolved path is already present would start
	// a cycle and is skipped.
	visitedDirectories map[string]struct{}
}

func (run *walkRun) walkDirectory(directoryPath string, domainSegments []string, activeRules ignore.RuleSet) error {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		run.warn(fmt.Sprintf(warningReadDirectoryFormat, run.displayPath(directoryPath), readDirectoryError))
		return nil
	}

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		entryPath := filepath.Join(directoryPath, entryName)

		entrySegments := make([]string, 0, len(domainSegments)+1)
		entrySegments = append(entrySegments, domainSegments...)
		entrySegments = append(entrySegments, entryName)
		relativePath := strings.Join(entrySegments, pathSeparator)

		isDirectory, entryUsable := run.resolveEntryKind(directoryEntry, entryPath)
		if !entryUsable {
			continue
		}

		if isDirectory {
			if utils.ContainsString(run.options.InfrastructureDirectories, entryName) {
				run.skip(entryPath, relativePath, types.EntryKindDirectory, "")
				continue
			}
			if run.excluded(activeRules, relativePath, true) {
				run.skip(entryPath, relativePath, types.EntryKindIgnored, "")
				continue
			}
			if walkError := run.descend(entryPath, entrySegments, activeRules); walkError != nil {
				return walkError
			}
			continue
		}

		if utils.ContainsString(run.options.ServiceFileNames, entryName) {
			continue
		}
		if run.excluded(activeRules, relativePath, false) {
			run.skip(entryPath, relativePath, types.EntryKindIgnored, "")
			continue
		}
		if visitError := run.visitFile(entryPath, relativePath); visitError != nil {
			return visitError
		}
	}
	return nil
}

// descend recurses into a directory after guarding against symlink cycles
// and loading the directory's own rule files.
func (run *walkRun) descend(directoryPath string, domainSegments []string, activeRules ignore.RuleSet) error {
	resolvedPath, resolveError := filepath.EvalSymlinks(directoryPath)
	if resolveError != nil {
		run.warn(fmt.Sprintf(warningResolveFormat, run.displayPath(directoryPath), resolveError))
		return nil
	}
	if _, alreadyOnChain := run.visitedDirectories[resolvedPath]; alreadyOnChain {
		run.warn(fmt.Sprintf(warningSymlinkCycleFormat, run.displayPath(directoryPath), resolvedPath))
		return nil
	}
	run.visitedDirectories[resolvedPath] = struct{}{}
	defer delete(run.visitedDirectories, resolvedPath)

	childRules := activeRules.Extend(run.options.RuleLoader.LoadDirectoryRules(directoryPath, domainSegments))
	return run.walkDirectory(directoryPath, domainSegments, childRules)
}

// resolveEntryKind determines whether the entry behaves as a directory,
// following symlinks to their targets. The second return value is false when
// the entry cannot be used (for example a broken symlink).
func (run *walkRun) resolveEntryKind(directoryEntry fs.DirEntry, entryPath string) (bool, bool) {
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return directoryEntry.IsDir(), true
	}
	targetInfo, statError := os.Stat(entryPath)
	if statError != nil {
		run.warn(fmt.Sprintf(warningStatEntryFormat, run.displayPath(entryPath), statError))
		return false, false
	}
	return targetInfo.IsDir(), true
}

// visitFile classifies and reads a single file, forwarding it to the visitor
// when it survives the text classifier. Classification sniffs a bounded
// prefix first, so large binaries are rejected without a full read. Read
// failures are warnings; an invalid-encoding rejection also warns because it
// usually points at a file the user expected to be included.
func (run *walkRun) visitFile(entryPath string, relativePath string) error {
	if !utils.IsAlwaysTextExtension(entryPath) {
		contentClass, mimeType, classifyError := utils.ClassifyFile(entryPath)
		if classifyError != nil {
			run.warn(fmt.Sprintf(warningClassifyFileFormat, run.displayPath(entryPath), classifyError))
			return nil
		}
		switch contentClass {
		case utils.ContentClassNullByte:
			run.skip(entryPath, relativePath, types.EntryKindBinary, mimeType)
			return nil
		case utils.ContentClassInvalidEncoding:
			run.warn(fmt.Sprintf(warningInvalidEncodingFormat, run.displayPath(entryPath)))
			run.skip(entryPath, relativePath, types.EntryKindBinary, mimeType)
			return nil
		}
	}

	fileBytes, readError := os.ReadFile(entryPath)
	if readError != nil {
		run.warn(fmt.Sprintf(warningReadFileFormat, run.displayPath(entryPath), readError))
		return nil
	}
	if run.options.Visit == nil {
		return nil
	}
	return run.options.Visit(types.FileEntry{
		AbsolutePath: entryPath,
		RelativePath: relativePath,
		Kind:         types.EntryKindText,
		Content:      string(fileBytes),
	})
}

// skip reports an excluded entry to the Skipped callback.
func (run *walkRun) skip(entryPath string, relativePath string, kind string, mimeType string) {
	if run.options.Skipped == nil {
		return
	}
	run.options.Skipped(types.FileEntry{
		AbsolutePath: entryPath,
		RelativePath: relativePath,
		Kind:         kind,
		MimeType:     mimeType,
	})
}

// displayPath shortens an absolute path to its root-relative form for
// warning messages.
func (run *walkRun) displayPath(entryPath string) string {
	return utils.RelativePathOrSelf(entryPath, run.options.Root)
}

// excluded combines the discovered rule files with the command-line extra
// rules. Extra rules evaluate last, so they win over rule-file decisions.
func (run *walkRun) excluded(activeRules ignore.RuleSet, relativePath string, isDirectory bool) bool {
	fileRuleDecision := activeRules.Excluded(relativePath, isDirectory)
	extraDecision, extraMatched := run.options.ExtraRules.Decide(relativePath, isDirectory)
	if extraMatched {
		return extraDecision
	}
	return fileRuleDecision
}

func (run *walkRun) warn(message string) {
	if run.options.Warn != nil {
		run.options.Warn(message)
	}
}
