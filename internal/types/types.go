// Package types defines the cross-package data structures used by the context-creator CLI.
package types

const (
	// EntryKindText marks a file whose content is included in the context document.
	EntryKindText = "text"
	// EntryKindBinary marks a file excluded by the text classifier.
	EntryKindBinary = "binary"
	// EntryKindDirectory marks a pruned infrastructure directory.
	EntryKindDirectory = "directory"
	// EntryKindIgnored marks an entry excluded by ignore rules.
	EntryKindIgnored = "ignored"
)

// ValidatedRoot is an absolute root directory path that already passed existence checks.
type ValidatedRoot struct {
	AbsolutePath string
}

// FileEntry is one filesystem node encountered during traversal.
type FileEntry struct {
	// AbsolutePath is the full path of the file on disk.
	AbsolutePath string
	// RelativePath is the slash-separated path relative to the traversal root.
	RelativePath string
	// Kind is one of the EntryKind constants.
	Kind string
	// Content holds the verbatim file text for text entries.
	Content string
	// MimeType is the sniffed MIME type of entries the classifier rejected.
	MimeType string
}

// RenderedBlock is a single formatted file section of the context document.
type RenderedBlock struct {
	RelativePath string
	LanguageTag  string
	Content      string
}

// ContextDocument is the final concatenated output handed to the delivery sinks.
type ContextDocument struct {
	// Text is the full rendered document.
	Text string
	// FileCount is the number of rendered blocks.
	FileCount int
	// CharacterCount is the length of Text in Unicode code points.
	CharacterCount int
	// ByteCount is the length of Text in bytes.
	ByteCount int
	// Tokens is the optional token count of Text; zero when counting is disabled.
	Tokens int
	// Model names the tokenizer model used when Tokens is populated.
	Model string
}
