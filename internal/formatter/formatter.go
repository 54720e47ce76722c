// Package formatter renders accepted file entries into fenced blocks and
// concatenates them into the final context document.
package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/petrovito/context-creator/internal/types"
)

const (
	// blockFormat renders one file as a path header followed by a fenced
	// content block. Content is emitted verbatim; fence-like sequences
	// inside a file are not escaped, so such a file renders a visually
	// ambiguous but byte-faithful document.
	blockFormat = "%s:\n```%s\n%s\n```"
	// blockSeparator is the single blank line between consecutive blocks.
	blockSeparator = "\n\n"
)

// RenderBlock formats a single accepted file entry.
func RenderBlock(entry types.FileEntry) types.RenderedBlock {
	return types.RenderedBlock{
		RelativePath: entry.RelativePath,
		LanguageTag:  LanguageTagForPath(entry.RelativePath),
		Content:      entry.Content,
	}
}

// Aggregator accumulates rendered blocks in traversal order and produces the
// final context document. The buffer is append-only and owned by one run.
type Aggregator struct {
	builder    strings.Builder
	blockCount int
}

// NewAggregator constructs an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Append renders the entry and appends the block to the document buffer.
func (aggregator *Aggregator) Append(entry types.FileEntry) {
	renderedBlock := RenderBlock(entry)
	if aggregator.blockCount > 0 {
		aggregator.builder.WriteString(blockSeparator)
	}
	fmt.Fprintf(&aggregator.builder, blockFormat, renderedBlock.RelativePath, renderedBlock.LanguageTag, renderedBlock.Content)
	aggregator.blockCount++
}

// Document returns the concatenated context document. An aggregator that
// never received an entry yields an empty document with zero files.
func (aggregator *Aggregator) Document() types.ContextDocument {
	documentText := aggregator.builder.String()
	return types.ContextDocument{
		Text:           documentText,
		FileCount:      aggregator.blockCount,
		CharacterCount: utf8.RuneCountInString(documentText),
		ByteCount:      len(documentText),
	}
}
