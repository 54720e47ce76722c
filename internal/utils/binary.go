package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// sniffLength defines the maximum number of bytes read when detecting binary content.
const sniffLength = 8000

// alwaysTextExtensions force text classification for source files whose
// content occasionally trips the byte-level heuristics.
var alwaysTextExtensions = map[string]struct{}{
	".go":     {},
	".rs":     {},
	".ts":     {},
	".tsx":    {},
	".jsx":    {},
	".vue":    {},
	".svelte": {},
	".kt":     {},
	".kts":    {},
	".swift":  {},
	".scala":  {},
	".elm":    {},
	".hs":     {},
	".rb":     {},
	".php":    {},
	".pl":     {},
	".ex":     {},
	".exs":    {},
	".erl":    {},
	".hrl":    {},
	".clj":    {},
	".fs":     {},
	".fsx":    {},
}

// IsAlwaysTextExtension reports whether the file extension of path belongs to
// the always-text override list.
func IsAlwaysTextExtension(path string) bool {
	extension := strings.ToLower(filepath.Ext(path))
	_, isAlwaysText := alwaysTextExtensions[extension]
	return isAlwaysText
}

// ContentClass is the result of the byte-level text classifier.
type ContentClass int

const (
	// ContentClassText marks content safe to include verbatim.
	ContentClassText ContentClass = iota
	// ContentClassNullByte marks content containing a NUL byte.
	ContentClassNullByte
	// ContentClassInvalidEncoding marks content that is not valid UTF-8.
	ContentClassInvalidEncoding
)

// ClassifyBytes inspects data and reports why it is or is not plain text.
// Empty input is text. A NUL byte takes precedence over encoding problems.
func ClassifyBytes(data []byte) ContentClass {
	if len(data) == 0 {
		return ContentClassText
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return ContentClassNullByte
		}
	}
	if !utf8.Valid(data) {
		return ContentClassInvalidEncoding
	}
	return ContentClassText
}

// IsBinary reports whether the provided byte slice appears to contain binary data.
func IsBinary(data []byte) bool {
	return ClassifyBytes(data) != ContentClassText
}

// ClassifyFile reads up to sniffLength bytes from the file at path and
// classifies the prefix, returning the class together with the sniffed MIME
// type. Classification never reads past the prefix, so very large files are
// judged cheaply.
func ClassifyFile(path string) (ContentClass, string, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return ContentClassText, "", openError
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return ContentClassText, "", readError
	}
	prefix := buffer[:bytesRead]
	return ClassifyBytes(prefix), DetectMimeType(prefix), nil
}
