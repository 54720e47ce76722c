package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestIsBinary verifies the NUL-byte and UTF-8 validity heuristics.
func TestIsBinary(testingHandle *testing.T) {
	testCases := []struct {
		name         string
		data         []byte
		expectBinary bool
	}{
		{name: "empty is text", data: nil, expectBinary: false},
		{name: "ascii is text", data: []byte("package main"), expectBinary: false},
		{name: "utf8 is text", data: []byte("héllo wörld"), expectBinary: false},
		{name: "nul byte is binary", data: []byte("ab\x00cd"), expectBinary: true},
		{name: "invalid utf8 is binary", data: []byte{0xff, 0xfe, 0xfd}, expectBinary: true},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subtestHandle *testing.T) {
			if isBinary := IsBinary(testCase.data); isBinary != testCase.expectBinary {
				subtestHandle.Fatalf("IsBinary = %v, want %v", isBinary, testCase.expectBinary)
			}
		})
	}
}

// TestClassifyBytes verifies the class distinction between NUL-byte content
// and invalid UTF-8 content.
func TestClassifyBytes(testingHandle *testing.T) {
	if class := ClassifyBytes([]byte("plain")); class != ContentClassText {
		testingHandle.Fatalf("plain text classified as %v", class)
	}
	if class := ClassifyBytes([]byte("ab\x00cd")); class != ContentClassNullByte {
		testingHandle.Fatalf("NUL content classified as %v", class)
	}
	if class := ClassifyBytes([]byte{0xff, 0xfe, 0xfd}); class != ContentClassInvalidEncoding {
		testingHandle.Fatalf("invalid UTF-8 classified as %v", class)
	}
	if class := ClassifyBytes([]byte{0xff, 0x00}); class != ContentClassNullByte {
		testingHandle.Fatalf("NUL should take precedence over encoding, got %v", class)
	}
}

// TestClassifyFile verifies prefix-based classification of on-disk files
// along with the sniffed MIME type.
func TestClassifyFile(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()

	textPath := filepath.Join(rootDirectory, "text.txt")
	if writeError := os.WriteFile(textPath, []byte("hello"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write text file: %v", writeError)
	}
	binaryPath := filepath.Join(rootDirectory, "data.bin")
	if writeError := os.WriteFile(binaryPath, []byte{0x00, 0x01, 0x02}, 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write binary file: %v", writeError)
	}
	malformedPath := filepath.Join(rootDirectory, "mangled.dat")
	if writeError := os.WriteFile(malformedPath, []byte{0xff, 0xfe, 0xfd}, 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write malformed file: %v", writeError)
	}

	textClass, textMime, textError := ClassifyFile(textPath)
	if textError != nil || textClass != ContentClassText {
		testingHandle.Fatalf("text file classified as %v (error %v)", textClass, textError)
	}
	if !strings.HasPrefix(textMime, "text/plain") {
		testingHandle.Fatalf("text file MIME %q, want a text/plain type", textMime)
	}

	binaryClass, binaryMime, binaryError := ClassifyFile(binaryPath)
	if binaryError != nil || binaryClass != ContentClassNullByte {
		testingHandle.Fatalf("binary file classified as %v (error %v)", binaryClass, binaryError)
	}
	if binaryMime == "" {
		testingHandle.Fatalf("binary file should carry a sniffed MIME type")
	}

	malformedClass, _, malformedError := ClassifyFile(malformedPath)
	if malformedError != nil || malformedClass != ContentClassInvalidEncoding {
		testingHandle.Fatalf("malformed file classified as %v (error %v)", malformedClass, malformedError)
	}

	if _, _, missingError := ClassifyFile(filepath.Join(rootDirectory, "missing")); missingError == nil {
		testingHandle.Fatalf("missing file should report an error")
	}
}

// TestIsAlwaysTextExtension verifies the source-extension override list.
func TestIsAlwaysTextExtension(testingHandle *testing.T) {
	if !IsAlwaysTextExtension("pkg/server.go") {
		testingHandle.Fatalf(".go should always be text")
	}
	if !IsAlwaysTextExtension("LIB.RS") {
		testingHandle.Fatalf("extension check should be case-insensitive")
	}
	if IsAlwaysTextExtension("image.png") {
		testingHandle.Fatalf(".png should not be in the always-text list")
	}
}
