package utils

import (
	"net/http"
)

// DetectMimeType sniffs the MIME type of a content prefix. The result is
// advisory and only surfaces in debug logging for skipped files.
func DetectMimeType(prefix []byte) string {
	if len(prefix) == 0 {
		return ""
	}
	return http.DetectContentType(prefix)
}
