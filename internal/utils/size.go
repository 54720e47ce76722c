package utils

import (
	"fmt"
)

const (
	kibibyte = 1 << 10
	mebibyte = 1 << 20
	gibibyte = 1 << 30
)

// FormatByteSize renders a document byte count for the run summary line.
// Context documents are clipboard-sized, so the scale stops at gigabytes.
func FormatByteSize(byteCount int) string {
	switch {
	case byteCount < kibibyte:
		return fmt.Sprintf("%db", byteCount)
	case byteCount < mebibyte:
		return fmt.Sprintf("%.1fkb", float64(byteCount)/kibibyte)
	case byteCount < gibibyte:
		return fmt.Sprintf("%.1fmb", float64(byteCount)/mebibyte)
	default:
		return fmt.Sprintf("%.1fgb", float64(byteCount)/gibibyte)
	}
}
