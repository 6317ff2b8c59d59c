// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a
// name. A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "defaults" -> false (name)
//   - "./merge.yaml" -> true (relative path)
//   - "/etc/docmerge/merge.yaml" -> true (absolute)
//   - "C:\docs\merge.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// TitleFromPath derives a display title from a file path: the base name with
// its extension removed. Matches how batch tools label inputs they were only
// given paths for.
//
// Examples:
//   - "/docs/Annual Report.docx" -> "Annual Report"
//   - "annex.pdf" -> "annex"
//   - ".hidden" -> ".hidden" (no extension to strip)
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// HasExtension reports whether path carries one of the given extensions,
// compared case-insensitively. Extensions include the dot: ".docx".
func HasExtension(path string, exts ...string) bool {
	got := strings.ToLower(filepath.Ext(path))
	for _, ext := range exts {
		if got == strings.ToLower(ext) {
			return true
		}
	}
	return false
}
