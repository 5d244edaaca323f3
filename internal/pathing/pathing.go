package pathing

import (
	"path/filepath"
	"strings"
)

// IsAbsoluteLike reports whether the path should be treated as absolute
// regardless of host OS path semantics.
func IsAbsoluteLike(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return false
	}
	if filepath.IsAbs(path) {
		return true
	}
	if strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, `//`) {
		return true
	}
	if strings.HasPrefix(path, "/") {
		return true
	}
	if len(path) >= 3 && isASCIIAlpha(path[0]) && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		return true
	}

	return false
}

// ShouldRebase reports whether a file reference is relative to the collection
// file. Absolute paths and references starting with a variable are left alone.
func ShouldRebase(reference string) bool {
	reference = strings.TrimSpace(reference)
	if reference == "" || IsAbsoluteLike(reference) {
		return false
	}
	return !strings.HasPrefix(reference, "{{")
}

// Rebase rewrites a file reference relative to inputFile so it resolves
// from outputFile's directory. The result always uses forward slashes.
func Rebase(reference string, inputFile string, outputFile string) string {
	reference = strings.TrimSpace(reference)
	if !ShouldRebase(reference) {
		return reference
	}

	sourceAbsolute := filepath.Clean(filepath.Join(filepath.Dir(inputFile), reference))
	relative, err := filepath.Rel(filepath.Dir(outputFile), sourceAbsolute)
	if err != nil || strings.TrimSpace(relative) == "" {
		return filepath.ToSlash(sourceAbsolute)
	}

	return filepath.ToSlash(relative)
}

func isASCIIAlpha(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}
