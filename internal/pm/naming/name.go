package naming

import "strings"

// Separator joins folder and request name segments.
const Separator = "_"

// Segment normalizes one name segment; spaces become hyphens.
func Segment(name string) string {
	return strings.ReplaceAll(name, " ", "-")
}

// Qualified joins a parent qualified name and a node name.
// Root-level names have no prefix.
func Qualified(prefix, name string) string {
	segment := Segment(name)
	if prefix == "" {
		return segment
	}
	return prefix + Separator + segment
}
