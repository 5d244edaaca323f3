package model

import "strings"

// KeyValue represents one key/value request entry.
type KeyValue struct {
	Key   string
	Value string
}

// KeyValues preserves insertion order for headers, query parameters and form fields.
type KeyValues []KeyValue

// Get returns the last value for an exact key match.
func (entries KeyValues) Get(key string) (string, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Key == key {
			return entries[i].Value, true
		}
	}
	return "", false
}

// GetFold returns the last value for a case-insensitive key match.
func (entries KeyValues) GetFold(key string) (string, bool) {
	for i := len(entries) - 1; i >= 0; i-- {
		if strings.EqualFold(entries[i].Key, key) {
			return entries[i].Value, true
		}
	}
	return "", false
}

// HasFold reports whether any entry matches key case-insensitively.
func (entries KeyValues) HasFold(key string) bool {
	_, ok := entries.GetFold(key)
	return ok
}
