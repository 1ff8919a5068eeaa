package models

import (
	"sort"
	"strings"
)

// CompositeDelimiter joins the parts of a multi-paragraph value. It is a
// control character and never appears in spreadsheet text.
const CompositeDelimiter = "\x1f"

// Replacements maps a placeholder label to its resolved value.
type Replacements map[string]string

// Parts splits a composite value into its parts.
func (r Replacements) Parts(key string) []string {
	v, ok := r[key]
	if !ok {
		return nil
	}
	return strings.Split(v, CompositeDelimiter)
}

// Keys returns the labels in sorted order.
func (r Replacements) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
