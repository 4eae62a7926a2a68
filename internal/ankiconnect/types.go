package ankiconnect

import "strings"

// Note is the flattened view of an AnkiConnect notesInfo record.
type Note struct {
	ID     int64
	Fields map[string]string
	Tags   []string
}

// Field returns the trimmed value of a named field, or "" when absent. This
// is the one place that tolerates missing keys; callers can rely on the
// empty string instead of checking map membership.
func (n Note) Field(name string) string {
	return strings.TrimSpace(n.Fields[name])
}

// FirstField returns the first non-empty value among the candidate field
// names, tried in order.
func (n Note) FirstField(candidates []string) string {
	for _, name := range candidates {
		if value := n.Field(name); value != "" {
			return value
		}
	}
	return ""
}
