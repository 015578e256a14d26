package record

import "strings"

// Schema is the column layout of the record collection, built once per read
// from the header row. Lookups are case-insensitive and whitespace-trimmed so
// header renames that only change casing or spacing keep resolving.
type Schema struct {
	headers []string
	index   map[string]int
}

// BuildSchema maps normalized header names to column indexes. When a header
// appears twice the first occurrence wins.
func BuildSchema(headers []string) *Schema {
	s := &Schema{headers: headers, index: make(map[string]int, len(headers))}
	for i, h := range headers {
		key := normalize(h)
		if key == "" {
			continue
		}
		if _, dup := s.index[key]; !dup {
			s.index[key] = i
		}
	}
	return s
}

// Col returns the index of the first column matching any of the given
// aliases, in alias order.
func (s *Schema) Col(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := s.index[normalize(a)]; ok {
			return i, true
		}
	}
	return -1, false
}

// Headers returns the raw header row as observed.
func (s *Schema) Headers() []string { return s.headers }

func normalize(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// ColumnLetter converts a zero-based column index to its A1 letter form.
func ColumnLetter(idx int) string {
	letters := ""
	n := idx + 1
	for n > 0 {
		m := (n - 1) % 26
		letters = string(rune('A'+m)) + letters
		n = (n - m) / 26
	}
	return letters
}
