package listview

import "strings"

// Query is the user's current search term and enum filters. Empty values
// match everything.
type Query struct {
	Search string
	Equals map[string]string
}

func (q Query) IsZero() bool {
	if q.Search != "" {
		return false
	}

	for _, v := range q.Equals {
		if v != "" {
			return false
		}
	}

	return true
}

// Filter designates which fields of T take part in searching.
type Filter[T any] struct {
	// Text fields are matched by case-insensitive substring.
	Text []func(T) string
	// Enums are matched exactly, by name.
	Enums map[string]func(T) string
}

// Apply returns the records matching q in their original order. The result
// never aliases records.
func (f Filter[T]) Apply(records []T, q Query) []T {
	if q.IsZero() {
		return append([]T(nil), records...)
	}

	needle := strings.ToLower(q.Search)
	out := make([]T, 0, len(records))

	for _, rec := range records {
		if f.matchText(rec, needle) && f.matchEnums(rec, q.Equals) {
			out = append(out, rec)
		}
	}

	return out
}

func (f Filter[T]) matchText(rec T, needle string) bool {
	if needle == "" {
		return true
	}

	for _, field := range f.Text {
		if strings.Contains(strings.ToLower(field(rec)), needle) {
			return true
		}
	}

	return false
}

func (f Filter[T]) matchEnums(rec T, equals map[string]string) bool {
	for name, want := range equals {
		if want == "" {
			continue
		}

		field, ok := f.Enums[name]
		if !ok || field(rec) != want {
			return false
		}
	}

	return true
}
