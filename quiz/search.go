package quiz

import (
	"strings"

	"golang.org/x/text/cases"
)

// ParseTerms splits a free-text query on any Unicode whitespace, including the
// ideographic space.
func ParseTerms(query string) []string {
	return strings.Fields(query)
}

// Matcher tests rows against a set of search terms. All terms must be present.
type Matcher struct {
	resolver Resolver
	terms    []string
}

// NewMatcher folds terms once so each row only folds its own text.
func (r Resolver) NewMatcher(terms []string) Matcher {
	folder := cases.Fold()
	folded := make([]string, 0, len(terms))
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			continue
		}
		folded = append(folded, folder.String(term))
	}
	return Matcher{resolver: r, terms: folded}
}

// Match reports whether rec's searchable text contains every term,
// ignoring case. An empty term set matches everything.
func (m Matcher) Match(rec Record) bool {
	if len(m.terms) == 0 {
		return true
	}
	haystack := cases.Fold().String(m.resolver.RowText(rec))
	for _, term := range m.terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// Filter returns the rows of t matching all terms, in original order, under
// the same headers.
func (r Resolver) Filter(t Table, terms []string) Table {
	matcher := r.NewMatcher(terms)
	out := Table{
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([][]string, 0, len(t.Rows)),
	}
	for i := range t.Rows {
		if matcher.Match(t.Row(i)) {
			out.Rows = append(out.Rows, append([]string(nil), t.Rows[i]...))
		}
	}
	return out
}

// Filter is DefaultResolver.Filter.
func Filter(t Table, terms []string) Table {
	return DefaultResolver.Filter(t, terms)
}
