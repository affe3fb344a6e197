// Finds a record's span between its id declaration and an anchor field.

package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotFound is returned when the record id or its anchor cannot be found.
var ErrNotFound = errors.New("not found")

// Anchor identifies the field after which new fields are inserted.
//
// The pattern must match the whole declaration including its value, e.g. the
// closing bracket of a list or the last digit of a number.
type Anchor struct {
	// Field is the declared field name, e.g. "tags".
	Field   string
	pattern *regexp.Regexp
}

// NewAnchor returns an anchor for field whose declaration matches expr.
func NewAnchor(field, expr string) Anchor {
	return Anchor{Field: field, pattern: regexp.MustCompile(expr)}
}

// String implements fmt.Stringer.
func (a Anchor) String() string {
	return a.Field
}

// Anchors used by the enrichment pipelines. Each pipeline inserts its fields
// after the last field the previous pipeline added, so the chain is
// tags → lat → lng → instagram.
var (
	TagsAnchor = NewAnchor("tags", `\btags:\s*\[[^\]]*\]`)
	LatAnchor  = NewAnchor("lat", `\blat:\s*-?[\d.]+`)
	LngAnchor  = NewAnchor("lng", `\blng:\s*-?[\d.]+`)
)

// Span is a half-open byte range [Start, End) into a catalog text.
type Span struct {
	Start int
	End   int
}

// Text returns the spanned substring of text.
func (s Span) Text(text string) string {
	return text[s.Start:s.End]
}

// idPattern returns the pattern matching the declaration of id.
func idPattern(id string) *regexp.Regexp {
	return regexp.MustCompile(`\bid:\s*"` + regexp.QuoteMeta(id) + `"`)
}

// Locate returns the span from the first declaration of id to the end of the
// first anchor declaration following it within the same record.
//
// It returns ErrNotFound when id is not declared, or when the record ends
// before an anchor is found. The record ends at its closing brace or at the
// next id declaration, whichever comes first, so a record missing its anchor
// is never matched against the anchor of a later record.
func Locate(text, id string, anchor Anchor) (Span, error) {
	loc := idPattern(id).FindStringIndex(text)
	if loc == nil {
		return Span{}, fmt.Errorf("record %q: %w", id, ErrNotFound)
	}
	end := recordEnd(text, loc[1])
	rest := anchor.pattern.FindStringIndex(text[loc[0]:end])
	if rest == nil {
		return Span{}, fmt.Errorf("record %q: anchor %q: %w", id, anchor.Field, ErrNotFound)
	}
	return Span{Start: loc[0], End: loc[0] + rest[1]}, nil
}

// recordEnd returns the offset where the record holding offset from ends: its
// closing bracket, the next id declaration, or the end of text.
//
// Brackets nested inside the record are balanced. String literals and
// comments are skipped.
func recordEnd(text string, from int) int {
	limit := len(text)
	if next := idRe.FindStringIndex(text[from:]); next != nil {
		limit = from + next[0]
	}
	depth := 0
	for i := from; i < limit; i++ {
		switch text[i] {
		case '"', '\'', '`':
			i = skipString(text, i, limit)
		case '/':
			i = skipComment(text, i, limit)
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return limit
}

// skipString returns the offset of the quote closing the literal opened at i.
func skipString(text string, i, limit int) int {
	q := text[i]
	for i++; i < limit; i++ {
		switch text[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return limit
}

// skipComment returns the last offset of the comment starting at i, or i when
// there is none.
func skipComment(text string, i, limit int) int {
	if i+1 >= limit {
		return i
	}
	switch text[i+1] {
	case '/':
		if j := strings.IndexByte(text[i:limit], '\n'); j >= 0 {
			return i + j
		}
		return limit
	case '*':
		if j := strings.Index(text[i+2:limit], "*/"); j >= 0 {
			return i + 2 + j + 1
		}
		return limit
	}
	return i
}
