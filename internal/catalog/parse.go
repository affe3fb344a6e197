// Extracts record descriptors from catalog text.

package catalog

import "regexp"

// Record describes one venue entry of the catalog.
type Record struct {
	ID    string
	Name  string
	Group string
	// Span is the block of text the record was extracted from.
	Span Span
}

// ParseResult is the outcome of Parse.
type ParseResult struct {
	// Records in source order.
	Records []Record
	// Malformed holds the spans of blocks declaring an id but no name. They
	// are not records.
	Malformed []Span
	// Duplicates holds ids declared by more than one record, in first-seen
	// order. Only the first declaration is ever patched.
	Duplicates []string
}

var (
	boundaryRe = regexp.MustCompile(`\n\s*\{`)
	idRe       = regexp.MustCompile(`\bid:\s*"([^"]+)"`)
	nameRe     = regexp.MustCompile(`\bname:\s*"([^"]+)"`)
	groupRe    = regexp.MustCompile(`\barea:\s*"([^"]+)"`)
)

// Parse splits text on record boundaries (a line opening with "{") and
// extracts id, name and group from each block independently.
//
// Blocks without an id are ignored. Blocks with an id but no name are reported
// as Malformed. A block without a group gets defaultGroup.
func Parse(text, defaultGroup string) ParseResult {
	var res ParseResult
	seen := make(map[string]int)
	for _, span := range blocks(text) {
		block := span.Text(text)
		id := idRe.FindStringSubmatch(block)
		if id == nil {
			continue
		}
		name := nameRe.FindStringSubmatch(block)
		if name == nil {
			res.Malformed = append(res.Malformed, span)
			continue
		}
		r := Record{ID: id[1], Name: name[1], Group: defaultGroup, Span: span}
		if g := groupRe.FindStringSubmatch(block); g != nil {
			r.Group = g[1]
		}
		if seen[r.ID]++; seen[r.ID] == 2 {
			res.Duplicates = append(res.Duplicates, r.ID)
		}
		res.Records = append(res.Records, r)
	}
	return res
}

// blocks returns the spans between consecutive record boundaries, including
// the text before the first boundary.
func blocks(text string) []Span {
	var out []Span
	start := 0
	for _, loc := range boundaryRe.FindAllStringIndex(text, -1) {
		out = append(out, Span{Start: start, End: loc[0]})
		start = loc[0]
	}
	return append(out, Span{Start: start, End: len(text)})
}
