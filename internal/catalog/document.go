// In-memory catalog text with additive field insertion and atomic save.

package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/maruel/venuefill/internal/fileutil"
)

// DefaultLookahead is how far past the anchor Insert looks for an existing
// declaration of the field before deciding to add it. The window never
// extends past the end of the record.
const DefaultLookahead = 100

// Outcome is the result of a successful Insert.
type Outcome int

const (
	// Inserted means the field was appended after the anchor.
	Inserted Outcome = iota + 1
	// AlreadyPresent means the field was already declared; nothing changed.
	AlreadyPresent
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case AlreadyPresent:
		return "already present"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Editor reads and extends records of a catalog.
//
// Document implements it over the free-form text source. Moving the catalog
// to a structured format only requires another implementation; an Anchor's
// Field then names the field to insert after.
type Editor interface {
	// Path is the file Save writes to.
	Path() string
	Parse(defaultGroup string) ParseResult
	Insert(id string, anchor Anchor, f Field) (Outcome, error)
	Changed() bool
	Save() error
}

// Document is a catalog text loaded in memory.
//
// Insert mutates the text only in memory; Save rewrites the whole file
// atomically.
type Document struct {
	// Lookahead is the number of bytes past the anchor searched for an
	// existing declaration. The window stops at the record's closing brace;
	// nested object literals do not end it.
	Lookahead int

	path    string
	text    string
	changed bool
}

var _ Editor = (*Document)(nil)

// Load reads the catalog at path.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path) //nolint:gosec // G304: user-specified catalog path
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	d := NewDocument(string(b))
	d.path = path
	return d, nil
}

// NewDocument returns a document holding text, not backed by a file.
func NewDocument(text string) *Document {
	return &Document{Lookahead: DefaultLookahead, text: text}
}

// Path returns the file the document was loaded from, if any.
func (d *Document) Path() string {
	return d.path
}

// Text returns the current text.
func (d *Document) Text() string {
	return d.text
}

// Changed reports whether Insert modified the text since load or last save.
func (d *Document) Changed() bool {
	return d.changed
}

// Parse parses the current text. See the package level Parse.
func (d *Document) Parse(defaultGroup string) ParseResult {
	return Parse(d.text, defaultGroup)
}

// Insert appends f right after the anchor of record id.
//
// When f.Key is already declared between the id and the anchor, or within the
// look-ahead window past the anchor, it returns AlreadyPresent and leaves the
// text untouched. It returns ErrNotFound when the record or its anchor is
// missing; the text is untouched in that case too.
func (d *Document) Insert(id string, anchor Anchor, f Field) (Outcome, error) {
	span, err := Locate(d.text, id, anchor)
	if err != nil {
		return 0, err
	}
	old := span.Text(d.text)
	if f.declaredIn(old) || f.declaredIn(d.window(span.End)) {
		return AlreadyPresent, nil
	}
	updated := old + ",\n" + lineIndent(d.text, span.End) + f.Declaration()
	// Locate returns the first declaration of id, so the first textual
	// occurrence of old starts at span.Start.
	d.text = d.text[:span.Start] + updated + d.text[span.End:]
	d.changed = true
	return Inserted, nil
}

// Save atomically rewrites the backing file when the text changed.
func (d *Document) Save() error {
	if !d.changed {
		return nil
	}
	if d.path == "" {
		return fmt.Errorf("document has no backing file")
	}
	if err := fileutil.WriteFile(d.path, []byte(d.text), 0o644); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	d.changed = false
	return nil
}

// window returns the look-ahead text starting at off, bounded by the end of
// the record holding off.
func (d *Document) window(off int) string {
	return d.text[off:min(off+d.Lookahead, recordEnd(d.text, off))]
}

// lineIndent returns the leading whitespace of the line holding offset off-1.
func lineIndent(text string, off int) string {
	start := strings.LastIndexByte(text[:off], '\n') + 1
	line := text[start:off]
	trimmed := strings.TrimLeft(line, " \t")
	if indent := line[:len(line)-len(trimmed)]; indent != "" {
		return indent
	}
	return "    "
}
