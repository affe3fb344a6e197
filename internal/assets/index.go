// Derives the id to photo mapping from the files present on disk.

package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maruel/venuefill/internal/fileutil"
)

// DefaultMaxGallery is the number of gallery photos probed per record.
const DefaultMaxGallery = 5

// Entry lists the photos of one record: the primary first, then the gallery
// in ascending suffix order.
type Entry struct {
	ID   string
	Refs []string
}

// Index maps record ids to their photos, in record order.
type Index struct {
	Entries []Entry
}

// Build probes the layout for every id. A record is included only when its
// primary photo is valid; gallery photos that are missing or undersized are
// skipped without affecting the order of the others.
//
// Build reads only the filesystem, so the result reflects files deleted or
// replaced by hand.
func Build(l *Layout, ids []string, maxGallery int) *Index {
	ix := &Index{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !l.Valid(l.Primary(id)) {
			continue
		}
		e := Entry{ID: id, Refs: []string{l.ref(id + l.Ext)}}
		for n := 1; n <= maxGallery; n++ {
			if l.Valid(l.Gallery(id, n)) {
				e.Refs = append(e.Refs, l.ref(l.galleryName(id, n)))
			}
		}
		ix.Entries = append(ix.Entries, e)
	}
	return ix
}

// GalleryCount returns the number of gallery photos over all entries.
func (ix *Index) GalleryCount() int {
	n := 0
	for _, e := range ix.Entries {
		n += len(e.Refs) - 1
	}
	return n
}

// MarshalJSON encodes the index as an object in record order. A record with
// only a primary photo maps to a string, otherwise to an array.
func (ix *Index) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range ix.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.ID)
		if err != nil {
			return nil, err
		}
		var v []byte
		if len(e.Refs) == 1 {
			v, err = json.Marshal(e.Refs[0])
		} else {
			v, err = json.Marshal(e.Refs)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Render returns the file content for the index.
//
// With a ".json" path it is plain JSON. Otherwise it is a script declaring
// varName, preceded by a summary comment. The output does not depend on the
// time of the run.
func (ix *Index) Render(path, varName string) ([]byte, error) {
	b, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return append(b, '\n'), nil
	}
	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "// Auto-generated photo map: %d venues, %d gallery photos\n", len(ix.Entries), ix.GalleryCount())
	_, _ = fmt.Fprintf(&buf, "const %s = %s;\n", varName, b)
	return buf.Bytes(), nil
}

// Write atomically writes the rendered index to path. An identical existing
// file is left untouched.
func (ix *Index) Write(path, varName string) error {
	b, err := ix.Render(path, varName)
	if err != nil {
		return err
	}
	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, b) { //nolint:gosec // G304: user-specified index path
		return nil
	}
	if err := fileutil.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}
