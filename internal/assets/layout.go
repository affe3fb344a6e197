package assets

import (
	"path"
	"path/filepath"
	"strconv"

	"github.com/maruel/venuefill/internal/fileutil"
)

// DefaultMinSize is the smallest file accepted as a real photo.
const DefaultMinSize = 1000

// Layout maps record ids to asset files.
type Layout struct {
	// Dir is the directory holding the files.
	Dir string
	// Prefix is the directory as referenced from the index, e.g. "photos".
	Prefix string
	// Ext is the file extension including the dot.
	Ext string
	// MinSize is the minimum valid file size in bytes.
	MinSize int64
}

// Primary returns the path of the primary photo of id.
func (l *Layout) Primary(id string) string {
	return filepath.Join(l.Dir, id+l.Ext)
}

// Gallery returns the path of the n-th gallery photo of id, n starting at 1.
func (l *Layout) Gallery(id string, n int) string {
	return filepath.Join(l.Dir, l.galleryName(id, n))
}

// Valid reports whether p exists and is at least MinSize bytes.
func (l *Layout) Valid(p string) bool {
	return fileutil.SizeAtLeast(p, l.MinSize)
}

func (l *Layout) galleryName(id string, n int) string {
	return id + "-" + strconv.Itoa(n) + l.Ext
}

// ref returns the index reference of a file name.
func (l *Layout) ref(name string) string {
	return path.Join(l.Prefix, name)
}
