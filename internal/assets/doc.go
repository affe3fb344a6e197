// Package assets downloads venue photos and derives the photo index from the
// files present on disk.
//
// Every record has at most one primary photo, <id><ext>, and a run of gallery
// photos <id>-1<ext> … <id>-N<ext>, all in one directory. A file counts only
// when it is at least the minimum size; smaller files are error pages or
// placeholders.
package assets
