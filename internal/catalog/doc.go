// Package catalog locates and extends venue records inside a hand-maintained,
// semi-structured catalog source file.
//
// The catalog is not parsed with a grammar. Records are found by their
// `id: "<id>"` declaration and extended by appending a field right after an
// anchor field, the last field known to be physically present in the record:
//   - [Locate] returns the span from the id declaration to the end of the anchor,
//     which must lie inside the same record
//   - [Document.Insert] appends one field after that span, or reports it as
//     already present
//   - [Parse] extracts the id, name and group of every record block
//
// Known limitation: when an id is declared more than once, only the first
// declaration is ever located and patched.
package catalog
