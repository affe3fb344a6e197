// Package enrich runs the catalog enrichment pipelines.
//
// Each pipeline is one sequential batch run over the catalog records:
//   - Coordinates looks up a location per record and patches lat/lng
//   - Photos downloads the primary photo per record
//   - Gallery downloads extra photos per record
//   - Handles patches social handles supplied by configuration
//   - Index rebuilds the photo index from the files on disk
//
// Lookups are paced and resumable: completed work is persisted after every
// record, so rerunning after an interruption continues where it stopped. Only
// a failure to persist state aborts a run; every per-record failure is
// reported and counted.
package enrich
