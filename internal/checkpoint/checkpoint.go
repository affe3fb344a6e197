// Package checkpoint persists per-record fetch outcomes so an interrupted run
// resumes where it stopped.
//
// The file is a plain JSON object keyed by record id. It is safe to edit by
// hand or delete to force re-processing.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/maruel/venuefill/internal/fileutil"
)

// Store maps record ids to outcomes of type V.
//
// Every Record rewrites the whole file before returning, so an interruption
// loses at most the unit of work in flight. Store is not safe for concurrent
// use.
type Store[V any] struct {
	path    string
	entries map[string]V
}

// Open loads the checkpoint at path. A missing file yields an empty store.
func Open[V any](path string) (*Store[V], error) {
	s := &Store[V]{path: path, entries: make(map[string]V)}
	b, err := os.ReadFile(path) //nolint:gosec // G304: user-specified checkpoint path
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	if len(b) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.entries); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %s: %w", path, err)
	}
	if s.entries == nil {
		s.entries = make(map[string]V)
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store[V]) Path() string {
	return s.path
}

// Len returns the number of entries.
func (s *Store[V]) Len() int {
	return len(s.entries)
}

// Has reports whether id has an outcome, i.e. its lookup must not be repeated.
func (s *Store[V]) Has(id string) bool {
	_, ok := s.entries[id]
	return ok
}

// Get returns the outcome for id.
func (s *Store[V]) Get(id string) (V, bool) {
	v, ok := s.entries[id]
	return v, ok
}

// IDs returns the ids with an outcome, sorted.
func (s *Store[V]) IDs() []string {
	return slices.Sorted(maps.Keys(s.entries))
}

// Record stores the outcome for id and persists the whole store.
//
// On error the in-memory entry is rolled back so memory never runs ahead of
// the file.
func (s *Store[V]) Record(id string, v V) error {
	prev, had := s.entries[id]
	s.entries[id] = v
	if err := s.save(); err != nil {
		if had {
			s.entries[id] = prev
		} else {
			delete(s.entries, id)
		}
		return err
	}
	return nil
}

func (s *Store[V]) save() error {
	b, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if err := fileutil.WriteFile(s.path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint %s: %w", s.path, err)
	}
	return nil
}
