package enrich

import (
	"fmt"
	"strings"
	"time"

	"github.com/maruel/ksid"
)

// Summary is the outcome of a run.
type Summary struct {
	RunID    ksid.ID       `json:"run_id"`
	Pipeline string        `json:"pipeline"`
	Records  int           `json:"records"`
	Duration time.Duration `json:"duration"`

	// Per-record tallies.
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`

	// Assets is the number of photos downloaded or already present.
	Assets int `json:"assets,omitempty"`

	// Catalog patch tallies.
	Patched        int `json:"patched,omitempty"`
	AlreadyPresent int `json:"already_present,omitempty"`
	NotFound       int `json:"not_found,omitempty"`

	// Written lists the files rewritten by the run.
	Written []string `json:"written,omitempty"`
}

func newSummary(pipeline string) *Summary {
	return &Summary{RunID: ksid.NewID(), Pipeline: pipeline}
}

func (s *Summary) wrote(path string) {
	for _, p := range s.Written {
		if p == path {
			return
		}
	}
	s.Written = append(s.Written, path)
}

// String returns the one-line summary of the run.
func (s *Summary) String() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "%s: %d succeeded, %d failed, %d skipped", s.Pipeline, s.Succeeded, s.Failed, s.Skipped)
	if s.Assets > 0 {
		_, _ = fmt.Fprintf(&b, ", %d photos", s.Assets)
	}
	if s.Patched+s.AlreadyPresent+s.NotFound > 0 {
		_, _ = fmt.Fprintf(&b, "; patched %d, already present %d, not found %d", s.Patched, s.AlreadyPresent, s.NotFound)
	}
	return b.String()
}
