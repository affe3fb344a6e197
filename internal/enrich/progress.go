// Defines progress reporting interfaces and implementations.

package enrich

import (
	"fmt"
	"io"
	"time"

	"github.com/maruel/venuefill/internal/catalog"
)

// Status classifies the outcome of one record.
type Status int

const (
	// Succeeded means the record got its data.
	Succeeded Status = iota + 1
	// Failed means no data could be obtained for the record.
	Failed
	// Skipped means the record needed no work.
	Skipped
)

// Reporter is the interface for reporting run progress.
type Reporter interface {
	OnStart(pipeline string, total int)
	OnRecord(current, total int, r *catalog.Record)
	OnOutcome(status Status, msg string)
	OnComplete(s *Summary)
}

// CLIProgress writes progress to a terminal.
type CLIProgress struct {
	Out io.Writer
}

// OnStart is called when a run begins.
func (p *CLIProgress) OnStart(pipeline string, total int) {
	_, _ = fmt.Fprintf(p.Out, "%s: %d venues\n\n", pipeline, total)
}

// OnRecord is called before each record is processed.
func (p *CLIProgress) OnRecord(current, total int, r *catalog.Record) {
	_, _ = fmt.Fprintf(p.Out, "[%d/%d] %s (%s)\n", current, total, r.Name, r.Group)
}

// OnOutcome is called with the outcome of the current record.
func (p *CLIProgress) OnOutcome(status Status, msg string) {
	mark := "-"
	switch status {
	case Succeeded:
		mark = "✓"
	case Failed:
		mark = "✗"
	}
	_, _ = fmt.Fprintf(p.Out, "  %s %s\n", mark, msg)
}

// OnComplete is called when the run finishes.
func (p *CLIProgress) OnComplete(s *Summary) {
	_, _ = fmt.Fprintf(p.Out, "\n%s\n", s)
	for _, w := range s.Written {
		_, _ = fmt.Fprintf(p.Out, "Wrote:    %s\n", w)
	}
	_, _ = fmt.Fprintf(p.Out, "Duration: %s\n", s.Duration.Round(time.Millisecond))
}

// NullProgress discards all progress updates.
type NullProgress struct{}

// OnStart is called when a run begins.
func (NullProgress) OnStart(string, int) {}

// OnRecord is called before each record is processed.
func (NullProgress) OnRecord(int, int, *catalog.Record) {}

// OnOutcome is called with the outcome of the current record.
func (NullProgress) OnOutcome(Status, string) {}

// OnComplete is called when the run finishes.
func (NullProgress) OnComplete(*Summary) {}
