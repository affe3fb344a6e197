// Wires configuration and collaborators into the pipelines.

package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maruel/venuefill/internal/assets"
	"github.com/maruel/venuefill/internal/catalog"
	"github.com/maruel/venuefill/internal/config"
	"github.com/maruel/venuefill/internal/places"
)

// Lookup finds venues in the remote service. Implementations swallow and log
// their own errors and return nil for "no result".
type Lookup interface {
	FindCoordinates(ctx context.Context, name, group string) *places.Location
	FindPhotos(ctx context.Context, name, group string) []places.Photo
}

// Fetcher downloads one photo reference to a local path.
type Fetcher interface {
	Fetch(ctx context.Context, ref, dest string) (assets.Result, error)
}

// Runner runs pipelines with an explicit configuration. It holds no state
// between runs.
type Runner struct {
	Config   *config.Config
	Lookup   Lookup
	Fetcher  Fetcher
	Progress Reporter
	// DryRun computes catalog patches without saving them.
	DryRun bool
}

// NewRunner returns a runner talking to the Places API with apiKey.
func NewRunner(cfg *config.Config, apiKey string, progress Reporter) *Runner {
	client := places.NewClient(places.Options{
		APIKey:   apiKey,
		Region:   cfg.Region,
		Interval: cfg.Interval.D(),
		Timeout:  cfg.Timeout.D(),
		MaxWidth: cfg.PhotoMaxWidth,
	})
	return &Runner{
		Config:   cfg,
		Lookup:   client,
		Fetcher:  assets.NewDownloader(client.MediaURL, cfg.MinAssetSize, cfg.Timeout.D()),
		Progress: progress,
	}
}

func (r *Runner) progress() Reporter {
	if r.Progress == nil {
		return NullProgress{}
	}
	return r.Progress
}

func (r *Runner) layout() *assets.Layout {
	return &assets.Layout{
		Dir:     r.Config.PhotosDir,
		Prefix:  r.Config.PhotosPrefix,
		Ext:     r.Config.PhotoExt,
		MinSize: r.Config.MinAssetSize,
	}
}

// loadCatalog loads and parses the catalog, logging parse anomalies. It is the
// only place aware of the catalog format; pipelines edit through the Editor.
func (r *Runner) loadCatalog(ctx context.Context) (catalog.Editor, []catalog.Record, error) {
	doc, err := catalog.Load(r.Config.Catalog)
	if err != nil {
		return nil, nil, err
	}
	res := doc.Parse(r.Config.DefaultGroup)
	for _, span := range res.Malformed {
		slog.WarnContext(ctx, "Skipping record without a name", "offset", span.Start, "text", excerpt(span.Text(doc.Text())))
	}
	for _, id := range res.Duplicates {
		slog.WarnContext(ctx, "Duplicate record id; only the first is patched", "id", id)
	}
	return doc, res.Records, nil
}

// run wraps a pipeline body with timing, run-scoped logging and reporting.
func (r *Runner) run(ctx context.Context, pipeline string, fn func(ctx context.Context, s *Summary) error) (*Summary, error) {
	start := time.Now()
	s := newSummary(pipeline)
	slog.InfoContext(ctx, "Run started", "pipeline", pipeline, "run", s.RunID.String())
	err := fn(ctx, s)
	s.Duration = time.Since(start)
	if err != nil {
		slog.ErrorContext(ctx, "Run aborted", "pipeline", pipeline, "run", s.RunID.String(), "err", err)
		return s, err
	}
	slog.InfoContext(ctx, "Run complete", "pipeline", pipeline, "run", s.RunID.String(),
		"succeeded", s.Succeeded, "failed", s.Failed, "skipped", s.Skipped)
	r.progress().OnComplete(s)
	return s, nil
}

// save persists the catalog unless running dry.
func (r *Runner) save(doc catalog.Editor, s *Summary) error {
	if r.DryRun || !doc.Changed() {
		return nil
	}
	if err := doc.Save(); err != nil {
		return &PersistError{Path: doc.Path(), Err: err}
	}
	s.wrote(doc.Path())
	return nil
}

// writeIndex rebuilds the photo index for records.
func (r *Runner) writeIndex(records []catalog.Record, s *Summary) (*assets.Index, error) {
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	ix := assets.Build(r.layout(), ids, r.Config.MaxGallery)
	if err := ix.Write(r.Config.Index, r.Config.IndexVar); err != nil {
		return nil, &PersistError{Path: r.Config.Index, Err: err}
	}
	s.wrote(r.Config.Index)
	return ix, nil
}

// excerpt shortens s to at most 60 runes.
func excerpt(s string) string {
	const n = 60
	i := 0
	for off := range s {
		if i == n {
			return s[:off] + "…"
		}
		i++
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
