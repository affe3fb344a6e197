// Patches social handles into the catalog.

package enrich

import (
	"context"
	"log/slog"

	"github.com/maruel/venuefill/internal/catalog"
)

// Handles inserts an instagram field after the coordinates of every record
// with a configured handle. Records mapped to no handle are left alone.
//
// The run needs no checkpoint: a record already carrying the field is
// reported as skipped.
func (r *Runner) Handles(ctx context.Context) (*Summary, error) {
	return r.run(ctx, "handles", func(ctx context.Context, s *Summary) error {
		doc, records, err := r.loadCatalog(ctx)
		if err != nil {
			return err
		}
		var ids []string
		for id, h := range r.Config.Handles {
			if h != nil {
				ids = append(ids, id)
			}
		}
		order := patchOrder(records, ids)
		byID := make(map[string]*catalog.Record, len(records))
		for i := range records {
			if _, ok := byID[records[i].ID]; !ok {
				byID[records[i].ID] = &records[i]
			}
		}
		s.Records = len(order)
		p := r.progress()
		p.OnStart("handles", len(order))
		for i, id := range order {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := byID[id]
			if rec == nil {
				rec = &catalog.Record{ID: id, Name: id}
			}
			p.OnRecord(i+1, len(order), rec)
			handle := *r.Config.Handles[id]
			o, err := doc.Insert(id, catalog.LngAnchor, catalog.String("instagram", handle))
			switch {
			case err != nil:
				slog.WarnContext(ctx, "Cannot patch record", "id", id, "field", "instagram", "err", err)
				s.Failed++
				s.NotFound++
				p.OnOutcome(Failed, "No coordinates to anchor on")
			case o == catalog.AlreadyPresent:
				s.Skipped++
				s.AlreadyPresent++
				p.OnOutcome(Skipped, "Already has instagram")
			default:
				s.Succeeded++
				s.Patched++
				p.OnOutcome(Succeeded, "@"+handle)
			}
		}
		return r.save(doc, s)
	})
}
