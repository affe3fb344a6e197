// Looks up venue coordinates and patches them into the catalog.

package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/maruel/venuefill/internal/catalog"
	"github.com/maruel/venuefill/internal/checkpoint"
	"github.com/maruel/venuefill/internal/places"
)

// Coordinates looks up every record without a checkpointed location, then
// inserts lat and lng after the tags list of every checkpointed record.
//
// A failed lookup is not checkpointed, so it is retried on the next run.
func (r *Runner) Coordinates(ctx context.Context) (*Summary, error) {
	return r.run(ctx, "coords", func(ctx context.Context, s *Summary) error {
		doc, records, err := r.loadCatalog(ctx)
		if err != nil {
			return err
		}
		store, err := checkpoint.Open[places.Location](r.Config.CoordsCheckpoint)
		if err != nil {
			return err
		}
		s.Records = len(records)
		p := r.progress()
		p.OnStart("coords", len(records))
		for i := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := &records[i]
			p.OnRecord(i+1, len(records), rec)
			if loc, ok := store.Get(rec.ID); ok {
				s.Skipped++
				p.OnOutcome(Skipped, fmt.Sprintf("Already have coords: %.5f, %.5f", loc.Lat, loc.Lng))
				continue
			}
			loc := r.Lookup.FindCoordinates(ctx, rec.Name, rec.Group)
			if loc == nil {
				s.Failed++
				p.OnOutcome(Failed, "No coordinates found")
				continue
			}
			if err := store.Record(rec.ID, *loc); err != nil {
				return &PersistError{Path: store.Path(), Err: err}
			}
			s.wrote(store.Path())
			s.Succeeded++
			p.OnOutcome(Succeeded, fmt.Sprintf("%.5f, %.5f %s", loc.Lat, loc.Lng, loc.PlaceName))
		}

		for _, id := range patchOrder(records, store.IDs()) {
			loc, _ := store.Get(id)
			r.patch(ctx, doc, id, s,
				step{catalog.TagsAnchor, catalog.Number("lat", loc.Lat)},
				step{catalog.LatAnchor, catalog.Number("lng", loc.Lng)})
		}
		return r.save(doc, s)
	})
}

type step struct {
	anchor catalog.Anchor
	field  catalog.Field
}

// patch applies steps in order to record id and tallies the record once:
// patched when any field was inserted, already present when none was.
func (r *Runner) patch(ctx context.Context, doc catalog.Editor, id string, s *Summary, steps ...step) {
	inserted := false
	for _, st := range steps {
		o, err := doc.Insert(id, st.anchor, st.field)
		if err != nil {
			s.NotFound++
			slog.WarnContext(ctx, "Cannot patch record", "id", id, "field", st.field.Key, "err", err)
			return
		}
		if o == catalog.Inserted {
			inserted = true
		}
	}
	if inserted {
		s.Patched++
	} else {
		s.AlreadyPresent++
	}
}

// patchOrder returns the ids with data in catalog order, followed by the
// remaining ids sorted. Each id appears once.
func patchOrder(records []catalog.Record, ids []string) []string {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]string, 0, len(ids))
	for i := range records {
		if id := records[i].ID; want[id] {
			out = append(out, id)
			delete(want, id)
		}
	}
	rest := make([]string, 0, len(want))
	for _, id := range ids {
		if want[id] {
			rest = append(rest, id)
			delete(want, id)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}
