// Downloads primary and gallery photos.

package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maruel/venuefill/internal/assets"
	"github.com/maruel/venuefill/internal/checkpoint"
	"github.com/maruel/venuefill/internal/places"
)

// Photos downloads the first ranked photo of every record lacking a valid
// primary photo, then rebuilds the index.
//
// Resuming relies on the files alone: a record with a valid primary photo is
// not looked up again.
func (r *Runner) Photos(ctx context.Context) (*Summary, error) {
	return r.run(ctx, "photos", func(ctx context.Context, s *Summary) error {
		_, records, err := r.loadCatalog(ctx)
		if err != nil {
			return err
		}
		l := r.layout()
		s.Records = len(records)
		p := r.progress()
		p.OnStart("photos", len(records))
		for i := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := &records[i]
			p.OnRecord(i+1, len(records), rec)
			dest := l.Primary(rec.ID)
			if l.Valid(dest) {
				s.Skipped++
				s.Assets++
				p.OnOutcome(Skipped, "Already have photo")
				continue
			}
			photos := r.Lookup.FindPhotos(ctx, rec.Name, rec.Group)
			if len(photos) == 0 {
				s.Failed++
				p.OnOutcome(Failed, "No photos found")
				continue
			}
			if _, err := r.Fetcher.Fetch(ctx, photos[0].Name, dest); err != nil {
				slog.WarnContext(ctx, "Photo download failed", "id", rec.ID, "err", err)
				s.Failed++
				p.OnOutcome(Failed, "Failed to download photo")
				continue
			}
			s.Succeeded++
			s.Assets++
			p.OnOutcome(Succeeded, "Photo saved")
		}
		_, err = r.writeIndex(records, s)
		return err
	})
}

// Gallery downloads up to MaxGallery extra photos for every record not in the
// gallery checkpoint, then rebuilds the index.
//
// The first ranked photo is the primary one and is not part of the gallery.
// The checkpoint stores the number of gallery photos obtained per record; 0
// means the lookup found none. Individual files already valid on disk are not
// downloaded again.
func (r *Runner) Gallery(ctx context.Context) (*Summary, error) {
	return r.run(ctx, "gallery", func(ctx context.Context, s *Summary) error {
		_, records, err := r.loadCatalog(ctx)
		if err != nil {
			return err
		}
		store, err := checkpoint.Open[int](r.Config.GalleryCheckpoint)
		if err != nil {
			return err
		}
		l := r.layout()
		pacer := places.NewPacer(r.Config.DownloadInterval.D())
		s.Records = len(records)
		p := r.progress()
		p.OnStart("gallery", len(records))
		record := func(id string, n int) error {
			if err := store.Record(id, n); err != nil {
				return &PersistError{Path: store.Path(), Err: err}
			}
			s.wrote(store.Path())
			return nil
		}
		for i := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := &records[i]
			p.OnRecord(i+1, len(records), rec)
			if n, ok := store.Get(rec.ID); ok {
				s.Skipped++
				p.OnOutcome(Skipped, fmt.Sprintf("Already have %s", plural(n, "gallery photo")))
				continue
			}
			photos := r.Lookup.FindPhotos(ctx, rec.Name, rec.Group)
			if len(photos) == 0 {
				s.Failed++
				p.OnOutcome(Failed, "No photos available")
				if err := record(rec.ID, 0); err != nil {
					return err
				}
				continue
			}
			gallery := photos[1:min(len(photos), r.Config.MaxGallery+1)]
			n, err := r.fetchGallery(ctx, l, pacer, rec.ID, gallery)
			if err != nil {
				return err
			}
			s.Succeeded++
			s.Assets += n
			if len(gallery) == 0 {
				p.OnOutcome(Succeeded, "Only 1 photo available (primary only)")
			} else {
				p.OnOutcome(Succeeded, fmt.Sprintf("%s saved", plural(n, "gallery photo")))
			}
			if err := record(rec.ID, n); err != nil {
				return err
			}
		}
		_, err = r.writeIndex(records, s)
		return err
	})
}

// fetchGallery downloads gallery photos as <id>-1, <id>-2, … and returns how
// many are valid on disk afterwards. Only a canceled context is an error.
func (r *Runner) fetchGallery(ctx context.Context, l *assets.Layout, pacer *places.Pacer, id string, gallery []places.Photo) (int, error) {
	n := 0
	for i, photo := range gallery {
		dest := l.Gallery(id, i+1)
		if l.Valid(dest) {
			n++
			continue
		}
		if err := pacer.Wait(ctx); err != nil {
			return n, err
		}
		if _, err := r.Fetcher.Fetch(ctx, photo.Name, dest); err != nil {
			slog.WarnContext(ctx, "Gallery download failed", "id", id, "n", i+1, "err", err)
			continue
		}
		n++
	}
	return n, nil
}
