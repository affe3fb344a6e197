package enrich

import "context"

// Index rebuilds the photo index from the files on disk.
func (r *Runner) Index(ctx context.Context) (*Summary, error) {
	return r.run(ctx, "index", func(ctx context.Context, s *Summary) error {
		_, records, err := r.loadCatalog(ctx)
		if err != nil {
			return err
		}
		s.Records = len(records)
		ix, err := r.writeIndex(records, s)
		if err != nil {
			return err
		}
		s.Succeeded = len(ix.Entries)
		s.Skipped = len(records) - len(ix.Entries)
		s.Assets = len(ix.Entries) + ix.GalleryCount()
		return nil
	})
}
