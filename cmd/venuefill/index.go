package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/maruel/venuefill/internal/assets"
	"github.com/maruel/venuefill/internal/enrich"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the photo index from the photos on disk",
	Long:  "Rebuilds the photo index from the valid photos in the photos directory. With --watch, keeps running and rebuilds it whenever the directory changes.",
	Args:  cobra.NoArgs,
	RunE:  runIndex,
}

var (
	indexWatch    bool
	indexDebounce time.Duration
)

func init() {
	indexCmd.Flags().BoolVar(&indexWatch, "watch", false, "Rebuild on every change to the photos directory")
	indexCmd.Flags().DurationVar(&indexDebounce, "debounce", 500*time.Millisecond, "Quiet period before rebuilding in --watch mode")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := newRunner(cfg, false)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	s, err := r.Index(ctx)
	if err = finish(cfg, s, err); err != nil || !indexWatch {
		return err
	}
	// Progress output would repeat on every change.
	r.Progress = enrich.NullProgress{}
	slog.InfoContext(ctx, "Watching", "dir", cfg.PhotosDir)
	return assets.Watch(ctx, cfg.PhotosDir, indexDebounce, func() error {
		s, err := r.Index(ctx)
		if err == nil {
			slog.InfoContext(ctx, "Index rebuilt", "venues", s.Succeeded, "photos", s.Assets)
		}
		return finish(cfg, s, err)
	})
}
