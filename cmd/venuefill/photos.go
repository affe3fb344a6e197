package main

import (
	"github.com/spf13/cobra"
)

var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Download the primary photo of every venue",
	Long:  "Downloads the top ranked photo of every venue lacking a valid one, then rebuilds the photo index.",
	Args:  cobra.NoArgs,
	RunE:  runPhotos,
}

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Download gallery photos for every venue",
	Long:  "Downloads up to max_gallery extra photos per venue not yet in the gallery checkpoint, then rebuilds the photo index.",
	Args:  cobra.NoArgs,
	RunE:  runGallery,
}

var galleryMax int

func init() {
	galleryCmd.Flags().IntVar(&galleryMax, "max", -1, "Gallery photos per venue (overrides max_gallery)")
	rootCmd.AddCommand(photosCmd)
	rootCmd.AddCommand(galleryCmd)
}

func runPhotos(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := newRunner(cfg, true)
	if err != nil {
		return err
	}
	s, err := r.Photos(cmd.Context())
	return finish(cfg, s, err)
}

func runGallery(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if galleryMax >= 0 {
		cfg.MaxGallery = galleryMax
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	r, err := newRunner(cfg, true)
	if err != nil {
		return err
	}
	s, err := r.Gallery(cmd.Context())
	return finish(cfg, s, err)
}
