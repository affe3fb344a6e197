package main

import (
	"github.com/spf13/cobra"
)

var coordsCmd = &cobra.Command{
	Use:   "coords",
	Short: "Look up coordinates and patch them into the catalog",
	Long:  "Looks up every venue without checkpointed coordinates, records the results in the coordinates checkpoint, then inserts lat and lng after the tags list of each venue.",
	Args:  cobra.NoArgs,
	RunE:  runCoords,
}

var coordsDryRun bool

func init() {
	coordsCmd.Flags().BoolVar(&coordsDryRun, "dry-run", false, "Look up and checkpoint but leave the catalog untouched")
	rootCmd.AddCommand(coordsCmd)
}

func runCoords(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := newRunner(cfg, true)
	if err != nil {
		return err
	}
	r.DryRun = coordsDryRun
	s, err := r.Coordinates(cmd.Context())
	return finish(cfg, s, err)
}
