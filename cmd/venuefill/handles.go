package main

import (
	"github.com/spf13/cobra"
)

var handlesCmd = &cobra.Command{
	Use:   "handles",
	Short: "Patch social handles into the catalog",
	Long:  "Inserts an instagram field after the coordinates of every venue listed in the handles configuration. Needs no API key.",
	Args:  cobra.NoArgs,
	RunE:  runHandles,
}

var handlesDryRun bool

func init() {
	handlesCmd.Flags().BoolVar(&handlesDryRun, "dry-run", false, "Report what would change but leave the catalog untouched")
	rootCmd.AddCommand(handlesCmd)
}

func runHandles(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := newRunner(cfg, false)
	if err != nil {
		return err
	}
	r.DryRun = handlesDryRun
	s, err := r.Handles(cmd.Context())
	return finish(cfg, s, err)
}
