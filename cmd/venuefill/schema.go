package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/maruel/venuefill/internal/config"
	"github.com/maruel/venuefill/internal/fileutil"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

var schemaOut string

func init() {
	schemaCmd.Flags().StringVarP(&schemaOut, "out", "o", "", "Write the schema to this file instead of stdout")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(_ *cobra.Command, _ []string) error {
	b, err := config.Schema()
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if schemaOut == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	return fileutil.WriteFile(schemaOut, b, 0o644)
}
