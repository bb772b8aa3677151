package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/press-monitor/internal/extract"
)

var extractorsCmd = &cobra.Command{
	Use:   "extractors",
	Short: "List available extraction variants",
	Run: func(_ *cobra.Command, _ []string) {
		for _, name := range extract.Names() {
			fmt.Fprintln(os.Stdout, name)
		}
	},
}

func init() {
	rootCmd.AddCommand(extractorsCmd)
}
