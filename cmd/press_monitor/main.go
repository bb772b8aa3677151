// Package main provides the entry point for the press release monitor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "press_monitor",
	Short: "Press release monitor",
	Long:  "Press release monitor polls company newsrooms, detects new press releases by content fingerprint, archives and summarizes them, and sends alerts.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
