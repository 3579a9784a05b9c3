// Package main provides the agentviz CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "agentviz",
	Short: "Agent collaboration network visualizer",
	Long: `agentviz renders a live network of collaborating agents.

It lays out agents and their observed interactions with a force-directed
simulation and renders the result as SVG, PNG, or a self-contained HTML
page with status-driven styling.

Snapshots come from a JSON/JSONL file, from the local snapshot store, or
from polling the platform API (watch mode). All commands output JSON by
default for agent integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
