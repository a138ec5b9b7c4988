package cmd

import (
	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/backend/bsp"
	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/kernel"
)

var bspCmd = &cobra.Command{
	Use:   "bsp [graph flags...]",
	Short: "Drive the configured graphs through the bulk-synchronous backend",
	// The per-graph grammar (-steps, -width, -type, ...) is single-dash and
	// multi-character, which pflag would otherwise try to split into
	// shorthand runs; internal/config.ParseGraphs is the only thing that
	// tokenizes it, so flag parsing is disabled for this subcommand and
	// global flags (-nodes, -v, -preset, ...) must precede "bsp" on the
	// command line.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraphs(args, func(g *config.TaskGraph, graphIdx int) (kernel.Stats, error) {
			return bsp.Run(g, graphIdx)
		})
	},
}

func init() {
	rootCmd.AddCommand(bspCmd)
}
