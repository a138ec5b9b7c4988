package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/backend/taskinsert"
	"github.com/taskbench/taskbench/internal/bferr"
	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/kernel"
)

var taskinsertCmd = &cobra.Command{
	Use:   "taskinsert [-workers N] [graph flags...]",
	Short: "Drive the configured graphs through the dynamic task-insertion backend",
	// See bspCmd for why flag parsing is disabled here.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		workers, args, err := extractWorkers(args)
		if err != nil {
			return err
		}
		return runGraphs(args, func(g *config.TaskGraph, graphIdx int) (kernel.Stats, error) {
			return taskinsert.Run(g, graphIdx, workers)
		})
	},
}

// extractWorkers pulls the first "-workers N" token pair, wherever it
// appears, out of args, since -workers is a taskinsert-specific knob layered on top of the
// shared graph-spec grammar rather than part of it.
func extractWorkers(args []string) (int, []string, error) {
	for i, tok := range args {
		if tok != "-workers" {
			continue
		}
		if i+1 >= len(args) {
			return 0, nil, &bferr.ConfigError{Flag: tok, Reason: "missing argument"}
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return 0, nil, &bferr.ConfigError{Flag: tok, Reason: "expected an integer, got " + args[i+1]}
		}
		rest := append([]string{}, args[:i]...)
		rest = append(rest, args[i+2:]...)
		return n, rest, nil
	}
	return 0, args, nil
}

func init() {
	rootCmd.AddCommand(taskinsertCmd)
}
