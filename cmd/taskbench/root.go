// Package cmd wires the taskbench CLI: a cobra root command carrying the
// process-wide flags, and one subcommand per backend adapter that parses
// the remaining argument chain as graph specs and drives them to
// completion.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/internal/presets"
)

var (
	nodes               int
	verbose             bool
	veryVerbose         bool
	skipGraphValidation bool
	metricsAddr         string
	presetName          string
)

var rootCmd = &cobra.Command{
	Use:   "taskbench",
	Short: "Synthetic task-graph benchmark core",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&nodes, "nodes", 0, "partition points across this many nodes for local/non-local dependency accounting")
	pf.BoolVar(&verbose, "v", false, "verbose logging")
	pf.BoolVar(&veryVerbose, "vv", false, "very verbose (debug) logging")
	pf.BoolVar(&skipGraphValidation, "skip-graph-validation", false, "skip dependency/reverse-dependency symmetry validation")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address after the run completes")
	pf.StringVar(&presetName, "preset", "", "expand a named preset from internal/presets before parsing the remaining flags")
}

// Execute runs the taskbench root command, exiting the process on any
// fatal configuration, validation, or runtime-corruption error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

// setupLogging applies -v/-vv to the shared logrus logger.
func setupLogging() {
	switch {
	case veryVerbose:
		logrus.SetLevel(logrus.DebugLevel)
	case verbose:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// expandArgs prepends the named preset's token chain, when -preset is set,
// to args — later flags on the real command line still win because
// internal/config.ParseGraphs applies them in order after the preset's.
func expandArgs(args []string) ([]string, error) {
	if presetName == "" {
		return args, nil
	}
	toks, err := presets.Tokens(presetName)
	if err != nil {
		return nil, err
	}
	return append(toks, args...), nil
}
