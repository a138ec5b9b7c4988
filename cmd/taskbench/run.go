package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/exec"
	"github.com/taskbench/taskbench/internal/graph"
	"github.com/taskbench/taskbench/internal/kernel"
	"github.com/taskbench/taskbench/internal/metricsrv"
	"github.com/taskbench/taskbench/internal/report"
	"github.com/taskbench/taskbench/internal/sizing"
)

// executor drives one graph to completion under a backend's concurrency
// policy, returning the summed resource cost.
type executor func(g *config.TaskGraph, graphIdx int) (kernel.Stats, error)

// runGraphs parses args into graph configurations, validates and plans
// each, drives it through run, and prints the aggregate report. It is the
// shared body of every backend subcommand — only run differs between bsp
// and taskinsert.
func runGraphs(args []string, run executor) error {
	setupLogging()
	exec.ResetDebugMask()

	args, err := expandArgs(args)
	if err != nil {
		return err
	}
	graphs, err := config.ParseGraphs(args)
	if err != nil {
		return err
	}

	for i := range graphs {
		g := &graphs[i]
		if err := config.Validate(g); err != nil {
			return err
		}
		if !skipGraphValidation {
			if err := graph.ValidateSymmetry(g); err != nil {
				return err
			}
		}
		sizing.Plan(g)
	}

	var totals report.Totals
	start := time.Now()
	for i := range graphs {
		g := &graphs[i]
		logrus.Infof("graph %d: running %d timesteps, type=%s", g.GraphIndex, g.Timesteps, g.Dependence)
		if _, err := run(g, g.GraphIndex); err != nil {
			return err
		}
		if !exec.Executed(g.GraphIndex) {
			logrus.Warnf("graph %d executed no points", g.GraphIndex)
		}
		t := report.Compute(g, nodes)
		totals.Tasks += t.Tasks
		totals.TotalDeps += t.TotalDeps
		totals.LocalDeps += t.LocalDeps
		totals.NonLocalDeps += t.NonLocalDeps
		totals.FLOPs += t.FLOPs
		totals.Bytes += t.Bytes
	}
	elapsed := time.Since(start)
	totals.Nodes = nodes
	totals.Print(os.Stdout, elapsed)

	if metricsAddr != "" {
		srv := metricsrv.New()
		flopsPerSec, bytesPerSec := totals.Rates(elapsed)
		srv.Publish(totals, flopsPerSec, bytesPerSec)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		logrus.Infof("serving metrics on %s until SIGINT/SIGTERM", metricsAddr)
		if err := srv.Serve(ctx, metricsAddr); err != nil {
			return err
		}
	}
	return nil
}
