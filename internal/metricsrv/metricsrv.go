// Package metricsrv exposes internal/report.Totals as Prometheus gauges
// over HTTP, so a sweep of benchmark invocations across patterns and
// kernels can be scraped by ordinary operational tooling rather than
// parsed from stdout.
package metricsrv

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taskbench/taskbench/internal/report"
)

// Server publishes a fixed set of gauges summed across every graph in a
// run, served over a dedicated registry so it never picks up process- or
// Go-runtime default collectors that don't belong in a benchmark report.
type Server struct {
	registry *prometheus.Registry
	tasks    prometheus.Gauge
	deps     prometheus.Gauge
	local    prometheus.Gauge
	nonlocal prometheus.Gauge
	flops    prometheus.Gauge
	bytes    prometheus.Gauge
	flopsSec prometheus.Gauge
	bytesSec prometheus.Gauge

	http *http.Server
}

// New constructs a Server with all gauges registered but unset.
func New() *Server {
	reg := prometheus.NewRegistry()
	gauge := func(name, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "taskbench",
			Name:      name,
			Help:      help,
		})
		reg.MustRegister(g)
		return g
	}

	return &Server{
		registry: reg,
		tasks:    gauge("tasks_total", "Total number of tasks executed across all graphs."),
		deps:     gauge("dependencies_total", "Total number of dependency edges across all graphs."),
		local:    gauge("dependencies_local", "Dependency edges resolved within the same node."),
		nonlocal: gauge("dependencies_nonlocal", "Dependency edges crossing node boundaries."),
		flops:    gauge("flops_total", "Total floating point operations across all graphs."),
		bytes:    gauge("bytes_total", "Total bytes moved across all graphs."),
		flopsSec: gauge("flops_per_second", "FLOPs per second over the run's elapsed time."),
		bytesSec: gauge("bytes_per_second", "Bytes per second over the run's elapsed time."),
	}
}

// Publish sets every gauge from tot and the derived rates.
func (s *Server) Publish(tot report.Totals, flopsPerSec, bytesPerSec float64) {
	s.tasks.Set(float64(tot.Tasks))
	s.deps.Set(float64(tot.TotalDeps))
	s.local.Set(float64(tot.LocalDeps))
	s.nonlocal.Set(float64(tot.NonLocalDeps))
	s.flops.Set(float64(tot.FLOPs))
	s.bytes.Set(float64(tot.Bytes))
	s.flopsSec.Set(flopsPerSec)
	s.bytesSec.Set(bytesPerSec)
}

// Serve starts an HTTP server on addr exposing /metrics, blocking until
// ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.http = &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- s.http.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return s.http.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
