// planner-server serves the power planner's JSON HTTP API alongside a
// Prometheus metrics endpoint.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/signalsfoundry/power-planner/core"
	"github.com/signalsfoundry/power-planner/internal/httpapi"
	"github.com/signalsfoundry/power-planner/internal/logging"
	"github.com/signalsfoundry/power-planner/internal/observability"
	"github.com/signalsfoundry/power-planner/kb"
)

func main() {
	addr := flag.String("addr", ":8080", "TCP address the API server listens on")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	maxIter := flag.Int("max-iter", 0, "Solver iteration limit (0 = default)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	collector, err := observability.NewPlannerCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}

	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	store := kb.NewPlanStore(kb.WithMetricsRecorder(collector))

	planner := core.NewPlanner(log)
	planner.Recorder = collector
	planner.Options = core.SolveOptions{MaxIter: *maxIter}

	api := httpapi.NewServer(log, planner, store, collector)
	srv := &http.Server{
		Addr:    *addr,
		Handler: api.Routes(),
	}

	log.Info(ctx, "starting planner API server", logging.String("addr", *addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "API server exited", logging.String("error", err.Error()))
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down planner server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
}

func serveMetrics(addr string, collector *observability.PlannerCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
