// Command activity-scheduler runs the scheduling core as a standalone
// daemon: the scheduler loop and a Prometheus metrics server as sibling
// goroutines under a single shutdown signal. Modeled on
// telemetry/global-monitor/cmd/global-monitor/main.go.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lmittmann/tint"
	"github.com/malbeclabs/activity-scheduler/internal/persist"
	"github.com/malbeclabs/activity-scheduler/internal/scheduler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

var (
	metricsAddr = flag.String("metrics-addr", ":9090", "address to serve Prometheus metrics on")
	jsonLogs    = flag.Bool("json-logs", false, "emit logs as JSON instead of a human-readable console format")
	logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	log, err := newLogger(*jsonLogs, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(log); err != nil {
		log.Error("activity-scheduler exited with an error", "err", err)
		os.Exit(1)
	}
}

func newLogger(jsonLogs bool, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	if jsonLogs {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})), nil
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: lvl, TimeFormat: time.Kitchen})), nil
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := scheduler.New(&scheduler.Config{
		Logger:     log,
		Clock:      clockwork.NewRealClock(),
		Registerer: prometheus.DefaultRegisterer,
	})
	if err != nil {
		return fmt.Errorf("constructing scheduler: %w", err)
	}

	_ = persist.NewMemoryStore() // the lastFinished reload boundary; wired in by whatever owns Activity construction

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	httpServer := &http.Server{Addr: *metricsAddr, Handler: mux}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("scheduler loop starting")
		return sched.Run(gctx)
	})
	g.Go(func() error {
		log.Info("metrics server starting", "addr", *metricsAddr)
		errCh := make(chan error, 1)
		go func() { errCh <- httpServer.ListenAndServe() }()
		select {
		case <-gctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	log.Info("activity-scheduler shut down cleanly")
	return nil
}
