// Command oplk-demo runs the kernel real-time core standalone.
//
// It arms a cyclic high-resolution timer that stands in for the cyclic
// engine: every expiry posts a sync event through the timesync dispatcher
// to a consumer goroutine, which is where a real application would
// exchange its process image.
//
// Usage:
//
//	go run ./cmd/oplk-demo [-config oplk.yaml] [-cycle 1ms] [-duration 5s]
//
// With -duration 0 the demo runs until interrupted.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/paopaol/openPOWERLINK-V2/pkg/config"
	"github.com/paopaol/openPOWERLINK-V2/pkg/event"
	"github.com/paopaol/openPOWERLINK-V2/pkg/hrestimer"
	"github.com/paopaol/openPOWERLINK-V2/pkg/log"
	"github.com/paopaol/openPOWERLINK-V2/pkg/timesync"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	cycle := flag.Duration("cycle", time.Millisecond, "cycle period")
	duration := flag.Duration("duration", 5*time.Second, "run time, 0 runs until interrupted")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Error("configuration rejected", "err", err)
			os.Exit(1)
		}
	}

	tracer, closeTracer, err := buildTracer(cfg.Trace, logger)
	if err != nil {
		logger.Error("trace setup failed", "err", err)
		os.Exit(1)
	}
	defer closeTracer()

	transport := timesync.NewLocalTransport(
		timesync.WithSyncQueueDepth(cfg.Sync.QueueDepth),
		timesync.WithLocalTracer(tracer),
	)
	ts := timesync.New(transport,
		timesync.WithLogger(logger),
		timesync.WithTracer(tracer),
	)
	if err := ts.Init(); err != nil {
		logger.Error("timesync init failed", "err", err)
		os.Exit(1)
	}
	defer ts.Exit()

	engine := hrestimer.New(cfg.EngineConfig(),
		hrestimer.WithLogger(logger),
		hrestimer.WithTracer(tracer),
	)
	if err := engine.Start(); err != nil {
		logger.Error("timer engine start failed", "err", err)
		os.Exit(1)
	}
	defer engine.Stop()

	if err := ts.Process(event.NewTimesyncControl(true)); err != nil {
		logger.Error("sync enable failed", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	// Consumer side: one goroutine standing in for the user application.
	var cycles atomic.Uint64
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		for {
			if err := transport.WaitSyncEvent(ctx); err != nil {
				return
			}
			n := cycles.Add(1)
			if n%1000 == 0 {
				logger.Info("sync cycles", "count", n)
			}
		}
	}()

	// Kernel side: the cyclic timer drives the sync relay.
	var cycleTimer hrestimer.Handle
	err = engine.ModifyTimer(&cycleTimer, *cycle, func(hrestimer.EventArg) {
		if err := ts.SendSyncEvent(); err != nil {
			logger.Error("sync relay failed", "err", err)
		}
	}, 0, true)
	if err != nil {
		logger.Error("cycle timer arm failed", "err", err)
		os.Exit(1)
	}

	logger.Info("demo running", "cycle", *cycle, "slots", cfg.Timer.Count)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-ctx.Done():
	case sig := <-sigCh:
		logger.Info("signal received", "signal", sig)
		cancel()
	}

	if err := engine.DeleteTimer(&cycleTimer); err != nil {
		logger.Error("cycle timer delete failed", "err", err)
	}
	if err := ts.Process(event.NewTimesyncControl(false)); err != nil {
		logger.Error("sync disable failed", "err", err)
	}
	<-consumerDone

	logger.Info("demo finished", "cycles", cycles.Load())
}

// buildTracer assembles the trace sink from configuration.
func buildTracer(cfg config.TraceConfig, logger *slog.Logger) (log.Logger, func(), error) {
	var sinks []log.Logger
	closeFn := func() {}

	if cfg.Path != "" {
		fileLogger, err := log.NewFileLogger(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, fileLogger)
		closeFn = func() { _ = fileLogger.Close() }
	}
	if cfg.Console {
		sinks = append(sinks, log.NewSlogAdapter(logger))
	}

	switch len(sinks) {
	case 0:
		return log.NoopLogger{}, closeFn, nil
	case 1:
		return sinks[0], closeFn, nil
	default:
		return log.NewMultiLogger(sinks...), closeFn, nil
	}
}
