package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/jd3600/sonar/internal/analyzer"
	"github.com/jd3600/sonar/internal/httpapi"
	"github.com/jd3600/sonar/internal/processor"
	"github.com/jd3600/sonar/internal/report"
	"github.com/jd3600/sonar/internal/types"
	"github.com/jd3600/sonar/internal/watcher"
	"github.com/jd3600/sonar/pkg/executor"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Watch the drop folders and serve the dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

func runServe(ctx context.Context, flags *rootFlags) error {
	a, err := newApp(flags, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, log := a.cfg, a.log

	log.Info(ctx, "========================================")
	log.Info(ctx, "SONAR media analysis pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Configuration loaded successfully")

	prompts := map[types.MediaKind]string{
		types.Audio: cfg.Pipelines.Audio.Prompt,
		types.Video: cfg.Pipelines.Video.Prompt,
	}
	an, err := analyzer.New(analyzer.Options{
		APIKeys:        cfg.Gemini.APIKeys,
		Model:          cfg.Gemini.Model,
		Timeout:        cfg.Gemini.Timeout,
		MaxRetries:     cfg.Gemini.MaxRetries,
		MaxInlineBytes: int64(cfg.Gemini.MaxInlineMB) << 20,
		Prompts:        prompts,
	}, log)
	if err != nil {
		return fmt.Errorf("create analyzer: %w", err)
	}
	log.Info(ctx, "Gemini model %s with %d API key(s)", cfg.Gemini.Model, len(cfg.Gemini.APIKeys))

	exec := executor.New()
	reporter := report.New(cfg.Paths.Reports, log)
	// one limiter for both pipelines and their backlogs
	limiter := processor.NewLimiter(cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Max Concurrent Processing: %d", limiter.Cap())

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var watchers []watcher.Watcher
	var procs []processor.Processor
	for _, kind := range a.enabledKinds() {
		proc, err := processor.New(cfg, kind, processor.Deps{
			Executor:  exec,
			Analyzer:  an,
			Assembler: a.assemblers[kind],
			Journal:   a.journal,
			Collector: a.collector,
			Reporter:  reporter,
			Limiter:   limiter,
		}, log)
		if err != nil {
			return err
		}

		pc := cfg.Pipeline(kind)
		w, err := watcher.New(watcher.Options{
			Dir:           pc.Input,
			Extensions:    pc.Extensions,
			MaxConcurrent: cfg.Performance.MaxConcurrent,
			SettleDelay:   cfg.Performance.SettleDelay,
		}, proc.Process, log)
		if err != nil {
			return fmt.Errorf("create %s watcher: %w", kind, err)
		}
		defer w.Stop()

		watchers = append(watchers, w)
		if pc.ScanExisting {
			procs = append(procs, proc)
		}
		log.Info(ctx, "Pipeline %s: %s -> %s %v", kind, pc.Input, pc.Processed, pc.Extensions)
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var wg sync.WaitGroup
	errChan := make(chan error, len(watchers)+1)
	for _, w := range watchers {
		wg.Add(1)
		go func(w watcher.Watcher) {
			defer wg.Done()
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- err
			}
		}(w)
	}
	for _, p := range procs {
		wg.Add(1)
		go func(p processor.Processor) {
			defer wg.Done()
			if err := p.Backlog(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn(ctx, "Backlog failed: %v", err)
			}
		}(p)
	}

	api := httpapi.New(httpapi.Deps{
		Collector:  a.collector,
		Records:    a.collection,
		Journal:    a.journal,
		Archive:    a.archive,
		Assemblers: a.assemblers,
		Dashboard:  cfg.Paths.Dashboard,
	}, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := api.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "SONAR is ready! Dashboard on %s", cfg.Server.Addr)
	log.Info(ctx, "Auto-collect: %v", cfg.Collector.AutoCollect)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	var runErr error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case runErr = <-errChan:
		log.Error(ctx, "Service error: %v", runErr)
	case <-ctx.Done():
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	wg.Wait()

	log.Info(ctx, "SONAR stopped")
	return runErr
}
