package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/rulegen"
	"github.com/aretw0/rulegen/internal/config"
	httpAdapter "github.com/aretw0/rulegen/pkg/adapters/http"
	loamAdapter "github.com/aretw0/rulegen/pkg/adapters/loam"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions holds the settings of the serve command.
type ServeOptions struct {
	SourceOptions
	Addr         string
	MaxInputSize int

	// Watch reloads every source when a document of the loam repository changes.
	Watch bool
}

// SourceOptionsFromConfig maps the environment configuration onto source options.
func SourceOptionsFromConfig(cfg config.Config) SourceOptions {
	return SourceOptions{
		Packs:       cfg.Packs,
		LoamDir:     cfg.LoamDir,
		RedisAddr:   cfg.RedisAddr,
		RedisPrefix: cfg.RedisPrefix,
		MaxDepth:    &cfg.MaxDepth,
	}
}

// Reloader replaces the loaded packs in one step.
type Reloader interface {
	Reload(packs ...domain.RulePack) error
	Snapshot() domain.Snapshot
}

// RunServe starts the HTTP server and blocks until ctx is done.
func RunServe(ctx context.Context, out io.Writer, opts ServeOptions, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	gen, err := NewGenerator(ctx, opts.SourceOptions, logger, metrics.Hooks())
	if err != nil {
		return err
	}
	locked := rulegen.NewLocked(gen)

	handler, err := httpAdapter.NewHandler(locked,
		httpAdapter.WithMetrics(reg),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMaxInputSize(opts.MaxInputSize),
	)
	if err != nil {
		return err
	}

	if opts.Watch && opts.LoamDir != "" {
		src, err := loamAdapter.Open(opts.LoamDir)
		if err != nil {
			return err
		}
		events, err := src.Watch(ctx)
		if err != nil {
			return err
		}
		go watchReload(ctx, events, locked, opts.SourceOptions, logger, out)
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Serving %d symbols on %s", len(locked.AvailableSymbols()), srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(out, "Server stopped gracefully")
		return nil
	}
}

// watchReload reloads every source whenever events fires, until ctx is done or
// events is closed. A failed reload keeps the previous packs.
func watchReload(ctx context.Context, events <-chan string, target Reloader, opts SourceOptions, logger *slog.Logger, out io.Writer) {
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			logger.Info("Change detected, triggering reload", "event", id)

			before := target.Snapshot()
			packs, err := loadPacks(ctx, opts)
			if err == nil {
				err = target.Reload(packs...)
			}
			if err != nil {
				logger.Error("Reload failed, keeping previous rules", "err", err)
				printSystemMessage(out, "Reload after '%s' failed: %v", id, err)
				continue
			}
			after := target.Snapshot()
			diff := domain.Diff(&before, &after)
			logger.Info("Rules reloaded", "packs", len(packs), "diff", diff.String())
			printSystemMessage(out, "Reloaded %d packs after change in '%s': %s.", len(packs), id, diff)
		}
	}
}
