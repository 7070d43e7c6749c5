package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nkllon/topology/config"
)

// watchDebounce is how long to wait for more changes before revalidating.
const watchDebounce = 500 * time.Millisecond

func watchCmd(quiet *bool) *cobra.Command {
	var (
		env          string
		abortOnFirst bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Revalidate automatically when topology files change",
		Long: `Watches the ontology, constraint catalog, and deployment graph for the
selected environment and reruns validation whenever one of them changes.
Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, cfg, env, abortOnFirst, *quiet)
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "prod", "Deployment environment (dev, staging, prod)")
	cmd.Flags().BoolVar(&abortOnFirst, "abort-on-first", false, "Stop each run at the first constraint failure")

	return cmd
}

func runWatch(ctx context.Context, cfg *config.Config, env string, abortOnFirst, quiet bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %s", errValidationFailed, err)
	}
	defer func() { _ = watcher.Close() }()

	watched := map[string]bool{
		cfg.OntologyPath():      true,
		cfg.ShapesPath():        true,
		cfg.DeploymentPath(env): true,
	}
	sources, err := cfg.ExpandSources()
	if err != nil {
		return fmt.Errorf("%w: %s", errConfiguration, err)
	}
	for _, src := range sources {
		watched[src] = true
	}

	// Watch parent directories so editors that replace files on save still
	// trigger events.
	dirs := make(map[string]bool)
	for path := range watched {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			slog.Warn("failed to watch directory", slog.String("path", dir), slog.Any("error", err))
			continue
		}
		slog.Debug("watching directory", slog.String("path", dir))
	}

	revalidate := func() {
		rep, err := runValidation(cfg, env, nil, abortOnFirst)
		if err != nil {
			slog.Error("validation run failed", slog.Any("error", err))
			return
		}
		if rep.Conforms {
			if !quiet {
				fmt.Println("OK: topology conforms")
			}
			return
		}
		fmt.Printf("FAIL: %d constraint failure(s)\n", len(rep.Violations))
		for _, v := range rep.Violations {
			fmt.Printf("  [%s] %s: %s\n", v.Severity, v.Shape, v.Message)
		}
	}

	revalidate()

	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()
	dirty := false

	for {
		select {
		case <-ctx.Done():
			slog.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] {
				continue
			}
			slog.Debug("change detected",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()))
			dirty = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", slog.Any("error", err))

		case <-ticker.C:
			if dirty {
				dirty = false
				revalidate()
			}
		}
	}
}
