package main

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/GrGLeo/dataguard/config"
)

const watchDebounce = 250 * time.Millisecond

// runWatch re-runs validation whenever the config file or any configured
// table's source path changes, debounced by watchDebounce (SPEC_FULL.md
// domain stack: file watching).
func runWatch(opts *options) (int, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return exitConfigError, err
	}
	defer watcher.Close()

	if err := watcher.Add(opts.Config); err != nil {
		return exitConfigError, err
	}

	file, err := config.Load(opts.Config)
	if err != nil {
		return exitConfigError, err
	}
	for _, t := range file.Table {
		if t.Path == "" || t.Path == "-" {
			continue
		}
		if err := watcher.Add(t.Path); err != nil {
			slog.Warn("cannot watch source path", "path", t.Path, "error", err)
		}
	}

	lastCode, lastErr := runOnce(opts)
	if lastErr != nil {
		slog.Error("validation run failed", "error", lastErr)
	}

	var debounce *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return lastCode, lastErr
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				slog.Info("change detected, re-validating", "file", event.Name)
				lastCode, lastErr = runOnce(opts)
				if lastErr != nil {
					slog.Error("validation run failed", "error", lastErr)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return lastCode, lastErr
			}
			slog.Error("watcher error", "error", err)
		}
	}
}
