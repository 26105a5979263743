package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher(t *testing.T) {
	path := writeConfig(t, "")

	w, err := NewWatcher(&WatcherConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if w.watcher == nil {
		t.Error("fsnotify watcher is nil")
	}
	if w.debounce == nil {
		t.Error("debouncer is nil")
	}
	_ = w.Stop()
}

func TestNewWatcherRequiresPath(t *testing.T) {
	if _, err := NewWatcher(nil, nil); err == nil {
		t.Error("nil config should fail")
	}
	if _, err := NewWatcher(&WatcherConfig{}, nil); err == nil {
		t.Error("empty path should fail")
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	path := writeConfig(t, "telemetry:\n  logging:\n    level: info\n")

	w, err := NewWatcher(&WatcherConfig{
		Path:             path,
		DebounceInterval: 50 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Stop() }()

	reloaded := make(chan *Config, 10)
	onChange := func(cfg *Config) error {
		select {
		case reloaded <- cfg:
		default:
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Watch(ctx, onChange)
	}()

	// Let the watch loop register before writing.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("telemetry:\n  logging:\n    level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Telemetry.Logging.Level != "debug" {
			t.Errorf("reloaded level = %q, want debug", cfg.Telemetry.Logging.Level)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("reload not triggered")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(&WatcherConfig{
		Path:             path,
		DebounceInterval: 50 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Stop() }()

	reloaded := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Watch(ctx, func(cfg *Config) error {
			reloaded <- struct{}{}
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Error("change to a sibling file triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherDoubleStart(t *testing.T) {
	path := writeConfig(t, "")

	w, err := NewWatcher(&WatcherConfig{Path: path}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Watch(ctx, func(cfg *Config) error { return nil })
	}()
	time.Sleep(50 * time.Millisecond)

	if err := w.Watch(ctx, func(cfg *Config) error { return nil }); err == nil {
		t.Error("second Watch should fail while running")
	}
}
