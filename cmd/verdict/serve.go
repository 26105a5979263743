package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"civium-hq/verdict/pkg/audit"
	"civium-hq/verdict/pkg/audit/export"
	"civium-hq/verdict/pkg/cli"
	"civium-hq/verdict/pkg/config"
	"civium-hq/verdict/pkg/engine"
	"civium-hq/verdict/pkg/ruleset"
	"civium-hq/verdict/pkg/telemetry/logging"
	"civium-hq/verdict/pkg/telemetry/metrics"
)

var serveFlags struct {
	listenAddress string
	rulesetFile   string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a ruleset as a long-running validation endpoint",
	Long: `Load a ruleset once and serve validations over HTTP: POST a JSON
attribute mapping to /validate and receive the full result.

The process honors the full configuration file: the engine section controls
audit event logging, the audit section schedules periodic snapshot exports
of the audit log, and the telemetry section enables a Prometheus metrics
endpoint. When a config file is given it is watched for changes, and log
level and audit snapshot settings are re-applied without a restart.

Examples:
  # Serve a ruleset with default settings
  verdict serve --ruleset snap.json

  # Serve with metrics and scheduled audit snapshots
  verdict serve --ruleset snap.json --config /etc/verdict/config.yaml

  # Override the listen address
  verdict serve --ruleset snap.json --listen 0.0.0.0:8080

  # Validate config and ruleset without starting the server
  verdict serve --ruleset snap.json --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "127.0.0.1:8080", "listen address for the validation endpoint")
	serveCmd.Flags().StringVarP(&serveFlags.rulesetFile, "ruleset", "r", "", "ruleset file (JSON)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config and ruleset without starting the server")

	_ = serveCmd.MarkFlagRequired("ruleset")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	rs, issues, err := ruleset.Load(serveFlags.rulesetFile)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	for _, issue := range issues {
		logger.Warn("ruleset issue", "detail", issue.String())
	}

	eng, err := engine.New(engineConfigFrom(cfg), logger.Slog())
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	if serveFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		fmt.Printf("✓ Ruleset %s loaded (%d rules)\n", rs.ServiceID, rs.RuleCount())
		return nil
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	errChan := make(chan error, 1)

	// Metrics endpoint on its own listener when enabled.
	var metricsSrv *http.Server
	if cfg.Telemetry.Metrics.Enabled {
		vm := metrics.NewValidationMetrics(cfg.Telemetry.Metrics.Namespace, nil)
		eng.SetMetrics(vm)

		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", vm.Handler())
		metricsSrv = &http.Server{
			Addr:    cfg.Telemetry.Metrics.ListenAddress,
			Handler: metricsMux,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
		fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", cfg.Telemetry.Metrics.ListenAddress)
	}

	// Scheduled audit snapshots. An empty schedule starts nothing.
	var schedMu sync.Mutex
	sched := audit.NewScheduler(eng.Audit(), cfg.Audit.SnapshotSchedule,
		newSnapshotFunc(cfg.Audit.SnapshotPath, cfg.Audit.SnapshotFormat))
	if err := sched.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer func() {
		schedMu.Lock()
		sched.Stop()
		schedMu.Unlock()
	}()
	if next := sched.NextRun(); next != nil {
		logger.Debug("audit snapshot scheduler armed", "next_run", next)
	}

	// Watch the config file and re-apply what can change at runtime.
	currentAudit := cfg.Audit
	if cfgFile != "" {
		watcher, err := config.NewWatcher(&config.WatcherConfig{Path: cfgFile}, logger.Slog())
		if err != nil {
			return cli.NewCommandError("serve", err)
		}
		defer watcher.Stop()

		go func() {
			err := watcher.Watch(ctx, func(next *config.Config) error {
				if !verbose {
					if err := logger.SetLevel(next.Telemetry.Logging.Level); err != nil {
						return err
					}
				}

				schedMu.Lock()
				defer schedMu.Unlock()
				if next.Audit != currentAudit {
					sched.Stop()
					sched = audit.NewScheduler(eng.Audit(), next.Audit.SnapshotSchedule,
						newSnapshotFunc(next.Audit.SnapshotPath, next.Audit.SnapshotFormat))
					if err := sched.Start(ctx); err != nil {
						return err
					}
					currentAudit = next.Audit
				}

				logger.Info("configuration reloaded",
					"log_level", next.Telemetry.Logging.Level,
					"snapshot_schedule", next.Audit.SnapshotSchedule,
				)
				return nil
			})
			if err != nil {
				logger.Error("configuration watcher failed", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    serveFlags.listenAddress,
		Handler: newServeMux(eng, rs, logger),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Printf("✓ Serving ruleset %s on %s\n", rs.ServiceID, serveFlags.listenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", serveFlags.listenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		return cli.NewCommandError("serve", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(shutdownCtx)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
			return cli.NewCommandError("serve", err)
		}

		fmt.Println("✓ Server stopped")
		return nil
	}
}

// newServeMux builds the validation endpoint routes.
func newServeMux(eng *engine.Engine, rs *ruleset.Ruleset, logger *logging.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status":"ok"}`)
	})

	mux.HandleFunc("/validate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		attrs, err := ruleset.ParseAttributes(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := eng.Validate(r.Context(), rs, attrs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.Error("failed to write validation response", "error", err)
		}
	})

	return mux
}

// newSnapshotFunc builds the scheduler callback that replaces the snapshot
// file with the current audit log contents.
func newSnapshotFunc(path, format string) audit.SnapshotFunc {
	return func(events []*audit.Event) error {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create snapshot file %q: %w", path, err)
		}
		defer f.Close()

		var exporter export.Exporter
		switch format {
		case "csv":
			exporter = export.NewCSVExporter(true)
		default:
			exporter = export.NewJSONExporter(true)
		}
		return exporter.Export(context.Background(), events, f)
	}
}
