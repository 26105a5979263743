package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"civium-hq/verdict/pkg/cli"
	"civium-hq/verdict/pkg/config"
	"civium-hq/verdict/pkg/engine"
	"civium-hq/verdict/pkg/ruleset"
	"civium-hq/verdict/pkg/telemetry/logging"
)

var validateFlags struct {
	rulesetFile    string
	attributesFile string
	format         string
	auditOut       string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Evaluate a ruleset against applicant attributes",
	Long: `Evaluate a JSON ruleset against a JSON attribute mapping and print the
full validation result: which rules passed, failed, or were skipped for
missing attributes, with a human-readable expectation for each.

The command exits non-zero when the attributes do not satisfy the ruleset,
so it can gate scripts and CI pipelines directly.

Examples:
  # Evaluate and print the result as JSON
  verdict validate --ruleset snap.json --attributes applicant.json

  # Print a short text summary instead
  verdict validate --ruleset snap.json --attributes applicant.json --format text

  # Also write the audit event for this run
  verdict validate --ruleset snap.json --attributes applicant.json --audit-out audit.json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.rulesetFile, "ruleset", "r", "", "ruleset file (JSON)")
	validateCmd.Flags().StringVarP(&validateFlags.attributesFile, "attributes", "a", "", "attributes file (JSON)")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "json", "output format: json, text")
	validateCmd.Flags().StringVar(&validateFlags.auditOut, "audit-out", "", "write the run's audit events to this file")

	_ = validateCmd.MarkFlagRequired("ruleset")
	_ = validateCmd.MarkFlagRequired("attributes")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	rs, issues, err := ruleset.Load(validateFlags.rulesetFile)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	for _, issue := range issues {
		logger.Warn("ruleset issue", "detail", issue.String())
	}

	attrs, err := ruleset.LoadAttributes(validateFlags.attributesFile)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	eng, err := engine.New(engineConfigFrom(cfg), logger.Slog())
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	result, err := eng.Validate(cmd.Context(), rs, attrs)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	switch validateFlags.format {
	case "json":
		if err := cli.WriteJSON(os.Stdout, result); err != nil {
			return cli.NewCommandError("validate", err)
		}
	case "text":
		printResultText(result)
	default:
		return fmt.Errorf("unknown output format %q (expected json or text)", validateFlags.format)
	}

	if validateFlags.auditOut != "" {
		if err := writeAudit(eng, validateFlags.auditOut); err != nil {
			return cli.NewCommandError("validate", err)
		}
	}

	if !result.Valid {
		// Exit status is the contract; the result above already explains why.
		os.Exit(1)
	}
	return nil
}

func printResultText(result *engine.Result) {
	status := "ELIGIBLE"
	if !result.Valid {
		status = "NOT ELIGIBLE"
	}
	fmt.Printf("%s  service=%s  (%d passed, %d failed, %d skipped, %.2fms)\n",
		status, result.ServiceID,
		len(result.Passed), len(result.Failed), len(result.Skipped),
		result.DurationMS,
	)

	for _, o := range result.Passed {
		fmt.Printf("  ✓ %s: %s %s (expected %s)\n", o.RuleID, o.Key, o.Operator, o.Expected)
	}
	for _, o := range result.Failed {
		fmt.Printf("  ✗ %s: %s\n", o.RuleID, o.Message)
	}
	for _, o := range result.Skipped {
		fmt.Printf("  - %s: %s (%s)\n", o.RuleID, o.Key, o.Reason)
	}
	for _, w := range result.Warnings {
		fmt.Printf("  ⚠ %s: %s\n", w.RuleID, w.Message)
	}
}

func writeAudit(eng *engine.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create audit output file %q: %w", path, err)
	}
	defer f.Close()

	if err := eng.Audit().ExportJSON(f); err != nil {
		return fmt.Errorf("failed to export audit events: %w", err)
	}
	return nil
}

// loadConfig reads the --config file when one was given, falling back to
// defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// engineConfigFrom maps the engine section of the process configuration onto
// the evaluation engine's own config type.
func engineConfigFrom(cfg *config.Config) *engine.Config {
	engCfg := engine.DefaultConfig()
	if cfg.Engine.LogEvents != nil {
		engCfg.LogEvents = *cfg.Engine.LogEvents
	}
	if cfg.Engine.AuditBuffer > 0 {
		engCfg.AuditBuffer = cfg.Engine.AuditBuffer
	}
	return engCfg
}

// buildLogger builds the CLI logger from the loaded configuration. The
// --verbose flag lowers the level to debug either way.
func buildLogger(cfg *config.Config) (*logging.Logger, error) {
	logCfg := logging.Config{
		Level:            cfg.Telemetry.Logging.Level,
		Format:           cfg.Telemetry.Logging.Format,
		AddSource:        cfg.Telemetry.Logging.AddSource,
		RedactAttributes: cfg.Telemetry.Logging.RedactAttributes == nil || *cfg.Telemetry.Logging.RedactAttributes,
		SensitiveKeys:    cfg.Telemetry.Logging.SensitiveKeys,
		Writer:           os.Stderr,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	return logging.New(logCfg)
}
