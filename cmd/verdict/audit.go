package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"civium-hq/verdict/pkg/audit"
	"civium-hq/verdict/pkg/audit/export"
	"civium-hq/verdict/pkg/cli"
)

var auditExportFlags struct {
	in     string
	out    string
	format string
	pretty bool
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Work with exported audit events",
}

var auditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-export audit events in another format",
	Long: `Re-export a JSON audit event file, typically produced by
'verdict validate --audit-out', in another format.

Examples:
  # Convert an audit export to CSV for spreadsheet review
  verdict audit export --in audit.json --format csv --out audit.csv

  # Pretty-print an audit export to stdout
  verdict audit export --in audit.json --pretty`,
	RunE: runAuditExport,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditExportCmd)

	auditExportCmd.Flags().StringVar(&auditExportFlags.in, "in", "", "audit event file (JSON)")
	auditExportCmd.Flags().StringVar(&auditExportFlags.out, "out", "", "output file (defaults to stdout)")
	auditExportCmd.Flags().StringVar(&auditExportFlags.format, "format", "json", "output format: json, csv")
	auditExportCmd.Flags().BoolVar(&auditExportFlags.pretty, "pretty", false, "pretty-print JSON output")

	_ = auditExportCmd.MarkFlagRequired("in")
}

func runAuditExport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(auditExportFlags.in)
	if err != nil {
		return cli.NewCommandError("audit export", fmt.Errorf("failed to read audit file: %w", err))
	}

	var events []*audit.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return cli.NewInputError(auditExportFlags.in, fmt.Sprintf("not a JSON audit export: %v", err))
	}

	var exporter export.Exporter
	switch auditExportFlags.format {
	case "json":
		exporter = export.NewJSONExporter(auditExportFlags.pretty)
	case "csv":
		exporter = export.NewCSVExporter(true)
	default:
		return fmt.Errorf("unknown export format %q (expected json or csv)", auditExportFlags.format)
	}

	out := os.Stdout
	if auditExportFlags.out != "" {
		f, err := os.Create(auditExportFlags.out)
		if err != nil {
			return cli.NewCommandError("audit export", fmt.Errorf("failed to create output file: %w", err))
		}
		defer f.Close()
		out = f
	}

	if err := exporter.Export(cmd.Context(), events, out); err != nil {
		return cli.NewCommandError("audit export", err)
	}
	return nil
}
