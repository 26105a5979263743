package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"civium-hq/verdict/pkg/cli"
	"civium-hq/verdict/pkg/ruleset"
)

var lintFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check ruleset files for structural problems",
	Long: `Check JSON ruleset files for structural problems before they reach the
engine:
  - Missing required fields (service_id, rule id, key)
  - Operator and operand pairing (in/not_in need values, between needs min/max)
  - Unknown operators and requirement levels
  - Invalid regular expression patterns
  - Excessive nesting depth and duplicate rule IDs

Examples:
  # Lint a single ruleset
  verdict lint --file snap.json

  # Lint a directory of rulesets
  verdict lint --dir rulesets/

  # Strict mode (warnings as errors)
  verdict lint --file snap.json --strict

  # JSON output for CI/CD
  verdict lint --file snap.json --format json`,
	RunE: lintRulesets,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "ruleset file to check")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of ruleset files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult is the lint outcome for a single ruleset file.
type LintResult struct {
	File   string         `json:"file"`
	Valid  bool           `json:"valid"`
	Issues ruleset.Issues `json:"issues,omitempty"`
}

func lintRulesets(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		matches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list ruleset files: %w", err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no ruleset files found")
	}

	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(file))
	}

	if lintFlags.format == "json" {
		if err := cli.WriteJSON(os.Stdout, results); err != nil {
			return err
		}
		return lintExit(results)
	}

	printLintText(results)
	return lintExit(results)
}

func lintFile(path string) LintResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return LintResult{
			File: path,
			Issues: ruleset.Issues{{
				Severity: ruleset.SeverityError,
				Message:  err.Error(),
			}},
		}
	}

	rs, err := ruleset.Parse(data)
	if err != nil {
		return LintResult{
			File: path,
			Issues: ruleset.Issues{{
				Severity: ruleset.SeverityError,
				Message:  err.Error(),
			}},
		}
	}

	issues := ruleset.Validate(rs)
	return LintResult{
		File:   path,
		Valid:  !issues.HasErrors(),
		Issues: issues,
	}
}

func printLintText(results []LintResult) {
	totalErrors := 0
	totalWarnings := 0

	for _, result := range results {
		fmt.Printf("Checking %s...\n", result.File)

		if len(result.Issues) == 0 {
			fmt.Println("✓ Structure valid")
			fmt.Println("✓ All rules have valid operators and operands")
		}

		for _, issue := range result.Issues {
			switch issue.Severity {
			case ruleset.SeverityError:
				fmt.Printf("✗ Error: %s\n", issueDetail(issue))
				totalErrors++
			default:
				fmt.Printf("⚠  Warning: %s\n", issueDetail(issue))
				totalWarnings++
			}
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d error(s), %d warning(s)\n", totalErrors, totalWarnings)
	if lintFlags.strict && totalWarnings > 0 {
		fmt.Println("  Strict mode enabled: treating warnings as errors")
	}
}

func issueDetail(issue ruleset.Issue) string {
	detail := issue.Message
	if issue.RuleID != "" {
		detail = fmt.Sprintf("rule %q: %s", issue.RuleID, detail)
	}
	if issue.Field != "" {
		detail = fmt.Sprintf("%s [%s]", detail, issue.Field)
	}
	return detail
}

func lintExit(results []LintResult) error {
	for _, result := range results {
		for _, issue := range result.Issues {
			if issue.Severity == ruleset.SeverityError {
				return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
			}
			if lintFlags.strict && issue.Severity == ruleset.SeverityWarning {
				return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
			}
		}
	}
	return nil
}
