// Package export writes audit events to interchange formats. JSONExporter
// produces machine-readable output for downstream analysis; CSVExporter
// produces flattened rows for spreadsheets and reporting tools.
package export
