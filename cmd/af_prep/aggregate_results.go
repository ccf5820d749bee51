package main

import (
	"fmt"

	"github.com/jonathan/af-prep/internal/observability"
	"github.com/jonathan/af-prep/internal/report"
	"github.com/spf13/cobra"
)

var aggregateResultsCmd = &cobra.Command{
	Use:   "aggregate-results",
	Short: "Combine per-job summary confidences into one report",
	Long: "Reads {name}/{name}_summary_confidences.json for every job directory under the output root and writes one row " +
		"per job with ranking_score, ptm, iptm, interface and per-chain scores, fraction_disordered and has_clash. " +
		"The report is CSV unless the path ends in .xlsx or --xlsx is given.",
	RunE: runAggregateResults,
}

var (
	aggregateResultsInput  string
	aggregateResultsOutput string
	aggregateResultsXLSX   bool
)

func init() {
	aggregateResultsCmd.Flags().StringVarP(&aggregateResultsInput, "in", "i", "", "Root of job output directories (default from config af_output_dir)")
	aggregateResultsCmd.Flags().StringVarP(&aggregateResultsOutput, "out", "o", "", "Report path (default from config report_path)")
	aggregateResultsCmd.Flags().BoolVar(&aggregateResultsXLSX, "xlsx", false, "Write an Excel workbook regardless of the report extension")

	rootCmd.AddCommand(aggregateResultsCmd)
}

func runAggregateResults(cmd *cobra.Command, _ []string) error {
	input := firstNonEmpty(aggregateResultsInput, cfg.AFOutputDir)
	output := firstNonEmpty(aggregateResultsOutput, cfg.ReportPath)

	rows, err := report.Aggregate(input)
	if err != nil {
		return err
	}
	if err := report.WriteFile(output, rows, aggregateResultsXLSX); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintTopModels(rows)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), output)
	return nil
}
