package main

import (
	"fmt"

	"github.com/jonathan/af-prep/internal/descriptor"
	"github.com/jonathan/af-prep/internal/observability"
	"github.com/spf13/cobra"
)

var buildJobsCmd = &cobra.Command{
	Use:   "build-jobs <complex_csv> <protein_csv> <a3m_dir> <output_dir>",
	Short: "Build AlphaFold3 job descriptors for protein-DNA complexes",
	Long: "Joins a complex table (unique_id, tf_gene, sequence) with a protein table (tf_gene, amino_acid_sequence) and " +
		"per-gene .a3m alignment files, writing one {unique_id}.json job descriptor per usable row to the output directory. " +
		"Rows with missing data are reported and skipped.",
	Args: cobra.ExactArgs(4),
	RunE: runBuildJobs,
}

var buildJobsSkipValidation bool

func init() {
	buildJobsCmd.Flags().BoolVar(&buildJobsSkipValidation, "skip-validation", false, "Do not check descriptors against the job descriptor schema before writing")

	rootCmd.AddCommand(buildJobsCmd)
}

func runBuildJobs(cmd *cobra.Command, args []string) error {
	report, err := descriptor.Build(descriptor.Options{
		ComplexCSV:     args[0],
		ProteinCSV:     args[1],
		AlignmentDir:   args[2],
		OutputDir:      args[3],
		SkipValidation: buildJobsSkipValidation,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		observability.NewPrinter(out).PrintBuildReport(report)
	}
	_, _ = fmt.Fprintln(out, "--- Summary ---")
	_, _ = fmt.Fprintf(out, "Successfully loaded %d protein sequences.\n", report.ProteinsLoaded)
	_, _ = fmt.Fprintf(out, "Processed %d rows from the complex data CSV.\n", report.RowsRead)
	_, _ = fmt.Fprintf(out, "Successfully generated %d job descriptors.\n", report.Written)
	if report.Skipped > 0 {
		_, _ = fmt.Fprintf(out, "Skipped %d rows due to missing data or errors.\n", report.Skipped)
	}
	if len(report.MissingAlignments) > 0 {
		_, _ = fmt.Fprintf(out, "Missing alignment files for %d genes.\n", len(report.MissingAlignments))
	}
	_, _ = fmt.Fprintf(out, "Output files are located in: %s\n", report.OutputDir)
	return nil
}
