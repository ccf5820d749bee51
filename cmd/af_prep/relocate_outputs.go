package main

import (
	"fmt"

	"github.com/jonathan/af-prep/internal/observability"
	"github.com/jonathan/af-prep/internal/relocate"
	"github.com/spf13/cobra"
)

var relocateOutputsCmd = &cobra.Command{
	Use:   "relocate-outputs",
	Short: "Copy {name}/{name}_data.json files into a flat directory",
	Long: "For every job directory under the source root, copies {name}/{name}_data.json to {dest}/{name}.json. " +
		"Job directories without a data file are skipped with a warning unless --strict is given.",
	RunE: runRelocateOutputs,
}

var (
	relocateOutputsSource string
	relocateOutputsDest   string
	relocateOutputsStrict bool
)

func init() {
	relocateOutputsCmd.Flags().StringVar(&relocateOutputsSource, "src", "", "Source root of job directories (default from config relocate_source)")
	relocateOutputsCmd.Flags().StringVar(&relocateOutputsDest, "dest", "", "Destination directory (default from config relocate_dest)")
	relocateOutputsCmd.Flags().BoolVar(&relocateOutputsStrict, "strict", false, "Abort on the first job directory without a data file")

	rootCmd.AddCommand(relocateOutputsCmd)
}

func runRelocateOutputs(cmd *cobra.Command, _ []string) error {
	result, err := relocate.Relocate(relocate.Options{
		SourceDir: firstNonEmpty(relocateOutputsSource, cfg.RelocateSource),
		DestDir:   firstNonEmpty(relocateOutputsDest, cfg.RelocateDest),
		Strict:    relocateOutputsStrict,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		observability.NewPrinter(out).PrintRelocation(result)
	}
	_, _ = fmt.Fprintf(out, "Copied %d files", len(result.Copied))
	if len(result.Skipped) > 0 {
		_, _ = fmt.Fprintf(out, ", skipped %d", len(result.Skipped))
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Process complete.")
	return nil
}
