package main

import (
	"fmt"
	"time"

	"github.com/jonathan/af-prep/internal/logger"
	"github.com/jonathan/af-prep/internal/observability"
	"github.com/jonathan/af-prep/internal/sequences"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fetchSequencesCmd = &cobra.Command{
	Use:   "fetch-sequences",
	Short: "Fetch canonical protein sequences for the genes of a table",
	Long: "Reads the tf_gene column of a CSV table, splits co-factor entries on '+', resolves each unique gene symbol " +
		"through HGNC to its UniProt accession and writes the FASTA sequences to a tf_gene,amino_acid_sequence table. " +
		"Genes that cannot be resolved get an empty sequence.",
	RunE: runFetchSequences,
}

var (
	fetchSequencesGenes       string
	fetchSequencesOutput      string
	fetchSequencesConcurrency int
	fetchSequencesInterval    time.Duration
)

func init() {
	fetchSequencesCmd.Flags().StringVarP(&fetchSequencesGenes, "genes", "g", "", "Path to CSV with a tf_gene column (default from config gene_table)")
	fetchSequencesCmd.Flags().StringVarP(&fetchSequencesOutput, "out", "o", "", "Path to output sequence table (default from config sequence_table)")
	fetchSequencesCmd.Flags().IntVar(&fetchSequencesConcurrency, "concurrency", 0, "Parallel gene lookups (default from config)")
	fetchSequencesCmd.Flags().DurationVar(&fetchSequencesInterval, "interval", 0, "Minimum spacing between gene lookups, e.g. 100ms (default from config)")

	rootCmd.AddCommand(fetchSequencesCmd)
}

func runFetchSequences(cmd *cobra.Command, _ []string) error {
	genesPath := firstNonEmpty(fetchSequencesGenes, cfg.GeneTable)
	if genesPath == "" {
		return fmt.Errorf("no gene table given: pass --genes or set gene_table in the config file")
	}
	outputPath := firstNonEmpty(fetchSequencesOutput, cfg.SequenceTable)

	concurrency := cfg.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = fetchSequencesConcurrency
	}
	interval := cfg.RequestInterval()
	if cmd.Flags().Changed("interval") {
		interval = fetchSequencesInterval
	}

	entries, err := sequences.LoadGeneSymbols(genesPath)
	if err != nil {
		return err
	}
	genes := sequences.SplitGeneSymbols(entries)

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%d unique gene names\n", len(genes))

	client := sequences.NewClient(sequences.ClientConfig{
		HGNCBaseURL:    cfg.HGNCBaseURL,
		UniProtBaseURL: cfg.UniProtBaseURL,
		Timeout:        cfg.RequestTimeout(),
	})

	results, err := client.FetchAll(cmd.Context(), genes, sequences.FetchOptions{
		Concurrency: concurrency,
		Interval:    interval,
		OnResult: func(done, total int, r sequences.Result) {
			logger.Debug("Fetched gene",
				zap.Int("done", done),
				zap.Int("total", total),
				zap.String("gene", r.Gene),
				zap.Bool("found", r.Found))
		},
	})
	if err != nil {
		return fmt.Errorf("sequence fetch interrupted: %w", err)
	}

	if err := sequences.WriteSequenceTableFile(outputPath, results); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(out).PrintSequenceResults(results)
	}

	found, missing := sequences.Count(results)
	_, _ = fmt.Fprintf(out, "Resolved %d sequences, %d missing\n", found, missing)
	_, _ = fmt.Fprintf(out, "Output saved to %s\n", outputPath)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
