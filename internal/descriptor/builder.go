package descriptor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/af-prep/internal/logger"
	"github.com/jonathan/af-prep/internal/schemas"
	"github.com/jonathan/af-prep/internal/types"
	"go.uber.org/zap"
)

// Options configures a descriptor build.
type Options struct {
	ComplexCSV   string
	ProteinCSV   string
	AlignmentDir string
	OutputDir    string
	// SkipValidation disables the schema check before each write.
	SkipValidation bool
}

// Report summarizes a build.
type Report struct {
	RowsRead          int
	Written           int
	Skipped           int
	OutputDir         string
	MissingAlignments []string
	Failures          []RowFailure
	// CreatedOutputDir is true when the output directory did not exist before the build.
	CreatedOutputDir bool
	ProteinsLoaded   int
}

// Build writes one descriptor per usable complex row to opts.OutputDir.
// Unusable rows are logged and counted; only unreadable inputs or an
// unusable output directory return an error.
func Build(opts Options) (*Report, error) {
	report := &Report{OutputDir: opts.OutputDir}
	if abs, err := filepath.Abs(opts.OutputDir); err == nil {
		report.OutputDir = abs
	}

	created, err := ensureDir(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	report.CreatedOutputDir = created
	if created {
		logger.Info("Created output directory", zap.String("path", opts.OutputDir))
	}

	proteins, err := LoadProteinSequences(opts.ProteinCSV)
	if err != nil {
		return nil, err
	}
	report.ProteinsLoaded = len(proteins)
	logger.Info("Loaded protein sequences", zap.Int("count", len(proteins)))

	records, err := LoadComplexRecords(opts.ComplexCSV)
	if err != nil {
		return nil, err
	}
	report.RowsRead = len(records)

	genes := make([]string, 0, len(records))
	for _, rec := range records {
		genes = append(genes, rec.TFGene)
	}
	alignments, missing := ResolveAlignments(opts.AlignmentDir, genes)
	report.MissingAlignments = missing
	for _, gene := range missing {
		logger.Warn("Missing alignment file",
			zap.String("tf_gene", gene),
			zap.String("expected", AlignmentPath(opts.AlignmentDir, gene)))
	}
	if len(missing) > 0 {
		logger.Warn("Rows requiring these genes will be skipped",
			zap.String("genes", strings.Join(missing, ", ")),
			zap.String("a3m_dir", opts.AlignmentDir))
	}

	b := &builder{opts: opts, proteins: proteins, alignments: alignments}
	for _, rec := range records {
		if failure := b.buildRow(rec); failure != nil {
			logger.Warn("Skipping row",
				zap.Int("row", failure.Row),
				zap.String("unique_id", failure.UniqueID),
				zap.String("reason", failure.Reason),
				zap.String("detail", failure.Detail))
			report.Failures = append(report.Failures, *failure)
			report.Skipped++
			continue
		}
		report.Written++
	}

	return report, nil
}

type builder struct {
	opts       Options
	proteins   map[string]string
	alignments map[string]string
}

// buildRow validates one record and writes its descriptor. Checks run in order and stop at the first failure.
func (b *builder) buildRow(rec types.ComplexRecord) *RowFailure {
	fail := func(reason, detail string) *RowFailure {
		return &RowFailure{Row: rec.Row, UniqueID: rec.UniqueID, Reason: reason, Detail: detail}
	}

	if missing := rec.MissingFields(); len(missing) > 0 {
		return fail(ReasonMissingFields, "missing essential field(s): "+strings.Join(missing, ", "))
	}

	if !validFileName(rec.UniqueID) {
		return fail(ReasonInvalidID, fmt.Sprintf("unique_id %q cannot be used as a file name in %s", rec.UniqueID, b.opts.OutputDir))
	}

	protein, ok := b.proteins[rec.TFGene]
	if !ok || protein == "" {
		return fail(ReasonNoProtein, fmt.Sprintf("protein sequence for tf_gene '%s' not found in %s", rec.TFGene, b.opts.ProteinCSV))
	}

	msaPath, ok := b.alignments[rec.TFGene]
	if !ok {
		return fail(ReasonNoAlignment, fmt.Sprintf("alignment file for tf_gene '%s' is missing (expected at '%s')",
			rec.TFGene, AlignmentPath(b.opts.AlignmentDir, rec.TFGene)))
	}

	cleanedProtein, changed := CleanProtein(protein)
	if changed {
		logger.Warn("Protein sequence contained non-standard residues, using filtered version",
			zap.String("tf_gene", rec.TFGene), zap.String("unique_id", rec.UniqueID))
	}
	if cleanedProtein == "" {
		return fail(ReasonEmptyProtein, fmt.Sprintf("protein sequence for tf_gene '%s' is empty after filtering to %s", rec.TFGene, ProteinAlphabet))
	}

	cleanedDNA, changed := CleanDNA(rec.Sequence)
	if changed {
		logger.Warn("DNA sequence contained non-ATCGN characters, using cleaned version",
			zap.String("unique_id", rec.UniqueID), zap.Int("row", rec.Row))
	}
	if cleanedDNA == "" {
		return fail(ReasonEmptyDNA, "DNA sequence is empty or invalid after cleaning")
	}

	data, err := Marshal(NewJobDescriptor(rec.UniqueID, cleanedProtein, msaPath, cleanedDNA))
	if err != nil {
		return fail(ReasonMarshalingFailed, err.Error())
	}

	if !b.opts.SkipValidation {
		if err := schemas.ValidateJobDescriptor(data); err != nil {
			return fail(ReasonInvalidDocument, err.Error())
		}
	}

	path := filepath.Join(b.opts.OutputDir, rec.UniqueID+types.DescriptorFileExt)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fail(ReasonWriteFailed, err.Error())
	}
	logger.Debug("Wrote descriptor", zap.String("path", path))
	return nil
}

// validFileName reports whether name names a file directly inside a directory.
func validFileName(name string) bool {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

// ensureDir creates dir if needed and reports whether it was created.
func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, &InputError{Path: dir, Message: "output path exists and is not a directory"}
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, &InputError{Path: dir, Message: "failed to stat output directory", Cause: err}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, &InputError{Path: dir, Message: "failed to create output directory", Cause: err}
	}
	return true, nil
}
