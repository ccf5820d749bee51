package sequences

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/af-prep/internal/types"
)

// WriteSequenceTable writes tf_gene,amino_acid_sequence rows; unresolved genes get an empty cell.
func WriteSequenceTable(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{types.ColumnTFGene, types.ColumnAminoAcidSequence}); err != nil {
		return err
	}
	for _, r := range results {
		entry := r.Entry()
		if err := writer.Write([]string{entry.TFGene, entry.AminoAcidSequence}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSequenceTableFile writes the table to path, creating its directory.
func WriteSequenceTableFile(path string, results []Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteSequenceTable(f, results); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
