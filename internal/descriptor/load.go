package descriptor

import (
	"strings"

	"github.com/jonathan/af-prep/internal/logger"
	"github.com/jonathan/af-prep/internal/tabular"
	"github.com/jonathan/af-prep/internal/types"
	"go.uber.org/zap"
)

// LoadProteinSequences reads the protein table into a gene -> sequence map.
// Rows without a gene or a sequence are logged and skipped; the first row for a gene wins.
func LoadProteinSequences(path string) (map[string]string, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Message: "failed to load protein sequences", Cause: err}
	}

	sequences := make(map[string]string)
	for i, row := range table.Rows {
		rowNum := i + 1
		gene := strings.TrimSpace(table.Value(row, types.ColumnTFGene))
		aa := table.Value(row, types.ColumnAminoAcidSequence)

		if gene == "" {
			logger.Warn("Protein row missing tf_gene", zap.Int("row", rowNum))
			continue
		}
		if strings.TrimSpace(aa) == "" {
			logger.Warn("Protein row missing sequence", zap.Int("row", rowNum), zap.String("tf_gene", gene))
			continue
		}
		if _, seen := sequences[gene]; seen {
			continue
		}
		sequences[gene] = strings.ToUpper(strings.TrimSpace(aa))
	}

	if len(sequences) == 0 {
		logger.Warn("No protein sequences were loaded; descriptors needing them will be skipped", zap.String("path", path))
	}
	return sequences, nil
}

// LoadComplexRecords reads the complex table. The header must carry every
// column of types.ComplexRecordColumns and at least one data row must follow.
// Individual records are not validated here.
func LoadComplexRecords(path string) ([]types.ComplexRecord, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Message: "failed to read complex data", Cause: err}
	}

	if missing := table.MissingColumns(types.ComplexRecordColumns...); len(missing) > 0 {
		return nil, &InputError{
			Path:    path,
			Message: "complex data must contain columns: " + strings.Join(types.ComplexRecordColumns, ", "),
		}
	}
	if len(table.Rows) == 0 {
		return nil, &InputError{Path: path, Message: "complex data is empty or has no data rows"}
	}

	records := make([]types.ComplexRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		records = append(records, types.ComplexRecord{
			Row:      i + 1,
			UniqueID: strings.TrimSpace(table.Value(row, types.ColumnUniqueID)),
			TFGene:   strings.TrimSpace(table.Value(row, types.ColumnTFGene)),
			Sequence: strings.TrimSpace(table.Value(row, types.ColumnSequence)),
		})
	}
	return records, nil
}
