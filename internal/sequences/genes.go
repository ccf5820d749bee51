// Package sequences resolves gene symbols to canonical protein sequences
// through the HGNC nomenclature service and UniProtKB.
package sequences

import (
	"sort"
	"strings"

	"github.com/jonathan/af-prep/internal/tabular"
	"github.com/jonathan/af-prep/internal/types"
)

// CofactorDelimiter joins co-factor genes in a single table cell, e.g. "FOS+JUN".
const CofactorDelimiter = "+"

// LoadGeneSymbols returns the non-blank tf_gene cells of the table at path, unsplit.
func LoadGeneSymbols(path string) ([]string, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: "failed to read gene table", Cause: err}
	}
	if !table.HasColumn(types.ColumnTFGene) {
		return nil, &LoadError{Message: "gene table " + path + " does not contain a '" + types.ColumnTFGene + "' column"}
	}

	var entries []string
	for _, row := range table.Rows {
		if v := strings.TrimSpace(table.Value(row, types.ColumnTFGene)); v != "" {
			entries = append(entries, v)
		}
	}
	return entries, nil
}

// SplitGeneSymbols splits co-factor entries, trims and de-duplicates the parts
// and returns the unique symbols sorted.
func SplitGeneSymbols(entries []string) []string {
	set := make(map[string]struct{})
	for _, entry := range entries {
		for _, part := range strings.Split(entry, CofactorDelimiter) {
			part = strings.TrimSpace(part)
			if part != "" {
				set[part] = struct{}{}
			}
		}
	}

	genes := make([]string, 0, len(set))
	for gene := range set {
		genes = append(genes, gene)
	}
	sort.Strings(genes)
	return genes
}
