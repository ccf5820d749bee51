package descriptor

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/jonathan/af-prep/internal/types"
)

// AlignmentPath returns the expected alignment file for gene under dir.
func AlignmentPath(dir, gene string) string {
	return filepath.Join(dir, gene+types.AlignmentFileExt)
}

// ResolveAlignments checks once per unique non-empty gene for a regular file
// {dir}/{gene}.a3m. found maps genes to absolute paths; missing is sorted.
func ResolveAlignments(dir string, genes []string) (map[string]string, []string) {
	found := make(map[string]string)
	missingSet := make(map[string]struct{})

	for _, gene := range genes {
		if gene == "" {
			continue
		}
		if _, ok := found[gene]; ok {
			continue
		}
		if _, ok := missingSet[gene]; ok {
			continue
		}

		path := AlignmentPath(dir, gene)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			missingSet[gene] = struct{}{}
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		found[gene] = path
	}

	missing := make([]string, 0, len(missingSet))
	for gene := range missingSet {
		missing = append(missing, gene)
	}
	sort.Strings(missing)
	return found, missing
}
