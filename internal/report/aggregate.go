package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/af-prep/internal/logger"
	"github.com/jonathan/af-prep/internal/types"
	"go.uber.org/zap"
)

// SummaryPath returns {root}/{name}/{name}_summary_confidences.json.
func SummaryPath(root, name string) string {
	return filepath.Join(root, name, name+SummaryFileSuffix)
}

// Aggregate collects one row per job directory under root that holds a
// readable summary file. Entries are visited in name order; everything else
// is logged and contributes no row.
func Aggregate(root string) ([]types.ConfidenceRow, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory %s: %w", root, err)
	}

	rows := make([]types.ConfidenceRow, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !isDir(filepath.Join(root, name)) {
			logger.Info("Not a directory, ignoring", zap.String("name", name))
			continue
		}

		path := SummaryPath(root, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			logger.Warn("Summary file not found", zap.String("prediction", name), zap.String("path", path))
			continue
		}

		row, err := ExtractConfidence(path, name)
		if err != nil {
			logger.Warn("Skipping unreadable summary", zap.String("prediction", name), zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// isDir follows symlinks.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
