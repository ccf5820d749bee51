// Package report flattens per-job summary confidences into a single table.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/af-prep/internal/types"
)

// SummaryFileSuffix is appended to the job name to form the summary file name.
const SummaryFileSuffix = "_summary_confidences.json"

// ParseError represents a summary file that could not be read or decoded.
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error for %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ExtractConfidence reads one summary file and flattens it into a row named modelName.
// Absent keys and out-of-range array positions leave that field nil.
func ExtractConfidence(path, modelName string) (types.ConfidenceRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ConfidenceRow{}, &ParseError{Path: path, Message: "failed to read summary", Cause: err}
	}

	var summary types.ConfidenceSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return types.ConfidenceRow{}, &ParseError{Path: path, Message: "failed to decode summary", Cause: err}
	}
	return Flatten(summary, modelName), nil
}

// Flatten maps a decoded summary onto the report columns.
func Flatten(s types.ConfidenceSummary, modelName string) types.ConfidenceRow {
	return types.ConfidenceRow{
		ModelName:               modelName,
		RankingScore:            s.RankingScore,
		PTM:                     s.PTM,
		IPTM:                    s.IPTM,
		InterfaceChains01IPTM:   matrixAt(s.ChainPairIPTM, 0, 1),
		InterfaceChains01PAEMin: matrixAt(s.ChainPairPAEMin, 0, 1),
		Chain0PTM:               vectorAt(s.ChainPTM, 0),
		Chain1PTM:               vectorAt(s.ChainPTM, 1),
		FractionDisordered:      s.FractionDisordered,
		HasClash:                s.HasClash,
	}
}

func vectorAt(v []*float64, i int) *float64 {
	if i < 0 || i >= len(v) {
		return nil
	}
	return v[i]
}

func matrixAt(m [][]*float64, i, j int) *float64 {
	if i < 0 || i >= len(m) {
		return nil
	}
	return vectorAt(m[i], j)
}
