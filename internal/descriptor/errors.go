package descriptor

import "fmt"

// InputError represents an input table that cannot be used at all.
type InputError struct {
	Path    string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("input error for %s: %s", e.Path, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// Failure reasons recorded in RowFailure.
const (
	ReasonMissingFields    = "missing_fields"
	ReasonInvalidID        = "invalid_unique_id"
	ReasonNoProtein        = "no_protein_sequence"
	ReasonNoAlignment      = "no_alignment_file"
	ReasonEmptyProtein     = "empty_protein_after_cleaning"
	ReasonEmptyDNA         = "empty_dna_after_cleaning"
	ReasonInvalidDocument  = "invalid_descriptor"
	ReasonWriteFailed      = "write_failed"
	ReasonMarshalingFailed = "marshal_failed"
)

// RowFailure describes a complex row that produced no descriptor.
type RowFailure struct {
	Row      int
	UniqueID string
	Reason   string
	Detail   string
}

func (f RowFailure) String() string {
	s := fmt.Sprintf("row %d", f.Row)
	if f.UniqueID != "" {
		s += fmt.Sprintf(" (ID: %s)", f.UniqueID)
	}
	s += ": " + f.Reason
	if f.Detail != "" {
		s += ": " + f.Detail
	}
	return s
}
