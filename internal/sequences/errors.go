package sequences

import "fmt"

// LoadError represents an error reading the input gene table.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// LookupError represents a failed or unresolvable lookup for one gene.
// FetchSequence logs these and reports the gene as unresolved.
type LookupError struct {
	Gene    string
	Stage   string
	Message string
	Cause   error
}

func (e *LookupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s lookup for %s: %s: %v", e.Stage, e.Gene, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s lookup for %s: %s", e.Stage, e.Gene, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}
