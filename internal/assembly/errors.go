package assembly

import "fmt"

// AssemblyError represents a failure to build a document from the supplied
// content. Unlike enhancement failures these are fatal to a generation run.
type AssemblyError struct {
	Message string
	Cause   error
}

func (e *AssemblyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("assembly failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("assembly failed: %s", e.Message)
}

func (e *AssemblyError) Unwrap() error {
	return e.Cause
}
