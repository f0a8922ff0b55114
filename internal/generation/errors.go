package generation

import "fmt"

// NotFoundError reports a missing profile or job
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// OrchestrationError wraps a stage failure with its stage context. Only
// ranking and assembly failures surface this way; enhancement failures are
// downgraded to warnings.
type OrchestrationError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *OrchestrationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed at %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed at %s: %s", e.Stage, e.Message)
}

func (e *OrchestrationError) Unwrap() error {
	return e.Cause
}

// CancellationError reports a cancel request arriving too late in the run
type CancellationError struct {
	Status string
}

func (e *CancellationError) Error() string {
	return fmt.Sprintf("cannot cancel generation in status %s", e.Status)
}
