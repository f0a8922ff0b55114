package enhancement

import "fmt"

// EnhancementError wraps any failure inside an enhancement call. The
// orchestrator treats these as non-fatal and falls back to the original text.
type EnhancementError struct {
	Message string
	Cause   error
}

func (e *EnhancementError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enhancement failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("enhancement failed: %s", e.Message)
}

func (e *EnhancementError) Unwrap() error {
	return e.Cause
}
