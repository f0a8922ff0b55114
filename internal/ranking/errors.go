package ranking

import "fmt"

// RankingError wraps any failure inside a ranking call. JSON decode failures
// and provider failures are reported under this single kind, carrying the
// original error text; callers retry the whole call rather than a partial
// ranking.
type RankingError struct {
	Message string
	Cause   error
}

func (e *RankingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ranking failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ranking failed: %s", e.Message)
}

func (e *RankingError) Unwrap() error {
	return e.Cause
}
