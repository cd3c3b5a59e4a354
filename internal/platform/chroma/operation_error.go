package chroma

import "fmt"

// OperationError wraps a failed Chroma API call with enough context to log
// and to decide retryability from the status code.
type OperationError struct {
	Op         string
	Collection string
	StatusCode int
	Body       string
	Err        error
}

func (e *OperationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chroma %s (collection=%s) http %d: %s", e.Op, e.Collection, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("chroma %s (collection=%s): %v", e.Op, e.Collection, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

func (e *OperationError) HTTPStatusCode() int { return e.StatusCode }
