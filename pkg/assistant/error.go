package assistant

import "fmt"

// StatusError reports a non-success response from the external service.
// The upstream status and body are preserved verbatim for operator diagnosis.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("assistant service returned status %d: %s", e.Status, e.Body)
}
