package api

import "fmt"

// StatusError is the raw representation of a non-2xx response. It carries
// the status code and the unparsed body; turning either into a user-facing
// message is the classifier's job, never this package's.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
