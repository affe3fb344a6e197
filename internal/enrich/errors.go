package enrich

import "fmt"

// PersistError reports a failure to write durable state. It aborts the run:
// continuing would lose completed work on the next interruption.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
