package filter

import (
	"errors"
	"fmt"
)

// ErrFilterNotFound is returned for an unknown preset name
var ErrFilterNotFound = errors.New("filter not found")

// CompilationError indicates a filter expression could not be compiled
type CompilationError struct {
	Name       string
	Expression string
	Reason     string
	Err        error
}

func (e *CompilationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("compilation error in filter '%s' ('%s'): %s", e.Name, e.Expression, e.Reason)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}
