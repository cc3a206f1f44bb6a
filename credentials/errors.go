package credentials

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned by Set for a section or key the file does not carry
var ErrUnknownKey = errors.New("unknown credentials key")

// ConfigError reports a failure to read or write the credentials file
type ConfigError struct {
	Path string
	Op   string
	Err  error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("credentials file %s: %s: %v", e.Path, e.Op, e.Err)
}

// Unwrap returns the underlying cause
func (e *ConfigError) Unwrap() error {
	return e.Err
}
