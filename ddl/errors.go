package ddl

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

func unsupported(p Platform, operation string) error {
	return fmt.Errorf("%s does not support %s: %w", p, operation, ErrUnsupportedOperation)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfiguration)
}
