package pattern

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnsupportedExpression = errors.New("pattern: unsupported expression")
	ErrInvalidRequirement    = errors.New("pattern: invalid requirement")
)

// RequirementError reports a requirement pattern that does not compile.
type RequirementError struct {
	Name        string
	Requirement string
	Err         error
}

func (e *RequirementError) Error() string {
	return fmt.Sprintf("pattern: invalid requirement for %q (%s): %s", e.Name, e.Requirement, e.Err)
}

func (e *RequirementError) Unwrap() error {
	return e.Err
}

func (e *RequirementError) Is(target error) bool {
	return target == ErrInvalidRequirement
}
