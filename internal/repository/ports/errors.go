package ports

import (
	"errors"
	"fmt"
)

var ErrUniqueViolation = errors.New("unique constraint violated")

// UniqueViolation reports which constraint rejected a write.
type UniqueViolation struct {
	Constraint string
}

func (e *UniqueViolation) Error() string {
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

func (e *UniqueViolation) Is(target error) bool {
	return target == ErrUniqueViolation
}
