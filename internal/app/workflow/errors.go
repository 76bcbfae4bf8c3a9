package workflow

import (
	"errors"

	"github.com/odemir/studentbook/internal/pkg/apperrors"
)

// isStudentNotFound reports whether a store error means the record is gone
func isStudentNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrStudentNotFound)
}
