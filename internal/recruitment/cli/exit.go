package cli

import (
	"errors"

	e "github.com/gartstein/recruitment/internal/recruitment/errors"
)

// ExitCode maps an error returned by the command tree to a process exit
// status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, e.ErrValidation):
		return 2
	case errors.Is(err, e.ErrNotFound):
		return 3
	case errors.Is(err, e.ErrDuplicateKey):
		return 4
	case errors.Is(err, e.ErrConflict):
		return 5
	case errors.Is(err, e.ErrIllegalState):
		return 6
	default:
		return 1
	}
}
