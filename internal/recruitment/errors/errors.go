package errors

import (
	"fmt"
)

var (
	ErrNotFound     = fmt.Errorf("not found")
	ErrValidation   = fmt.Errorf("validation failed")
	ErrDuplicateKey = fmt.Errorf("duplicate key")
	// ErrConflict reports a contractor that is already engaged on another job.
	ErrConflict = fmt.Errorf("conflict")
	// ErrIllegalState reports an operation the job's current status does not allow.
	ErrIllegalState = fmt.Errorf("illegal state")
)
