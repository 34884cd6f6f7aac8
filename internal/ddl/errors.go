// internal/ddl/errors.go
package ddl

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by CreateTable.
var (
	ErrValidation     = errors.New("validation error")
	ErrDuplicateTable = errors.New("table already exists")
	ErrExecution      = errors.New("execution error")
)

// Messages shared with callers and tests.
const (
	MsgBlankColumnField   = "colName or dataType can't be null or empty"
	MsgInvalidColumnsList = "Invalid 'columnsList', it should be a list of maps for column, with keys: 'colName', 'dataType' and optional 'constraints'."
)

// ValidationError reports malformed input detected before any SQL is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateTableError reports that the target table name is already taken.
type DuplicateTableError struct {
	Table string
	Err   error
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("InvalidTableName : Table '%s' already exists in the database", e.Table)
}

func (e *DuplicateTableError) Unwrap() []error { return []error{ErrDuplicateTable, e.Err} }

// ExecutionError carries any other database failure unchanged.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string { return e.Err.Error() }

func (e *ExecutionError) Unwrap() []error { return []error{ErrExecution, e.Err} }
