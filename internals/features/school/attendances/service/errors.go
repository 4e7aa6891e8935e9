package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	helper "attendance_backend/internals/helpers"
)

// ValidationError carries messages per input field. Nothing was written.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) HasErrors() bool { return e != nil && len(e.Fields) > 0 }

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// AuthorizationError: the actor may not act on the subject. Nothing was written.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }

// StorageError wraps a failed database step. The transaction was rolled back.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// Code is the PostgreSQL SQLSTATE of the cause, when there is one.
func (e *StorageError) Code() string { return helper.PGCode(e.Err) }

// NotEnrolledWarning records an entry dropped because the student is not
// enrolled in the subject. It never fails a submission.
type NotEnrolledWarning struct {
	StudentID uuid.UUID `json:"student_id"`
	SubjectID uuid.UUID `json:"subject_id"`
}

func (w NotEnrolledWarning) String() string {
	return fmt.Sprintf("student %s is not enrolled in subject %s", w.StudentID, w.SubjectID)
}
