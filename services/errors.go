package services

import (
	"net/http"

	"manuscript-review-api/utils"
)

// ErrorKind discriminates workflow rejections so the HTTP layer can tell
// "forbidden" from "bad input" from "missing" from "wrong state".
type ErrorKind string

const (
	ErrKindAuthorization ErrorKind = "authorization"
	ErrKindValidation    ErrorKind = "validation"
	ErrKindPrecondition  ErrorKind = "precondition"
	ErrKindNotFound      ErrorKind = "not_found"
	ErrKindConflict      ErrorKind = "conflict"
)

// WorkflowError is a rejected workflow operation. It never wraps internal
// store failures; those propagate as plain errors and surface as 500s.
type WorkflowError struct {
	Kind    ErrorKind         `json:"kind"`
	Message string            `json:"message"`
	Fields  utils.FieldIssues `json:"fields,omitempty"`
}

func (e *WorkflowError) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to its response status code.
func (e *WorkflowError) HTTPStatus() int {
	switch e.Kind {
	case ErrKindAuthorization:
		return http.StatusForbidden
	case ErrKindNotFound:
		return http.StatusNotFound
	case ErrKindConflict:
		return http.StatusConflict
	case ErrKindValidation, ErrKindPrecondition:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func newAuthorizationError(message string) *WorkflowError {
	return &WorkflowError{Kind: ErrKindAuthorization, Message: message}
}

func newValidationError(message string, fields utils.FieldIssues) *WorkflowError {
	return &WorkflowError{Kind: ErrKindValidation, Message: message, Fields: fields}
}

func newPreconditionError(message string, fields utils.FieldIssues) *WorkflowError {
	return &WorkflowError{Kind: ErrKindPrecondition, Message: message, Fields: fields}
}

func newNotFoundError(message string) *WorkflowError {
	return &WorkflowError{Kind: ErrKindNotFound, Message: message}
}

func newConflictError(message string) *WorkflowError {
	return &WorkflowError{Kind: ErrKindConflict, Message: message}
}
