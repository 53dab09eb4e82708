// Package errors defines stable error codes for ckg failure modes.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// StoreNotInitialized indicates the graph store has no schema yet
	StoreNotInitialized ErrorCode = "STORE_NOT_INITIALIZED"
	// StoreUnavailable indicates the graph store could not be opened
	StoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// IndexMissing indicates a SCIP index was not found at the configured path
	IndexMissing ErrorCode = "INDEX_MISSING"
	// EntityNotFound indicates the requested entity has no edges in the graph
	EntityNotFound ErrorCode = "ENTITY_NOT_FOUND"
	// BuildFailed indicates a knowledge graph build aborted
	BuildFailed ErrorCode = "BUILD_FAILED"
	// InvalidScope indicates an invalid query parameter
	InvalidScope ErrorCode = "INVALID_SCOPE"
	// ExportFailed indicates a snapshot export failed
	ExportFailed ErrorCode = "EXPORT_FAILED"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Safe        bool   `json:"safe,omitempty"`
	Description string `json:"description,omitempty"`
}

// CkgError represents a ckg error with code, message, and suggestions
type CkgError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new CkgError
func New(code ErrorCode, message string, cause error) *CkgError {
	return &CkgError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes(code),
	}
}

// Error implements the error interface
func (e *CkgError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CkgError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *CkgError) WithDetails(details interface{}) *CkgError {
	e.Details = details
	return e
}

// Wrap converts any error into a CkgError, preserving an existing code.
func Wrap(err error, code ErrorCode) *CkgError {
	if err == nil {
		return nil
	}
	if cerr, ok := err.(*CkgError); ok {
		return cerr
	}
	return New(code, err.Error(), err)
}

// As delegates to the standard library so callers need only one
// errors import.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Is delegates to the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

var errorActions = map[ErrorCode][]FixAction{
	StoreNotInitialized: {
		{
			Command:     "ckg build",
			Safe:        true,
			Description: "Run a full knowledge graph build to initialize the store",
		},
	},
	IndexMissing: {
		{
			Command:     "scip-go --output index.scip",
			Safe:        true,
			Description: "Generate a SCIP index for structural edges",
		},
	},
	BuildFailed: {
		{
			Command:     "ckg status",
			Safe:        true,
			Description: "Inspect store state and last build summary",
		},
	},
}

// suggestedFixes returns suggested fixes for an error code
func suggestedFixes(code ErrorCode) []FixAction {
	return errorActions[code]
}
