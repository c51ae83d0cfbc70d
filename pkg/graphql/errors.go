package graphql

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request.
type Kind string

const (
	// KindNetwork covers transport failures and non-2xx responses.
	KindNetwork Kind = "network"
	// KindGraphQL covers responses carrying GraphQL errors or an unusable payload.
	KindGraphQL Kind = "graphql"
	// KindValidation is raised before any request is sent.
	KindValidation Kind = "validation"
)

// Error is the typed failure returned by Client.Do.
type Error struct {
	Kind          Kind
	Message       string
	StatusCode    int
	CorrelationID string
	Err           error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var gqlErr *Error
	return errors.As(err, &gqlErr) && gqlErr.Kind == kind
}

// NewValidationError builds a KindValidation error.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Location points at the query text an error refers to.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ResponseError is one entry of the "errors" array in a GraphQL response.
type ResponseError struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations,omitempty"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}
