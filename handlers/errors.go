package handlers

import (
	"fmt"
	"net/http"
)

type LoadErrorKind int

const (
	ErrMissingParam LoadErrorKind = iota + 1
	ErrNotFound
	ErrUnauthenticated
	ErrForbidden
	ErrConflict
)

// LoadError is a request failure a loader or action reports explicitly. Anything else
// returned by a loader is treated as an internal error.
type LoadError struct {
	Kind    LoadErrorKind
	Message string
}

func (e *LoadError) Error() string {
	return e.Message
}

func (e *LoadError) Status() int {
	switch e.Kind {
	case ErrMissingParam:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func missingParam(name string) error {
	return &LoadError{Kind: ErrMissingParam, Message: fmt.Sprintf("%s not found", name)}
}

func invalidParam(name string) error {
	return &LoadError{Kind: ErrMissingParam, Message: fmt.Sprintf("invalid %s", name)}
}

func notFound(what string) error {
	return &LoadError{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found", what)}
}

func unauthenticated() error {
	return &LoadError{Kind: ErrUnauthenticated, Message: "login required"}
}

func forbidden(msg string) error {
	return &LoadError{Kind: ErrForbidden, Message: msg}
}
