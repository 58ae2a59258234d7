package model

import (
	"errors"
	"fmt"
)

var (
	// Store lookups
	ErrUserNotFound = errors.New("user not found")
	ErrBlogNotFound = errors.New("blog not found")

	// Identifier could not be interpreted by the store.
	ErrMalformedID = errors.New("malformatted id")

	// Token verification
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError is raised when a document fails the store schema.
type ValidationError struct {
	Document string
	Path     string
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s: %s", e.Document, e.Path, e.Message)
}

// ConflictError is raised when a write would duplicate a unique field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " must be unique"
}
