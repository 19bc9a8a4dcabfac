// Package shared holds the sentinel errors used across quietpage services.
package shared

import "errors"

var (

	// common errors
	ErrorNotFound   = errors.New("not found")
	ErrorValidation = errors.New("validation error")

	// identity-specific errors
	ErrorEmailExists          = errors.New("email already registered")
	ErrorInvalidEmailPassword = errors.New("invalid email/password")
	ErrorNoSession            = errors.New("no user signed in")

	// publication-specific errors
	ErrorEmptyContent = errors.New("content is empty")
)
