package models

import "fmt"

// ErrorValidation is malformed input, reported per field.
type ErrorValidation struct {
	Field   string
	Message string
}

func (e ErrorValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorUnauthorized means the caller could not be authenticated. Code is a
// machine-readable reason such as "invalid_api_key".
type ErrorUnauthorized struct {
	Code    string
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

// ErrorForbidden means the caller is known but lacks the required role.
type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorNotFound struct {
	Resource string
}

func (e ErrorNotFound) Error() string { return e.Resource + " not found" }

// ErrorConflict is a uniqueness violation. Retryable conflicts come from
// races on generated values and may succeed on a second attempt.
type ErrorConflict struct {
	Message   string
	Retryable bool
}

func (e ErrorConflict) Error() string { return e.Message }

type ErrorInternalServer struct {
	Err error
}

func (e ErrorInternalServer) Error() string { return "internal server error: " + e.Err.Error() }

func (e ErrorInternalServer) Unwrap() error { return e.Err }

const CodeInvalidAPIKey = "invalid_api_key"
