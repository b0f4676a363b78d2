// Package assistant answers résumé editing questions with the language model.
package assistant

import "fmt"

// Error represents a failed assistant request.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("assistant error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("assistant error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// InputError represents a request the assistant refused before calling the model.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid assistant input %s: %s", e.Field, e.Message)
}
