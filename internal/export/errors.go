// Package export turns rendered résumé documents into downloadable files.
// PDF and JPG go through headless Chrome; HTML and plain text do not need a browser.
package export

import "fmt"

// Error represents an export failure for one output format.
type Error struct {
	Format  Format
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("export error (%s): %s", e.Format, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
