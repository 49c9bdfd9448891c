package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Validation Errors.

	// ErrEmptyText indicates a text upload with no non-whitespace content.
	ErrEmptyText = errors.New("please enter some text")

	// ErrMissingFile indicates a file upload without a file.
	ErrMissingFile = errors.New("no file was provided")

	// ErrUnsupportedFormat indicates a file extension no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported file format: only TXT, PDF and DOCX files are accepted")

	// ErrFileTooLarge indicates an upload above the configured size cap.
	ErrFileTooLarge = errors.New("file is too large")

	// ErrTextTooLarge indicates a text upload above the configured size cap.
	ErrTextTooLarge = errors.New("text is too large")

	// Load Errors.

	// ErrLoadFailed indicates a loader could not extract text from a file.
	ErrLoadFailed = errors.New("failed to process file")
)

// IsValidation reports whether err is a user-facing validation failure
// rather than a load or infrastructure error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrTextTooLarge)
}

// TooLarge wraps a size sentinel with the limit it exceeded, in MB when
// the limit is a whole number of mebibytes.
func TooLarge(err error, limit int64) error {
	const mib = 1024 * 1024
	if limit > 0 && limit%mib == 0 {
		return fmt.Errorf("%w: the limit is %d MB", err, limit/mib)
	}
	return fmt.Errorf("%w: the limit is %d bytes", err, limit)
}
