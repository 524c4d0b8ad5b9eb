package main

import "fmt"

// ErrorKind classifies everything that can go wrong between receiving a
// POST and handing a parsed Table to the metrics engine. Handlers match
// on the kind to pick the user-facing message; no kind ever escapes as
// an unhandled fault.
type ErrorKind int

const (
	ErrNoFileSubmitted ErrorKind = iota
	ErrEmptyFilename
	ErrUnsupportedExtension
	ErrParse
	ErrEmptyTable
	ErrFileTooLarge
)

type UploadError struct {
	Kind  ErrorKind
	cause error
}

func (e *UploadError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message(), e.cause)
	}
	return e.Message()
}

func (e *UploadError) Unwrap() error { return e.cause }

// Message is the single user-facing string shown on the re-rendered form.
func (e *UploadError) Message() string {
	switch e.Kind {
	case ErrNoFileSubmitted:
		return "No file was submitted"
	case ErrEmptyFilename:
		return "The submitted file has no name"
	case ErrUnsupportedExtension:
		return "Only .csv files are supported"
	case ErrParse:
		return "The file could not be read as CSV"
	case ErrEmptyTable:
		return "The file has no columns, so there is nothing to chart"
	case ErrFileTooLarge:
		return "File too large"
	default:
		return "Something went wrong processing the file"
	}
}

func uploadErr(kind ErrorKind, cause error) *UploadError {
	return &UploadError{Kind: kind, cause: cause}
}
