package services

import (
	"errors"
	"fmt"

	"alfredoptarigan/resume-mocker/internal/models"
)

type ErrorKind string

const (
	KindUnsupportedFileType ErrorKind = "UNSUPPORTED_FILE_TYPE"
	KindInvalidFile         ErrorKind = "INVALID_FILE"
	KindInvalidIntensity    ErrorKind = "INVALID_INTENSITY"
	KindMissingCredential   ErrorKind = "MISSING_CREDENTIAL"
	KindRequestTimeout      ErrorKind = "REQUEST_TIMEOUT"
	KindServiceCallFailed   ErrorKind = "SERVICE_CALL_FAILED"
	KindMalformedResponse   ErrorKind = "MALFORMED_RESPONSE"
	KindUnknown             ErrorKind = "INTERNAL_ERROR"
)

// RoastError is the error type returned by every stage of a roast attempt.
// Two RoastErrors match under errors.Is when their kinds are equal.
type RoastError struct {
	Kind ErrorKind
	Err  error
}

var (
	ErrUnsupportedFileType = &RoastError{Kind: KindUnsupportedFileType}
	ErrInvalidFile         = &RoastError{Kind: KindInvalidFile}
	ErrInvalidIntensity    = &RoastError{Kind: KindInvalidIntensity}
	ErrMissingCredential   = &RoastError{Kind: KindMissingCredential}
	ErrRequestTimeout      = &RoastError{Kind: KindRequestTimeout}
	ErrServiceCallFailed   = &RoastError{Kind: KindServiceCallFailed}
	ErrMalformedResponse   = &RoastError{Kind: KindMalformedResponse}
)

func newRoastError(kind ErrorKind, format string, args ...any) *RoastError {
	return &RoastError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *RoastError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RoastError) Unwrap() error {
	return e.Err
}

func (e *RoastError) Is(target error) bool {
	t, ok := target.(*RoastError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first RoastError in err's chain.
func KindOf(err error) ErrorKind {
	var re *RoastError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

// UserMessage converts any roast failure into the single message shown to
// the user.
func UserMessage(err error) string {
	var re *RoastError
	if !errors.As(err, &re) {
		return "An unexpected error occurred during the roast session."
	}

	switch re.Kind {
	case KindUnsupportedFileType:
		return "Invalid file type. Please upload a PDF, JPG, or PNG."
	case KindInvalidFile:
		if re.Err != nil {
			return fmt.Sprintf("That file can't be roasted: %v", re.Err)
		}
		return "That file can't be roasted."
	case KindInvalidIntensity:
		return fmt.Sprintf("Roast intensity must be between %d and %d.", models.MinIntensity, models.MaxIntensity)
	case KindMissingCredential:
		return "There is an issue with the API key configuration."
	case KindRequestTimeout:
		return "The request timed out. Please try again."
	case KindServiceCallFailed:
		if re.Err != nil {
			return fmt.Sprintf("Failed to generate roast: %v", re.Err)
		}
		return "Failed to generate roast."
	case KindMalformedResponse:
		return "The roast came back garbled. Please try again."
	default:
		return "An unexpected error occurred during the roast session."
	}
}
