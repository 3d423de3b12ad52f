package cmis

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Match them with errors.Is.
var (
	// Conversion errors.
	ErrInvalidProperty         = errors.New("invalid property")
	ErrInvalidPropertyValue    = errors.New("invalid property value")
	ErrTypeNotFound            = errors.New("type not found")
	ErrUnsupportedBaseType     = errors.New("unsupported base type")
	ErrUnsupportedPropertyType = errors.New("unsupported property type")
	ErrInvalidResponse         = errors.New("invalid response")

	// Transport errors.
	ErrConnectionFailure = errors.New("connection failure")

	// Errors reported by the server.
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrFilterNotValid          = errors.New("filter not valid")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrStreamNotSupported      = errors.New("stream not supported")
	ErrObjectNotFound          = errors.New("object not found")
	ErrNotSupported            = errors.New("not supported")
	ErrNameConstraintViolation = errors.New("name constraint violation")
	ErrVersioning              = errors.New("versioning")
	ErrContentAlreadyExists    = errors.New("content already exists")
	ErrUpdateConflict          = errors.New("update conflict")
	ErrConstraint              = errors.New("constraint")
	ErrStorage                 = errors.New("storage")
	ErrRuntime                 = errors.New("runtime")
)

// Error is a failure of a binding call or a conversion.
type Error struct {
	// Kind is one of the Err* values above.
	Kind    error
	Message string

	// Set for errors mapped from an HTTP response.
	StatusCode   int
	ErrorContent string
	Header       http.Header

	Err error
}

// NewError returns an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf returns an Error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError returns an Error of the given kind caused by err.
func WrapError(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or nil when err is not an *Error.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
