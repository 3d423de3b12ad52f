package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/nucleus/cmis-core/pkg/cmis"
)

// =============================================================================
// STATUS CLASSES
// =============================================================================

// StatusClass groups HTTP status codes the way the binding treats them.
type StatusClass string

const (
	StatusSuccess          StatusClass = "success"
	StatusRedirect         StatusClass = "redirect"
	StatusBadRequest       StatusClass = "bad_request"
	StatusForbidden        StatusClass = "forbidden"
	StatusNotFound         StatusClass = "not_found"
	StatusMethodNotAllowed StatusClass = "method_not_allowed"
	StatusConflict         StatusClass = "conflict"
	StatusServerError      StatusClass = "server_error"
	StatusOther            StatusClass = "other"
)

// ClassOf classifies a status code.
func ClassOf(code int) StatusClass {
	switch {
	case code >= 200 && code < 300:
		return StatusSuccess
	case code == http.StatusMovedPermanently, code == http.StatusFound,
		code == http.StatusSeeOther, code == http.StatusTemporaryRedirect,
		code == http.StatusPermanentRedirect:
		return StatusRedirect
	case code == http.StatusBadRequest:
		return StatusBadRequest
	case code == http.StatusForbidden:
		return StatusForbidden
	case code == http.StatusNotFound:
		return StatusNotFound
	case code == http.StatusMethodNotAllowed:
		return StatusMethodNotAllowed
	case code == http.StatusConflict:
		return StatusConflict
	case code == http.StatusInternalServerError:
		return StatusServerError
	default:
		return StatusOther
	}
}

// =============================================================================
// ERRORS
// =============================================================================

// HTTPError is a response outside the success class.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited returns true if this is a rate limit error.
func (e *HTTPError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError returns true if this is a server error.
func (e *HTTPError) IsServerError() bool {
	return e.StatusCode >= 500
}

// errorBody is the JSON document a browser binding server sends with a
// failure.
type errorBody struct {
	Exception string `json:"exception"`
	Message   string `json:"message"`
}

// ToCMISError maps an error response to a *cmis.Error. The exception name
// from the body refines the kind within a status class. Bodies that are not
// JSON keep the HTTP status text as message.
func ToCMISError(resp *Response) *cmis.Error {
	if resp == nil {
		return cmis.NewError(cmis.ErrConnectionFailure, "no response")
	}

	message := http.StatusText(resp.StatusCode)
	var body errorBody
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		if body.Message != "" {
			message = body.Message
		}
	}

	var kind error
	class := resp.Class()
	switch class {
	case StatusRedirect:
		kind = cmis.ErrConnectionFailure
		message = fmt.Sprintf("redirects are not supported (HTTP status code %d): %s", resp.StatusCode, message)
	case StatusBadRequest:
		kind = refine(class, body.Exception, cmis.ErrInvalidArgument)
	case StatusForbidden:
		kind = refine(class, body.Exception, cmis.ErrPermissionDenied)
	case StatusNotFound:
		kind = cmis.ErrObjectNotFound
	case StatusMethodNotAllowed:
		kind = cmis.ErrNotSupported
	case StatusConflict:
		kind = refine(class, body.Exception, cmis.ErrConstraint)
	case StatusServerError:
		kind = refine(class, body.Exception, cmis.ErrRuntime)
	default:
		kind = cmis.ErrRuntime
	}

	return &cmis.Error{
		Kind:         kind,
		Message:      message,
		StatusCode:   resp.StatusCode,
		ErrorContent: string(resp.Body),
		Header:       resp.Headers,
		Err:          &HTTPError{StatusCode: resp.StatusCode, Message: message},
	}
}

// exceptionKinds refines a status class by the exception name of the body,
// keyed by status class and lower-cased exception name.
var exceptionKinds = map[StatusClass]map[string]error{
	StatusBadRequest: {
		"filternotvalid": cmis.ErrFilterNotValid,
	},
	StatusForbidden: {
		"streamnotsupported": cmis.ErrStreamNotSupported,
	},
	StatusConflict: {
		"nameconstraintviolation": cmis.ErrNameConstraintViolation,
		"versioning":              cmis.ErrVersioning,
		"contentalreadyexists":    cmis.ErrContentAlreadyExists,
		"updateconflict":          cmis.ErrUpdateConflict,
	},
	StatusServerError: {
		"storage": cmis.ErrStorage,
	},
}

func refine(class StatusClass, exception string, fallback error) error {
	if kind, ok := exceptionKinds[class][strings.ToLower(exception)]; ok {
		return kind
	}
	return fallback
}
