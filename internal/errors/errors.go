package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a resource does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrUnknownUser is returned when logging in with a username that is not registered.
	ErrUnknownUser = errors.New("Incorrect Username")
	// ErrBadPassword is returned when the password does not match the stored hash.
	ErrBadPassword = errors.New("Incorrect Password")
	// ErrUnauthenticated is returned when a bearer token is missing, malformed or expired.
	ErrUnauthenticated = errors.New("Unauthorized")
	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("Username already exists")
	// ErrDuplicatePost is returned when an owner already has a post with the same title or slug.
	ErrDuplicatePost = errors.New("Post with this title or slug already exists")
	// ErrTooManyAttempts is returned when a username has too many recent failed logins.
	ErrTooManyAttempts = errors.New("Too many failed login attempts")
)

// Reasons used in error bodies.
const (
	ReasonValidation          = "ValidationError"
	ReasonMalformedID         = "MalformedId"
	ReasonUnauthenticated     = "Unauthenticated"
	ReasonUnknownUser         = "UnknownUser"
	ReasonBadPassword         = "BadPassword"
	ReasonForbidden           = "Forbidden"
	ReasonNotFound            = "NotFound"
	ReasonDuplicate           = "DuplicateResource"
	ReasonMissingUpdateFields = "MissingUpdateFields"
	ReasonBadRequest          = "BadRequest"
	ReasonTooManyAttempts     = "TooManyAttempts"
	ReasonInternal            = "InternalError"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Reason     string
	Message    string
	Location   string
	Internal   error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, reason string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Reason:     reason,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Code:     e.StatusCode,
		Reason:   e.Reason,
		Message:  e.Message,
		Location: e.Location,
	}
}

// Validation builds a 422 error pointing at the offending field.
func Validation(message, location string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusUnprocessableEntity,
		Reason:     ReasonValidation,
		Message:    message,
		Location:   location,
	}
}

// MalformedID is returned when a path or body id is not a valid identifier.
func MalformedID() *HTTPError {
	return NewHTTPError(http.StatusBadRequest, "The `id` is not valid", ReasonMalformedID)
}

// MissingUpdateFields is returned for update requests without any updatable field.
func MissingUpdateFields() *HTTPError {
	return NewHTTPError(http.StatusBadRequest, "Missing update fields in request body", ReasonMissingUpdateFields)
}

// BadRequest is returned when the body cannot be decoded or lacks credentials.
func BadRequest() *HTTPError {
	return NewHTTPError(http.StatusBadRequest, "Bad Request", ReasonBadRequest)
}

// Unauthenticated is returned by the bearer guard.
func Unauthenticated(cause error) *HTTPError {
	e := NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), ReasonUnauthenticated)
	e.Internal = cause
	return e
}

// httpErrorer is implemented by errors that know their own HTTP rendering.
type httpErrorer interface {
	HTTPError() *HTTPError
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var renderable httpErrorer
	if errors.As(err, &renderable) {
		return renderable.HTTPError()
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "Not Found", ReasonNotFound)
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "Forbidden", ReasonForbidden)
	case errors.Is(err, ErrUnknownUser):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), ReasonUnknownUser)
	case errors.Is(err, ErrBadPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), ReasonBadPassword)
	case errors.Is(err, ErrUnauthenticated):
		return Unauthenticated(err)
	case errors.Is(err, ErrDuplicateUsername), errors.Is(err, ErrDuplicatePost):
		return NewHTTPError(http.StatusBadRequest, err.Error(), ReasonDuplicate)
	case errors.Is(err, ErrTooManyAttempts):
		return NewHTTPError(http.StatusTooManyRequests, err.Error(), ReasonTooManyAttempts)
	default:
		e := NewHTTPError(http.StatusInternalServerError, "Internal Server Error", ReasonInternal)
		e.Internal = err
		return e
	}
}
