package dlyt

import (
	"errors"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid dlyt client configuration")
	// ErrInvalidResponse indicates a successful call whose payload does not fit the expected shape
	ErrInvalidResponse = errors.New("unexpected response payload")
)

// Messages used when neither the payload nor the transport supplies one
const (
	msgRequestFailed = "request failed"
	msgNetworkError  = "network error, please try again later"
)

// ErrorKind tells which stage of a call failed
type ErrorKind int

const (
	// KindNetwork covers everything before a response arrives: encoding, dialing, reading
	KindNetwork ErrorKind = iota
	// KindTransport is an HTTP status outside the success range
	KindTransport
	// KindBusiness is a successful HTTP response whose business code signals failure
	KindBusiness
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindBusiness:
		return "business"
	default:
		return "network"
	}
}

// APIError is returned for every failed call. Error() is exactly the message
// that was sent to the notifier.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	// BizCode is the rendered business code, set for KindBusiness
	BizCode string
	Message string
	// Payload is the parsed response body, nil for KindNetwork
	Payload any
	Err     error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the HTTP status signalled the failure
func (e *APIError) IsTransport() bool {
	return e.Kind == KindTransport
}

// IsBusiness reports whether an embedded business code signalled the failure
func (e *APIError) IsBusiness() bool {
	return e.Kind == KindBusiness
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// AsAPIError unwraps err into an *APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
