package motherlib

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoTags is returned by exact-match operations called with an empty tag
// set. No request is issued in that case.
var ErrNoTags = errors.New("motherlib: at least one tag required")

// ConnectionError reports that no response was received from the server.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("motherlib: connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// APIError is a structured failure reported by the server as a JSON error
// body on a non-2xx response.
type APIError struct {
	StatusCode int    `json:"statuscode"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Err        string `json:"err,omitempty"`
}

func (e *APIError) Error() string {
	if e.Err != "" {
		return fmt.Sprintf("motherlib: %s (%d): %s: %s", e.Kind, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("motherlib: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
}

// DecodeError reports a response body that does not match the wire contract.
type DecodeError struct {
	Msg string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("motherlib: decode %s: %v", e.Msg, e.Err)
	}
	return "motherlib: decode " + e.Msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// apiError decodes a server error body. Bodies that are not the documented
// JSON shape are carried verbatim in Message so nothing gets swallowed.
func apiError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if json.Unmarshal(body, apiErr) == nil && apiErr.Kind != "" {
		apiErr.StatusCode = statusCode
		return apiErr
	}
	return &APIError{StatusCode: statusCode, Kind: "unknown", Message: string(body)}
}
