package kitchen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies a failed API call.
type Kind int

const (
	// KindRequestFailed is any non-2xx status other than 401.
	KindRequestFailed Kind = iota + 1
	// KindSessionExpired is a 401; the session has already been cleared.
	KindSessionExpired
	// KindNetwork means the server could not be reached at all.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindRequestFailed:
		return "request_failed"
	case KindSessionExpired:
		return "session_expired"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by the client. Message is the
// user-facing text.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Detail is the raw backend "detail" value when it was not a plain string.
	Detail json.RawMessage
	Err    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsSessionExpired reports whether err came from a 401 response.
func IsSessionExpired(err error) bool {
	return kindOf(err) == KindSessionExpired
}

// IsNetwork reports whether err means the server was unreachable.
func IsNetwork(err error) bool {
	return kindOf(err) == KindNetwork
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func kindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// requestFailed builds the error for a non-2xx body. The backend's detail
// text is used verbatim when present.
func requestFailed(status int, body []byte) *Error {
	e := &Error{
		Kind:    KindRequestFailed,
		Status:  status,
		Message: fmt.Sprintf("Request failed with status %d", status),
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return e
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		if text != "" {
			e.Message = text
		}
		return e
	}
	if bytes.Equal(bytes.TrimSpace(envelope.Detail), []byte("null")) {
		return e
	}

	e.Detail = envelope.Detail
	var structured struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Detail, &structured); err == nil && structured.Message != "" {
		e.Message = structured.Message
		return e
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, envelope.Detail); err == nil {
		e.Message = compact.String()
	}
	return e
}
