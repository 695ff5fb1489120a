package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Error is the single concrete error type every facade fails with, whether
// the call went over the network or through the isolated mock runtime.
// StatusCode is always set; the remaining fields are best-effort.
type Error struct {
	Message    string          `json:"message"`
	StatusCode int             `json:"statusCode"`
	Code       string          `json:"code,omitempty"`
	RequestID  string          `json:"requestId,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`

	// Raw is the unparsed error payload, kept for diagnostics.
	Raw []byte `json:"-"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %s (%d %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("api: %s (%d)", e.Message, e.StatusCode)
}

// IsClientError reports whether the error is a 4xx, which is never transient.
func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsUnauthorized reports a missing or expired session. Callers are expected
// to clear the token and re-authenticate.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// NewError builds an Error directly; the mock runtime uses this to fail with
// the same shape the live backend would.
func NewError(statusCode int, code, message string) *Error {
	return &Error{Message: message, StatusCode: statusCode, Code: code}
}

// AsError unwraps err into an *Error when the chain contains one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// normalizeError turns a non-2xx transport response into an *Error. Field
// names follow the backend's error envelope; the request id falls back to
// the response header when the payload has none.
func normalizeError(status int, headers http.Header, body []byte) *Error {
	apiErr := &Error{
		StatusCode: status,
		Raw:        append([]byte(nil), body...),
	}

	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		apiErr.Message = firstString(parsed, "message", "error.message", "msg")
		apiErr.Code = firstString(parsed, "code", "error.code")
		apiErr.RequestID = firstString(parsed, "requestId", "request_id")
		if details := parsed.Get("details"); details.Exists() {
			apiErr.Details = json.RawMessage(details.Raw)
		}
	}
	if apiErr.RequestID == "" && headers != nil {
		// http.Header lookup is case-insensitive.
		apiErr.RequestID = headers.Get("X-Request-Id")
	}
	if apiErr.Message == "" {
		text := http.StatusText(status)
		if text == "" {
			text = "request failed"
		}
		apiErr.Message = fmt.Sprintf("%s (status %d)", strings.ToLower(text), status)
	}
	return apiErr
}

func firstString(parsed gjson.Result, paths ...string) string {
	for _, path := range paths {
		if v := parsed.Get(path); v.Exists() && v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
