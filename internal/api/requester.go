// Package api turns generic request descriptors into transport calls with
// auth injection, and normalizes every response into one envelope and one
// error shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ProcureNet/client_runtime/internal/transport"
	"github.com/ProcureNet/client_runtime/pkg/logger"
)

// Descriptor describes one API call. URL must be fully qualified; the base
// URL is already joined by the facade.
type Descriptor struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte

	// ContentType overrides the default application/json for bodies.
	ContentType string

	// Timeout is passed through to the transport adapter where supported.
	Timeout time.Duration
}

// Response is the success envelope. It is only ever constructed for 2xx
// responses; everything else becomes an *Error.
type Response struct {
	Data    json.RawMessage
	Status  int
	Headers http.Header
}

// ErrBadMethod marks a descriptor whose method is not an HTTP verb this
// client dispatches.
var ErrBadMethod = errors.New("api: unsupported method")

var allowedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// TokenSource supplies the current bearer token; empty means unauthenticated.
type TokenSource interface {
	Token() string
}

// Requester dispatches descriptors through the active transport adapter. It
// does not retry and never mutates the token store.
type Requester struct {
	adapter transport.Adapter
	tokens  TokenSource
	limiter *rate.Limiter
	log     *logger.Logger
}

// Option customises a Requester.
type Option func(*Requester)

// WithRateLimit caps outbound request rate. Off by default.
func WithRateLimit(rps float64, burst int) Option {
	return func(r *Requester) {
		r.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(r *Requester) {
		r.log = log
	}
}

// NewRequester builds a requester over the adapter. tokens may be nil for
// unauthenticated use.
func NewRequester(adapter transport.Adapter, tokens TokenSource, opts ...Option) *Requester {
	r := &Requester{
		adapter: adapter,
		tokens:  tokens,
		log:     logger.NewDefault("requester"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do executes the descriptor. Transport failures are propagated unchanged;
// non-2xx statuses come back as *Error.
func (r *Requester) Do(ctx context.Context, d Descriptor) (Response, error) {
	method := strings.ToUpper(strings.TrimSpace(d.Method))
	if !allowedMethods[method] {
		return Response{}, fmt.Errorf("%w: %q", ErrBadMethod, d.Method)
	}

	headers := make(http.Header)
	for key, values := range r.adapter.ExtraHeaders() {
		for _, v := range values {
			headers.Add(key, v)
		}
	}
	// Caller headers win over adapter extras.
	for key, values := range d.Headers {
		headers.Del(key)
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	if r.tokens != nil {
		if token := r.tokens.Token(); token != "" {
			headers.Set("Authorization", "Bearer "+token)
		}
	}

	if len(d.Body) > 0 && headers.Get("Content-Type") == "" {
		contentType := d.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		if !strings.HasPrefix(contentType, "multipart/form-data") {
			headers.Set("Content-Type", contentType)
		}
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return Response{}, err
		}
	}

	raw, err := r.adapter.Request(ctx, transport.Request{
		Method:  method,
		URL:     d.URL,
		Headers: headers,
		Body:    d.Body,
		Timeout: d.Timeout,
	})
	if err != nil {
		return Response{}, err
	}

	if raw.Status < 200 || raw.Status > 299 {
		apiErr := normalizeError(raw.Status, raw.Headers, raw.Body)
		r.log.WithField("method", method).
			WithField("status", raw.Status).
			WithField("code", apiErr.Code).
			Debug("request failed")
		return Response{}, apiErr
	}

	return Response{
		Data:    sniffJSON(raw.Body),
		Status:  raw.Status,
		Headers: raw.Headers,
	}, nil
}

// sniffJSON keeps bodies that already look like JSON and quotes everything
// else into a JSON string value, so Response.Data is always valid JSON.
func sniffJSON(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if json.Valid(trimmed) {
			return json.RawMessage(trimmed)
		}
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return json.RawMessage("null")
	}
	return json.RawMessage(quoted)
}

// Do runs a descriptor through the requester and decodes the envelope data
// into T.
func Do[T any](ctx context.Context, r *Requester, d Descriptor) (T, error) {
	var out T
	resp, err := r.Do(ctx, d)
	if err != nil {
		return out, err
	}
	if len(resp.Data) == 0 || bytes.Equal(resp.Data, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return out, fmt.Errorf("api: decode response: %w", err)
	}
	return out, nil
}

// JSONBody marshals v for use as a descriptor body.
func JSONBody(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
