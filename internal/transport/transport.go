// Package transport binds the client runtime to the platform primitives that
// actually perform login, HTTP requests and file operations. Exactly one
// adapter is active per process, chosen once by Select.
package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ProcureNet/client_runtime/internal/platform"
)

// ErrUnsupportedPlatform is returned by every operation of the adapter
// selected for an unrecognised platform.
var ErrUnsupportedPlatform = errors.New("transport: not supported on this platform")

// ErrUnsupportedCapability is returned when the active platform has no
// binding for a particular primitive (e.g. file choosers outside a
// mini-program host).
var ErrUnsupportedCapability = errors.New("transport: capability not available on this platform")

// Request describes one outbound call. URL is fully qualified; Body is
// opaque.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte

	// Timeout is a caller-level hint; zero means the adapter default.
	Timeout time.Duration
}

// Response is the raw transport result, prior to any classification.
type Response struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// LoginResult carries the platform login code exchanged for a session.
type LoginResult struct {
	Code string
}

// UploadRequest describes a multipart file upload.
type UploadRequest struct {
	URL        string
	FieldName  string
	FileName   string
	Content    []byte
	FormFields map[string]string
	Headers    http.Header
	Timeout    time.Duration
}

// FileRef points at a file the user picked through a platform chooser.
type FileRef struct {
	Path string
	Name string
	Size int64
}

// Adapter is the per-platform binding. Implementations must be safe for
// concurrent use.
type Adapter interface {
	Login(ctx context.Context) (LoginResult, error)
	Request(ctx context.Context, req Request) (Response, error)
	UploadFile(ctx context.Context, req UploadRequest) (Response, error)
	ChooseImage(ctx context.Context, count int) ([]FileRef, error)
	ChooseFile(ctx context.Context, count int) ([]FileRef, error)

	// ExtraHeaders are merged under caller headers on every request.
	ExtraHeaders() http.Header
}

// Bridge holds host-supplied primitive functions for mini-program platforms.
// A nil Login or Request means the host is not actually capable of acting as
// that platform and selection falls through to the unsupported adapter.
type Bridge struct {
	Login       func(ctx context.Context) (LoginResult, error)
	Request     func(ctx context.Context, req Request) (Response, error)
	UploadFile  func(ctx context.Context, req UploadRequest) (Response, error)
	ChooseImage func(ctx context.Context, count int) ([]FileRef, error)
	ChooseFile  func(ctx context.Context, count int) ([]FileRef, error)
	Headers     http.Header
}

// Select picks the single adapter implementation for the platform. Unknown
// platforms get a fail-fast adapter rather than defaulting to HTTP.
func Select(p platform.Platform, bridge *Bridge) Adapter {
	switch {
	case p.MiniProgram():
		if bridge == nil || bridge.Login == nil || bridge.Request == nil {
			return unsupportedAdapter{}
		}
		return &bridgeAdapter{platform: p, bridge: bridge}
	case p == platform.Web:
		return NewHTTPAdapter(nil)
	default:
		return unsupportedAdapter{}
	}
}

// unsupportedAdapter rejects every operation.
type unsupportedAdapter struct{}

func (unsupportedAdapter) Login(context.Context) (LoginResult, error) {
	return LoginResult{}, ErrUnsupportedPlatform
}

func (unsupportedAdapter) Request(context.Context, Request) (Response, error) {
	return Response{}, ErrUnsupportedPlatform
}

func (unsupportedAdapter) UploadFile(context.Context, UploadRequest) (Response, error) {
	return Response{}, ErrUnsupportedPlatform
}

func (unsupportedAdapter) ChooseImage(context.Context, int) ([]FileRef, error) {
	return nil, ErrUnsupportedPlatform
}

func (unsupportedAdapter) ChooseFile(context.Context, int) ([]FileRef, error) {
	return nil, ErrUnsupportedPlatform
}

func (unsupportedAdapter) ExtraHeaders() http.Header { return nil }

// bridgeAdapter delegates to the host bridge.
type bridgeAdapter struct {
	platform platform.Platform
	bridge   *Bridge
}

func (b *bridgeAdapter) Login(ctx context.Context) (LoginResult, error) {
	return b.bridge.Login(ctx)
}

func (b *bridgeAdapter) Request(ctx context.Context, req Request) (Response, error) {
	return b.bridge.Request(ctx, req)
}

func (b *bridgeAdapter) UploadFile(ctx context.Context, req UploadRequest) (Response, error) {
	if b.bridge.UploadFile == nil {
		return Response{}, ErrUnsupportedCapability
	}
	return b.bridge.UploadFile(ctx, req)
}

func (b *bridgeAdapter) ChooseImage(ctx context.Context, count int) ([]FileRef, error) {
	if b.bridge.ChooseImage == nil {
		return nil, ErrUnsupportedCapability
	}
	return b.bridge.ChooseImage(ctx, count)
}

func (b *bridgeAdapter) ChooseFile(ctx context.Context, count int) ([]FileRef, error) {
	if b.bridge.ChooseFile == nil {
		return nil, ErrUnsupportedCapability
	}
	return b.bridge.ChooseFile(ctx, count)
}

func (b *bridgeAdapter) ExtraHeaders() http.Header {
	return b.bridge.Headers
}
