package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"time"
)

const maxResponseBytes = 8 << 20

// HTTPAdapter performs requests over net/http. It is the adapter for web
// hosts, where the platform primitive is plain fetch-style HTTP. Login and
// file choosers are mini-program capabilities and are not available here.
type HTTPAdapter struct {
	client *http.Client
}

// NewHTTPAdapter wraps the given client, defaulting to a pooled client with
// a 30 second timeout.
func NewHTTPAdapter(client *http.Client) *HTTPAdapter {
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		}
	}
	return &HTTPAdapter{client: client}
}

var _ Adapter = (*HTTPAdapter)(nil)

func (h *HTTPAdapter) Login(context.Context) (LoginResult, error) {
	return LoginResult{}, ErrUnsupportedCapability
}

func (h *HTTPAdapter) Request(ctx context.Context, req Request) (Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	for key, values := range req.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	return h.do(httpReq)
}

func (h *HTTPAdapter) UploadFile(ctx context.Context, req UploadRequest) (Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	fieldName := req.FieldName
	if fieldName == "" {
		fieldName = "file"
	}
	part, err := writer.CreateFormFile(fieldName, req.FileName)
	if err != nil {
		return Response{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(req.Content); err != nil {
		return Response{}, fmt.Errorf("build multipart body: %w", err)
	}
	for key, value := range req.FormFields {
		if err := writer.WriteField(key, value); err != nil {
			return Response{}, fmt.Errorf("build multipart body: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return Response{}, fmt.Errorf("build multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, &buf)
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	for key, values := range req.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	return h.do(httpReq)
}

func (h *HTTPAdapter) do(req *http.Request) (Response, error) {
	resp, err := h.client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("read response body: %w", err)
	}
	return Response{Status: resp.StatusCode, Headers: resp.Header, Body: data}, nil
}

func (h *HTTPAdapter) ChooseImage(context.Context, int) ([]FileRef, error) {
	return nil, ErrUnsupportedCapability
}

func (h *HTTPAdapter) ChooseFile(context.Context, int) ([]FileRef, error) {
	return nil, ErrUnsupportedCapability
}

func (h *HTTPAdapter) ExtraHeaders() http.Header { return nil }
