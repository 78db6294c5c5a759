// Package api is the REST client for the Petbook backend. It owns three
// concerns: attaching the bearer credential to every outbound request,
// mapping transport failures and HTTP statuses to the shared sentinel
// errors, and normalizing media paths the backend returns.
//
// Stores consume this package through narrow interfaces; nothing above this
// layer ever sees a raw *http.Response.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avelichko/petbook/internal/common"
	"github.com/avelichko/petbook/internal/logging"
)

// TokenSource supplies the current access token. An empty string means
// "unauthenticated"; no Authorization header is attached then.
type TokenSource func() string

type Client struct {
	baseURL      string
	mediaBaseURL string
	http         *http.Client
	log          logging.Logger
	tokenSource  TokenSource
}

// New builds a Client against the versioned API base (e.g.
// "https://petbook.example/api/v1") and the media base used to resolve
// relative media paths.
func New(baseURL, mediaBaseURL string, log logging.Logger) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		mediaBaseURL: mediaBaseURL,
		log:          log,
	}
	c.http = &http.Client{
		Timeout:   30 * time.Second,
		Transport: newBearerTransport(http.DefaultTransport, c.currentToken),
	}
	return c
}

// SetTokenSource wires the session store's snapshot in after both objects
// exist. Requests made before this call go out unauthenticated.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokenSource = ts
}

func (c *Client) currentToken() string {
	if c.tokenSource == nil {
		return ""
	}
	return c.tokenSource()
}

// apiError is the backend's error body shape.
type apiError struct {
	Detail string `json:"detail"`
}

// mapError translates an HTTP status plus body into a sentinel error that
// callers match with errors.Is.
func mapError(status int, body []byte) error {
	var sentinel error
	switch {
	case status == http.StatusUnauthorized:
		sentinel = common.ErrUnauthorized
	case status == http.StatusForbidden:
		sentinel = common.ErrForbidden
	case status == http.StatusNotFound:
		sentinel = common.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		sentinel = common.ErrValidation
	case status >= 500:
		sentinel = common.ErrUnavailable
	default:
		sentinel = common.ErrInternal
	}

	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Detail != "" {
		return fmt.Errorf("%w: %s", sentinel, ae.Detail)
	}
	return fmt.Errorf("%w: status %d", sentinel, status)
}

// do issues a request and returns the raw response body. Network failures
// come back as ErrUnavailable; non-2xx statuses go through mapError.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return nil, mapError(resp.StatusCode, data)
	}
	return data, nil
}

func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.getRaw(ctx, path)
	if err != nil {
		return err
	}
	return decodeBody(data, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrInternal, err)
		}
		body = bytes.NewReader(b)
	}
	data, err := c.do(ctx, method, path, "application/json", body)
	if err != nil {
		return err
	}
	return decodeBody(data, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	data, err := c.do(ctx, http.MethodPost, path,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	return decodeBody(data, out)
}

func decodeBody(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", common.ErrInternal, err)
	}
	return nil
}

// decodeList accepts both response shapes the backend emits for
// collections: a bare JSON array, or an envelope {"data": [...]}. The
// normalization lives here, at the service boundary, so call sites always
// get one canonical slice type.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("%w: decoding list: %v", common.ErrInternal, err)
		}
		return out, nil
	}
	var env struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: decoding list envelope: %v", common.ErrInternal, err)
	}
	return env.Data, nil
}
