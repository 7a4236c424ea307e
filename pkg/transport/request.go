// Package transport sends Bynder API requests and storage uploads over HTTP.
//
// The upload pipeline and the service wrappers only depend on the Sender interface;
// HTTPSender is the production implementation with rate limiting and a circuit breaker.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/Bynder/bynder-go-sdk/pkg/query"
)

// Content types used by the API.
const (
	ContentTypeForm   = "application/x-www-form-urlencoded"
	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"
)

// Sender sends one request and returns the raw response.
// Implementations return a *RequestError for any non-2xx status.
type Sender interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Request describes a single call.
type Request struct {
	Method string
	// Path is relative to the API base URL, or an absolute URL when External is set.
	Path string
	// Query is appended to the URL, after any query already present in Path.
	Query *query.Params
	// Form is sent as an application/x-www-form-urlencoded body when Body is nil.
	Form *query.Params
	// Body is sent as is with ContentType.
	Body        io.Reader
	ContentType string
	Header      http.Header
	// External requests go to the storage backend and carry no API credentials.
	External bool
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Get builds a GET request.
func Get(path string, q *query.Params) *Request {
	return &Request{Method: http.MethodGet, Path: path, Query: q}
}

// PostForm builds a form POST request.
func PostForm(path string, form *query.Params) *Request {
	return &Request{Method: http.MethodPost, Path: path, Form: form}
}

// Delete builds a DELETE request.
func Delete(path string, q *query.Params) *Request {
	return &Request{Method: http.MethodDelete, Path: path, Query: q}
}

// SetHeader sets a request header and returns r.
func (r *Request) SetHeader(key, value string) *Request {
	if r.Header == nil {
		r.Header = make(http.Header)
	}

	r.Header.Set(key, value)

	return r
}

// Decode unmarshals the JSON body of resp into T.
func Decode[T any](resp *Response) (T, error) {
	var out T

	if resp == nil || len(resp.Body) == 0 {
		return out, fmt.Errorf("decode response: empty body")
	}

	if err := sonic.Unmarshal(resp.Body, &out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}

	return out, nil
}

// SendJSON sends req and decodes the JSON response into T.
func SendJSON[T any](ctx context.Context, s Sender, req *Request) (T, error) {
	var zero T

	resp, err := s.Send(ctx, req)
	if err != nil {
		return zero, err
	}

	return Decode[T](resp)
}
