package dragonball

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Method is an HTTP verb understood by the API.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodUpdate  Method = "UPDATE"
	MethodHead    Method = "HEAD"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
)

const (
	// DefaultHost is used by endpoints that leave Host empty.
	DefaultHost = "dragonball.keepcoding.education"

	// RequestTimeout bounds every transport call. It is not configurable per request.
	RequestTimeout = 10 * time.Second

	scheme = "https"
)

// BaseHeaders are sent with every request unless an endpoint overrides them.
var BaseHeaders = map[string]string{
	"Accept":       "application/json",
	"Content-Type": "application/json",
}

// Endpoint describes the shape of one API call, independent of its response
// type. Zero values mean defaults: DefaultHost, GET, no query, no extra
// headers and no body.
type Endpoint struct {
	Host    string
	Method  Method
	Path    string
	Query   map[string]string
	Headers map[string]string
	// Body is encoded with the client codec. It is ignored for GET.
	Body any
}

// Request is an Endpoint bound to the decoder of its response.
type Request[T any] struct {
	Endpoint
	// Decode turns the response bytes into T. Nil means JSON[T]().
	Decode Decoder[T]
}

func (e Endpoint) host() string {
	if e.Host == "" {
		return DefaultHost
	}
	return e.Host
}

func (e Endpoint) method() Method {
	if e.Method == "" {
		return MethodGet
	}
	return e.Method
}

// URL composes scheme, host, path and query parameters. It fails with
// MalformedURL when they do not form a valid absolute URL.
func (e Endpoint) URL() (*url.URL, error) {
	host := e.host()
	if e.Path == "" || !strings.HasPrefix(e.Path, "/") {
		return nil, MalformedURL(e.Path)
	}
	if strings.ContainsAny(host, "/?#@ \t\r\n") {
		return nil, MalformedURL(e.Path)
	}

	u := &url.URL{Scheme: scheme, Host: host, Path: e.Path}
	if len(e.Query) > 0 {
		values := make(url.Values, len(e.Query))
		for k, v := range e.Query {
			values.Set(k, v)
		}
		u.RawQuery = values.Encode()
	}

	parsed, err := url.Parse(u.String())
	if err != nil || parsed.Host != host || parsed.Hostname() == "" {
		return nil, MalformedURL(e.Path)
	}
	return parsed, nil
}

// BuildRequest materializes the endpoint into an *http.Request bound to ctx.
// Body encoding failures map to ParseData.
func (e Endpoint) BuildRequest(ctx context.Context, codec Codec) (*http.Request, error) {
	u, err := e.URL()
	if err != nil {
		return nil, err
	}
	if codec == nil {
		codec = DefaultCodec
	}

	method := e.method()
	var body io.Reader
	if method != MethodGet && e.Body != nil {
		payload, err := codec.Marshal(e.Body)
		if err != nil {
			return nil, ParseData(e.Path)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, string(method), u.String(), body)
	if err != nil {
		return nil, MalformedURL(e.Path)
	}

	for k, v := range BaseHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range e.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}
