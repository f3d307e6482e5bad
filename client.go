package dragonball

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// Transport performs one HTTP round trip. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportFunc is a helper type for tests and custom transports.
type TransportFunc func(*http.Request) (*http.Response, error)

// Do calls f(req).
func (f TransportFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// stopRedirects hands 3xx responses back to Execute, which rejects them.
func stopRedirects(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// Client executes materialized requests: it applies the interceptor chain,
// performs a single transport call and validates the response status. It is
// safe for concurrent use once constructed.
type Client struct {
	transport       Transport
	host            string
	sessionStore    SessionStore
	interceptors    []RequestInterceptor
	replaceChain    bool
	codec           Codec
	metrics         *MetricsCollector
	debug           *DebugConfig
	logger          Logger
	validationError error
}

// New constructs a Client using the provided functional options. Unless
// WithInterceptors replaces the chain, it starts with an
// AuthenticationInterceptor over the client's session store. A best effort
// validation is performed; call IsValid / ValidationError for errors.
func New(options ...Option) *Client {
	client := &Client{
		transport:    &http.Client{CheckRedirect: stopRedirects},
		host:         DefaultHost,
		sessionStore: NewMemorySessionStore(),
		interceptors: nil,
		codec:        DefaultCodec,
		metrics:      nil,
		debug:        DefaultDebugConfig(),
		logger:       nil,
	}

	for _, option := range options {
		option(client)
	}

	if !client.replaceChain {
		chain := []RequestInterceptor{NewAuthenticationInterceptor(client.sessionStore)}
		client.interceptors = append(chain, client.interceptors...)
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	return client
}

// Unauthenticated returns a client sharing c's configuration with an empty
// interceptor chain. Login requests go through it so a stored session never
// replaces their Basic credentials.
func (c *Client) Unauthenticated() *Client {
	cp := *c
	cp.interceptors = nil
	cp.replaceChain = true
	return &cp
}

// Host returns the host used by requests that leave Endpoint.Host empty.
func (c *Client) Host() string {
	return c.host
}

// SessionStore returns the store read by the default authentication interceptor.
func (c *Client) SessionStore() SessionStore {
	return c.sessionStore
}

// Codec returns the codec used for request bodies and default decoding.
func (c *Client) Codec() Codec {
	return c.codec
}

// Execute applies the interceptors to req, sends it and returns the response
// body. Transport errors are returned unmodified; any status other than 200
// yields Network(path).
func (c *Client) Execute(req *http.Request) ([]byte, error) {
	start := time.Now()
	path := req.URL.Path
	endpoint := getEndpointFromRequest(req)

	var requestID string
	if c.debugEnabled() && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	for _, interceptor := range c.interceptors {
		interceptor.Intercept(req)
	}
	c.metrics.RecordInterceptors(endpoint, len(c.interceptors))

	if c.debugEnabled() && c.debug.LogRequests {
		c.logger.Debug("Starting request", "requestID", requestID, "method", req.Method, "url", req.URL.String(), "endpoint", endpoint)
	}

	ctx, cancel := context.WithTimeout(req.Context(), RequestTimeout)
	defer cancel()

	c.metrics.RecordRequestStart(req.Method, endpoint)
	resp, err := c.transport.Do(req.WithContext(ctx))
	c.metrics.RecordRequestEnd(req.Method, endpoint)

	if err != nil {
		c.metrics.RecordRequest(req.Method, endpoint, 0, time.Since(start))
		c.metrics.RecordError("transport", req.Method, endpoint)
		if c.debugEnabled() && c.debug.LogErrors {
			c.logger.Warn("Transport failed", "requestID", requestID, "endpoint", endpoint, "error", err.Error())
		}
		return nil, err
	}
	if resp == nil {
		c.metrics.RecordRequest(req.Method, endpoint, 0, time.Since(start))
		c.metrics.RecordError(KindNetwork.String(), req.Method, endpoint)
		return nil, Network(path)
	}

	var body []byte
	var readErr error
	if resp.Body != nil {
		body, readErr = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
	}

	duration := time.Since(start)
	c.metrics.RecordRequest(req.Method, endpoint, resp.StatusCode, duration)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordError(KindNetwork.String(), req.Method, endpoint)
		if c.debugEnabled() && c.debug.LogErrors {
			c.logger.Warn("Unexpected status", "requestID", requestID, "endpoint", endpoint, "statusCode", resp.StatusCode)
		}
		return nil, Network(path)
	}
	if readErr != nil {
		c.metrics.RecordError("transport", req.Method, endpoint)
		if c.debugEnabled() && c.debug.LogErrors {
			c.logger.Warn("Reading body failed", "requestID", requestID, "endpoint", endpoint, "error", readErr.Error())
		}
		return nil, readErr
	}

	if c.debugEnabled() && c.debug.LogResponses {
		c.logger.Debug("Request completed", "requestID", requestID, "endpoint", endpoint, "bytes", len(body), "duration", duration)
	}

	if body == nil {
		body = []byte{}
	}
	return body, nil
}

func (c *Client) debugEnabled() bool {
	return c.debug != nil && c.debug.Enabled && c.logger != nil
}

func getEndpointFromRequest(req *http.Request) string {
	if req.URL == nil {
		return "unknown"
	}

	var builder strings.Builder
	builder.WriteString(req.URL.Host)

	if path := req.URL.Path; path != "" && path != "/" {
		builder.WriteString(path)
	} else {
		builder.WriteByte('/')
	}

	return builder.String()
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}
