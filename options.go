package dragonball

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Option represents a configuration option
type Option func(*Client)

// WithTransport sets the transport used for every request
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHTTPClient sets a custom HTTP client as transport. The client is copied
// with redirect following disabled, so a 3xx status fails like any other
// non-200 response.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client == nil {
			c.transport = nil
			return
		}
		cp := *client
		cp.CheckRedirect = stopRedirects
		c.transport = &cp
	}
}

// WithHost sets the host for requests whose endpoint leaves Host empty
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = host
	}
}

// WithSessionStore sets the store read by the default authentication interceptor
func WithSessionStore(store SessionStore) Option {
	return func(c *Client) {
		c.sessionStore = store
	}
}

// WithInterceptor appends interceptors after the default authentication interceptor
func WithInterceptor(interceptors ...RequestInterceptor) Option {
	return func(c *Client) {
		c.interceptors = append(c.interceptors, interceptors...)
	}
}

// WithInterceptors replaces the whole interceptor chain, including the
// default authentication interceptor
func WithInterceptors(interceptors ...RequestInterceptor) Option {
	return func(c *Client) {
		c.interceptors = append([]RequestInterceptor(nil), interceptors...)
		c.replaceChain = true
	}
}

// WithCodec sets the codec for request bodies and default response decoding
func WithCodec(codec Codec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// WithMetrics enables Prometheus metrics collection on the default registerer.
// The series can be registered only once per process, so a second client built
// with WithMetrics panics; share one collector or use WithMetricsCollector with
// NewMetricsCollectorWithRegistry instead.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithLogger sets a custom logger for debug output
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithZapLogger enables debug logging through l
func WithZapLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewZapLogger(l)
	}
}

// WithSimpleLogger enables debug logging with a development console logger
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// ValidateConfiguration validates the client configuration and returns an error if invalid
func (c *Client) ValidateConfiguration() error {
	var problems []string

	problems = append(problems, c.validateTransportConfig()...)
	problems = append(problems, c.validateInterceptorConfig()...)
	problems = append(problems, c.validateCodecConfig()...)
	problems = append(problems, c.validateDebugConfig()...)

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}

	return nil
}

func (c *Client) validateTransportConfig() []string {
	var problems []string

	if c.transport == nil {
		problems = append(problems, "transport cannot be nil")
	}

	if c.host == "" {
		problems = append(problems, "host cannot be empty")
	}

	return problems
}

func (c *Client) validateInterceptorConfig() []string {
	var problems []string

	if !c.replaceChain && c.sessionStore == nil {
		problems = append(problems, "session store must be set when the default interceptor chain is used")
	}

	for i, interceptor := range c.interceptors {
		if interceptor == nil {
			problems = append(problems, fmt.Sprintf("interceptor[%d] cannot be nil", i))
		}
	}

	return problems
}

func (c *Client) validateCodecConfig() []string {
	var problems []string

	if c.codec == nil {
		problems = append(problems, "codec cannot be nil")
	}

	return problems
}

func (c *Client) validateDebugConfig() []string {
	var problems []string

	if c.debug != nil && c.debug.Enabled {
		if c.debug.RequestIDGen == nil {
			problems = append(problems, "debug RequestIDGen must be set when debug is enabled")
		}
		if c.logger == nil {
			problems = append(problems, "logger must be set when debug is enabled")
		}
	}

	return problems
}
