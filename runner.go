package dragonball

import "context"

// Perform materializes r, executes it through c and decodes the response. An
// empty r.Host is replaced by the client host.
// Build and execution errors are returned unchanged; decode failures become
// ParseData(path).
func Perform[T any](ctx context.Context, c *Client, r Request[T]) (T, error) {
	var zero T

	if r.Host == "" {
		r.Host = c.host
	}
	req, err := r.BuildRequest(ctx, c.codec)
	if err != nil {
		return zero, err
	}

	data, err := c.Execute(req)
	if err != nil {
		return zero, err
	}

	decode := r.Decode
	if decode == nil {
		decode = DecodeWith[T](c.codec)
	}

	v, err := decode(data)
	if err == nil {
		return v, nil
	}

	endpoint := getEndpointFromRequest(req)
	c.metrics.RecordDecodeFailure(endpoint)

	if apiErr, ok := AsAPIError(err); ok {
		if apiErr.URL == "" {
			cp := *apiErr
			cp.URL = r.Path
			apiErr = &cp
		}
		c.metrics.RecordError(apiErr.Kind().String(), req.Method, endpoint)
		return zero, apiErr
	}

	if c.debugEnabled() && c.debug.LogErrors {
		c.logger.Warn("Decoding response failed", "endpoint", endpoint, "bytes", len(data), "error", err.Error())
	}
	c.metrics.RecordError(KindParseData.String(), req.Method, endpoint)
	return zero, ParseData(r.Path)
}

// PerformAsync runs Perform on a new goroutine and hands the result to
// completion exactly once, on that goroutine. There is no cancellation of the
// callback: callers that lose interest ignore it.
func PerformAsync[T any](ctx context.Context, c *Client, r Request[T], completion func(T, error)) {
	go func() {
		completion(Perform(ctx, c, r))
	}()
}
