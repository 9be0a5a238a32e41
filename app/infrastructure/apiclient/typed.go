package apiclient

import "context"

// Send runs req and decodes the payload into T. An expired session yields the zero
// value and a nil error.
func Send[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T
	resp, err := c.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if err := resp.Payload.Decode(&out); err != nil {
		return out, newTransportError("malformed response", err)
	}
	return out, nil
}

// Get is Send for a GET on path cached under cacheKey. An empty cacheKey disables
// caching.
func Get[T any](ctx context.Context, c *Client, path, cacheKey string, forceRefresh bool) (T, error) {
	return Send[T](ctx, c, Request{
		Method:       "GET",
		Path:         path,
		CacheKey:     cacheKey,
		ForceRefresh: forceRefresh,
	})
}
