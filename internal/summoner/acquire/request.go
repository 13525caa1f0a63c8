package acquire

import (
	"context"
	"fmt"
	"net/http"
)

// buildRequest composes the target URL and headers for one call. It fails
// before anything is sent when no API key is configured.
func (c *Client) buildRequest(ctx context.Context, call Params) (*http.Request, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}

	target := c.URL(call)
	c.logger.Debugf("fetching %s", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: building request for %s: %w", c.spec.Sport, target, err)
	}
	req.Header.Set(headerHost, c.spec.Host)
	req.Header.Set(headerKey, c.apiKey)

	return req, nil
}

// URL returns the request URL for the given call parameters merged with
// the client defaults.
func (c *Client) URL(call Params) string {
	query := Merge(call, c.spec.Defaults).Encode()
	return fmt.Sprintf("%s://%s/%s?%s", c.scheme, c.spec.Host, c.spec.Path, query)
}
