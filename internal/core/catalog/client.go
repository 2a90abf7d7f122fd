// Package catalog implements the structured catalog client: XML search
// across two API generations, title scoring and ranked detail probing.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"
)

const (
	// DefaultSearchURL is the current-generation XML search endpoint.
	DefaultSearchURL = "https://boardgamegeek.com/xmlapi2/search"
	// DefaultLegacySearchURL is the first-generation XML search endpoint,
	// tried when the current one yields nothing.
	DefaultLegacySearchURL = "https://boardgamegeek.com/xmlapi/search"
	// DefaultThingURL is the item detail endpoint.
	DefaultThingURL = "https://boardgamegeek.com/xmlapi2/thing"
	// DefaultBaseURL is the public site base used to build item page URLs.
	DefaultBaseURL = "https://boardgamegeek.com"

	// DefaultAPIToken is the shared public token accepted by the XML API.
	DefaultAPIToken = "a45425e8-aee4-42f2-9111-2190723fbb2b"

	DefaultUserAgent = "boardlens/1.0"

	defaultSearchTimeout = 15 * time.Second
	defaultDetailTimeout = 20 * time.Second

	maxResponseSize = 4 << 20
)

// Client queries the structured catalog API. The zero value is usable;
// exported fields exist so tests can point the client at stub servers.
type Client struct {
	// HTTPClient is the HTTP client to use (defaults to http.DefaultClient).
	HTTPClient *http.Client

	// SearchURL overrides the current-generation search endpoint.
	SearchURL string

	// LegacySearchURL overrides the legacy search endpoint.
	LegacySearchURL string

	// ThingURL overrides the detail endpoint.
	ThingURL string

	// BaseURL overrides the site base for item page URLs.
	BaseURL string

	// Token is the bearer token sent with every request.
	Token string

	// UserAgent overrides the User-Agent header.
	UserAgent string

	// SearchTimeout bounds a single search request.
	SearchTimeout time.Duration

	// DetailTimeout bounds a single detail request.
	DetailTimeout time.Duration

	// Logger receives non-fatal transport and parse diagnostics. Nil is fine.
	Logger *logging.Logger
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) searchURL() string {
	if c.SearchURL != "" {
		return c.SearchURL
	}
	return DefaultSearchURL
}

func (c *Client) legacySearchURL() string {
	if c.LegacySearchURL != "" {
		return c.LegacySearchURL
	}
	return DefaultLegacySearchURL
}

func (c *Client) thingURL() string {
	if c.ThingURL != "" {
		return c.ThingURL
	}
	return DefaultThingURL
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

func (c *Client) token() string {
	if c.Token != "" {
		return c.Token
	}
	return DefaultAPIToken
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

func (c *Client) searchTimeout() time.Duration {
	if c.SearchTimeout > 0 {
		return c.SearchTimeout
	}
	return defaultSearchTimeout
}

func (c *Client) detailTimeout() time.Duration {
	if c.DetailTimeout > 0 {
		return c.DetailTimeout
	}
	return defaultDetailTimeout
}

// get performs one bounded GET against the API and returns the body on 200.
// Any other status, and any transport failure, comes back as an error.
func (c *Client) get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("Authorization", "Bearer "+c.token())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (c *Client) logDebug(msg string, fields ...zap.Field) {
	if c.Logger != nil {
		c.Logger.Debug(msg, fields...)
	}
}

func (c *Client) logWarn(msg string, fields ...zap.Field) {
	if c.Logger != nil {
		c.Logger.Warn(msg, fields...)
	}
}
