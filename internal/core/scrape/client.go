// Package scrape implements the HTML fallback: the public search page for
// locating an item and the item page's embedded JSON for building a record.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/boardlens/boardlens/internal/core"
)

const (
	// DefaultSearchURL is the public site search endpoint.
	DefaultSearchURL = "https://boardgamegeek.com/geeksearch.php"
	// DefaultBaseURL resolves relative item links.
	DefaultBaseURL = "https://boardgamegeek.com"

	DefaultUserAgent = "Mozilla/5.0 (compatible; boardlens/1.0)"

	defaultSearchTimeout = 15 * time.Second
	defaultDetailTimeout = 20 * time.Second

	maxPageSize = 8 << 20
)

// Client scrapes the public site. Exported fields exist for test injection;
// the zero value targets the live site.
type Client struct {
	HTTPClient    *http.Client
	SearchURL     string
	BaseURL       string
	UserAgent     string
	SearchTimeout time.Duration
	DetailTimeout time.Duration
	Logger        *logging.Logger
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

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
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

func (c *Client) fetch(ctx context.Context, pageURL string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// Search scans the site search results for the first board-game item link
// and returns its id, display name and absolute page URL. A nil hit with a
// nil error means no acceptable link appeared; fetch and parse failures are
// returned as errors for the caller to log.
func (c *Client) Search(ctx context.Context, query string) (*core.SearchHit, error) {
	params := url.Values{}
	params.Set("action", "search")
	params.Set("q", query)
	params.Set("objecttype", "boardgame")

	body, err := c.fetch(ctx, c.searchURL()+"?"+params.Encode(), c.searchTimeout())
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	hit := findItemAnchor(doc)
	if hit == nil {
		c.logDebug("scrape search found no item link", zap.String("query", query))
		return nil, nil
	}
	if strings.HasPrefix(hit.URL, "/") {
		hit.URL = c.baseURL() + hit.URL
	}
	return hit, nil
}

// findItemAnchor walks the document for the first anchor that links to a
// base-game page with a numeric id. Expansion links are skipped.
func findItemAnchor(n *html.Node) *core.SearchHit {
	if n.Type == html.ElementNode && n.Data == "a" {
		if hit := anchorToHit(n); hit != nil {
			return hit
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if hit := findItemAnchor(child); hit != nil {
			return hit
		}
	}
	return nil
}

func anchorToHit(n *html.Node) *core.SearchHit {
	href := ""
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = attr.Val
			break
		}
	}
	if !strings.Contains(href, "/boardgame/") || strings.Contains(href, "/boardgameexpansion/") {
		return nil
	}

	path := href
	if u, err := url.Parse(href); err == nil {
		path = u.Path
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] != "boardgame" || !isDigits(parts[1]) {
		return nil
	}

	name := strings.TrimSpace(nodeText(n))
	if name == "" && len(parts) > 2 {
		name = titleFromSlug(parts[2])
	}
	if name == "" {
		return nil
	}

	return &core.SearchHit{ID: parts[1], Name: name, URL: href}
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// titleFromSlug turns a URL slug like "ark-nova" into "Ark Nova".
func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
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
