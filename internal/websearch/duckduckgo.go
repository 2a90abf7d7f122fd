package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	// DefaultDuckDuckGoURL is the no-JS HTML results endpoint.
	DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

	defaultDuckDuckGoTimeout = 15 * time.Second

	maxSearchPageSize = 4 << 20
)

// DuckDuckGo queries the DuckDuckGo HTML endpoint. Exported fields exist
// for test injection; the zero value targets the live endpoint.
type DuckDuckGo struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
}

var _ Provider = (*DuckDuckGo)(nil)

// Search fetches one results page and pairs each result link's title with
// the snippet that follows it in document order.
func (d *DuckDuckGo) Search(ctx context.Context, query, region string, maxResults int) ([]Result, error) {
	base := d.BaseURL
	if base == "" {
		base = DefaultDuckDuckGoURL
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultDuckDuckGoTimeout
	}

	params := url.Values{}
	params.Set("q", query)
	if region != "" {
		params.Set("kl", region)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	} else {
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; boardlens/1.0)")
	}

	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected search status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchPageSize))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	results := parseResults(doc)
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// parseResults collects result__a titles and result__snippet bodies in
// document order. A snippet attaches to the most recent title without one.
func parseResults(doc *html.Node) []Result {
	var results []Result

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "a" && hasClass(n, "result__a"):
				title := strings.TrimSpace(elementText(n))
				if title != "" {
					results = append(results, Result{Title: title})
				}
			case hasClass(n, "result__snippet"):
				body := strings.TrimSpace(elementText(n))
				if body != "" && len(results) > 0 && results[len(results)-1].Body == "" {
					results[len(results)-1].Body = body
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return results
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func elementText(n *html.Node) string {
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
