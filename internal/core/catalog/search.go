package catalog

import (
	"context"
	"encoding/xml"
	"net/url"

	"go.uber.org/zap"

	"github.com/boardlens/boardlens/internal/core"
)

type searchItemsV2 struct {
	XMLName xml.Name `xml:"items"`
	Items   []struct {
		Type  string `xml:"type,attr"`
		ID    string `xml:"id,attr"`
		Names []struct {
			Type  string `xml:"type,attr"`
			Value string `xml:"value,attr"`
		} `xml:"name"`
	} `xml:"item"`
}

type searchItemsV1 struct {
	XMLName xml.Name `xml:"boardgames"`
	Games   []struct {
		ObjectID string `xml:"objectid,attr"`
		Names    []struct {
			Primary string `xml:"primary,attr"`
			Value   string `xml:",chardata"`
		} `xml:"name"`
	} `xml:"boardgame"`
}

// SearchByName resolves an English name to a catalog id. It searches the
// current API first and the legacy API only when the current one yields no
// usable candidate, scores and ranks each tier's results, then probes
// candidates in rank order until one of them has a fetchable detail page.
// An empty id with a nil error means the name is not in the catalog; all
// transport and parse failures are treated that way and logged.
func (c *Client) SearchByName(ctx context.Context, query string) (string, error) {
	if id := c.probe(ctx, c.searchPrimary(ctx, query), query); id != "" {
		return id, nil
	}
	return c.probe(ctx, c.searchLegacy(ctx, query), query), nil
}

// probe tries ranked candidates in order and returns the first id whose
// detail fetch produces a record.
func (c *Client) probe(ctx context.Context, candidates []core.ScoredCandidate, query string) string {
	Rank(candidates)
	for _, cand := range candidates {
		rec, err := c.Detail(ctx, cand.ID)
		if err != nil {
			c.logWarn("catalog detail probe failed",
				zap.String("id", cand.ID),
				zap.String("name", cand.Name),
				zap.Error(err))
			continue
		}
		if rec == nil {
			continue
		}
		c.logDebug("catalog candidate accepted",
			zap.String("query", query),
			zap.String("id", cand.ID),
			zap.String("name", cand.Name),
			zap.Int("score", cand.Score),
			zap.String("tier", string(cand.Source)))
		return cand.ID
	}
	return ""
}

func (c *Client) searchPrimary(ctx context.Context, query string) []core.ScoredCandidate {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "boardgame")

	body, err := c.get(ctx, c.searchURL()+"?"+params.Encode(), c.searchTimeout())
	if err != nil {
		c.logWarn("catalog search failed", zap.String("tier", "primary"), zap.Error(err))
		return nil
	}

	var parsed searchItemsV2
	if err := xml.Unmarshal(body, &parsed); err != nil {
		c.logWarn("catalog search parse failed", zap.String("tier", "primary"), zap.Error(err))
		return nil
	}

	var candidates []core.ScoredCandidate
	for _, item := range parsed.Items {
		if item.Type != "boardgame" || item.ID == "" {
			continue
		}
		name := ""
		for _, n := range item.Names {
			if n.Type == "primary" {
				name = n.Value
				break
			}
		}
		if name == "" && len(item.Names) > 0 {
			name = item.Names[0].Value
		}
		if name == "" {
			continue
		}
		candidates = append(candidates, core.ScoredCandidate{
			ID:     item.ID,
			Name:   name,
			Score:  Score(name, query),
			Source: core.SearchSourcePrimary,
		})
	}
	return candidates
}

func (c *Client) searchLegacy(ctx context.Context, query string) []core.ScoredCandidate {
	params := url.Values{}
	params.Set("search", query)

	body, err := c.get(ctx, c.legacySearchURL()+"?"+params.Encode(), c.searchTimeout())
	if err != nil {
		c.logWarn("catalog search failed", zap.String("tier", "legacy"), zap.Error(err))
		return nil
	}

	var parsed searchItemsV1
	if err := xml.Unmarshal(body, &parsed); err != nil {
		c.logWarn("catalog search parse failed", zap.String("tier", "legacy"), zap.Error(err))
		return nil
	}

	var candidates []core.ScoredCandidate
	for _, game := range parsed.Games {
		if game.ObjectID == "" {
			continue
		}
		name := ""
		for _, n := range game.Names {
			if n.Primary == "true" {
				name = n.Value
				break
			}
		}
		if name == "" && len(game.Names) > 0 {
			name = game.Names[0].Value
		}
		if name == "" {
			continue
		}
		candidates = append(candidates, core.ScoredCandidate{
			ID:     game.ObjectID,
			Name:   name,
			Score:  Score(name, query),
			Source: core.SearchSourceLegacy,
		})
	}
	return candidates
}
