package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	stdhtml "html"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/boardlens/boardlens/internal/core"
)

const (
	preloadMarker  = "GEEK.geekitemPreload = "
	settingsMarker = "GEEK.geekitemSettings = "
)

// geekPreload mirrors the slice of the embedded item JSON the record needs.
// Numeric fields arrive as either strings or numbers depending on the page
// build, so they decode as any.
type geekPreload struct {
	Item struct {
		ObjectID      any `json:"objectid"`
		YearPublished any `json:"yearpublished"`
		MinPlayers    any `json:"minplayers"`
		MaxPlayers    any `json:"maxplayers"`
		MinPlayTime   any `json:"minplaytime"`
		MaxPlayTime   any `json:"maxplaytime"`
		MinAge        any `json:"minage"`
		Stats         struct {
			AvgWeight  any `json:"avgweight"`
			UsersRated any `json:"usersrated"`
			Average    any `json:"average"`
		} `json:"stats"`
		RankInfo []struct {
			Rank any `json:"rank"`
		} `json:"rankinfo"`
		Links json.RawMessage `json:"links"`
	} `json:"item"`
}

type ldItem struct {
	Name        string `json:"name"`
	Image       any    `json:"image"`
	Description string `json:"description"`
}

// Detail scrapes an item page into a record. searchName is the display name
// recovered from the search results; it is used when the page itself does
// not expose one. A nil record with a nil error means the page's embedded
// JSON was missing or unreadable.
func (c *Client) Detail(ctx context.Context, pageURL, searchName string) (*core.GameRecord, error) {
	body, err := c.fetch(ctx, pageURL, c.detailTimeout())
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse item page: %w", err)
	}

	preload, ld := extractScripts(doc)
	if preload == nil {
		c.logWarn("item page preload block missing", zap.String("url", pageURL))
		return nil, nil
	}

	item := preload.Item
	rec := &core.GameRecord{
		CatalogID:     asString(item.ObjectID, ""),
		Name:          searchName,
		Year:          asString(item.YearPublished, "?"),
		MinPlayers:    asString(item.MinPlayers, "?"),
		MaxPlayers:    asString(item.MaxPlayers, "?"),
		MinTime:       asString(item.MinPlayTime, "?"),
		MaxTime:       asString(item.MaxPlayTime, "?"),
		MinAge:        asString(item.MinAge, "?"),
		UsersRated:    asString(item.Stats.UsersRated, "0"),
		AverageRating: asString(item.Stats.Average, "0"),
		AvgWeight:     formatWeight(item.Stats.AvgWeight),
		OverallRank:   "N/A",
		StrategyRank:  "N/A",
		CatalogURL:    pageURL,
	}

	if len(item.RankInfo) > 0 {
		rec.OverallRank = asString(item.RankInfo[0].Rank, "N/A")
	}
	if len(item.RankInfo) > 1 {
		rec.StrategyRank = asString(item.RankInfo[1].Rank, "N/A")
	}
	rec.Categories, rec.Mechanics = parseLinks(item.Links)

	if ld != nil {
		if ld.Name != "" {
			rec.Name = ld.Name
		}
		rec.ImageURL = asString(ld.Image, "")
		rec.Description = stdhtml.UnescapeString(ld.Description)
	}

	return rec, nil
}

// extractScripts pulls the geekitemPreload JSON and the ld+json block out of
// the page's script elements.
func extractScripts(doc *html.Node) (*geekPreload, *ldItem) {
	var preload *geekPreload
	var ld *ldItem

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			text := nodeText(n)
			if preload == nil {
				preload = parsePreload(text)
			}
			if ld == nil && scriptType(n) == "application/ld+json" {
				var parsed ldItem
				if err := json.Unmarshal([]byte(text), &parsed); err == nil {
					ld = &parsed
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return preload, ld
}

// parsePreload cuts the JSON literal between the preload assignment and the
// settings assignment that follows it. The slice ends three bytes before the
// settings marker to drop the closing ";\n" of the preload statement.
func parsePreload(text string) *geekPreload {
	start := strings.Index(text, preloadMarker)
	end := strings.Index(text, settingsMarker)
	if start < 0 || end < 0 {
		return nil
	}
	start += len(preloadMarker)
	end -= 3
	if end <= start {
		return nil
	}

	var parsed geekPreload
	if err := json.Unmarshal([]byte(text[start:end]), &parsed); err != nil {
		return nil
	}
	return &parsed
}

// parseLinks reads the item's link entries. Pages ship links either as a
// flat list of typed entries or as an object keyed by link type; both yield
// the category and mechanic names, and any other shape is ignored so a
// links mismatch never voids the record.
func parseLinks(raw json.RawMessage) (categories, mechanics []string) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, link := range list {
			switch link.Type {
			case "boardgamecategory":
				categories = append(categories, link.Name)
			case "boardgamemechanic":
				mechanics = append(mechanics, link.Name)
			}
		}
		return categories, mechanics
	}

	var grouped struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"boardgamecategory"`
		Mechanics []struct {
			Name string `json:"name"`
		} `json:"boardgamemechanic"`
	}
	if err := json.Unmarshal(raw, &grouped); err != nil {
		return nil, nil
	}
	for _, link := range grouped.Categories {
		categories = append(categories, link.Name)
	}
	for _, link := range grouped.Mechanics {
		mechanics = append(mechanics, link.Name)
	}
	return categories, mechanics
}

func scriptType(n *html.Node) string {
	for _, attr := range n.Attr {
		if attr.Key == "type" {
			return attr.Val
		}
	}
	return ""
}

// asString renders a decoded JSON scalar, falling back to def for anything
// absent or non-scalar.
func asString(v any, def string) string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return def
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		return def
	}
}

// formatWeight renders the complexity weight with two decimals, or "N/A"
// when the value is not numeric.
func formatWeight(v any) string {
	switch val := v.(type) {
	case string:
		w, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return "N/A"
		}
		return fmt.Sprintf("%.2f", w)
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return "N/A"
	}
}
