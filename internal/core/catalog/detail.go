package catalog

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/boardlens/boardlens/internal/core"
)

type valueAttr struct {
	Value string `xml:"value,attr"`
}

type thingItems struct {
	XMLName xml.Name    `xml:"items"`
	Items   []thingItem `xml:"item"`
}

type thingItem struct {
	Type  string `xml:"type,attr"`
	ID    string `xml:"id,attr"`
	Names []struct {
		Type  string `xml:"type,attr"`
		Value string `xml:"value,attr"`
	} `xml:"name"`
	YearPublished valueAttr `xml:"yearpublished"`
	Description   string    `xml:"description"`
	Image         string    `xml:"image"`
	MinPlayers    valueAttr `xml:"minplayers"`
	MaxPlayers    valueAttr `xml:"maxplayers"`
	MinPlayTime   valueAttr `xml:"minplaytime"`
	MaxPlayTime   valueAttr `xml:"maxplaytime"`
	MinAge        valueAttr `xml:"minage"`
	Links         []struct {
		Type  string `xml:"type,attr"`
		Value string `xml:"value,attr"`
	} `xml:"link"`
	Polls      []thingPoll `xml:"poll"`
	Statistics struct {
		Ratings struct {
			UsersRated    valueAttr `xml:"usersrated"`
			Average       valueAttr `xml:"average"`
			AverageWeight valueAttr `xml:"averageweight"`
			Ranks         struct {
				Ranks []struct {
					Name  string `xml:"name,attr"`
					Value string `xml:"value,attr"`
				} `xml:"rank"`
			} `xml:"ranks"`
		} `xml:"ratings"`
	} `xml:"statistics"`
}

type thingPoll struct {
	Name    string `xml:"name,attr"`
	Results []struct {
		NumPlayers string `xml:"numplayers,attr"`
		Result     []struct {
			Value    string `xml:"value,attr"`
			Level    string `xml:"level,attr"`
			NumVotes string `xml:"numvotes,attr"`
		} `xml:"result"`
	} `xml:"results"`
}

// languageLevels maps the language-dependence poll level to its Chinese label.
var languageLevels = map[string]string{
	"1": "无需阅读",
	"2": "轻微依赖",
	"3": "中度依赖",
	"4": "高度依赖",
	"5": "极度依赖",
}

// Detail fetches the full record for a catalog id, with community stats.
// A nil record with a nil error means the id has no usable detail; transport
// and parse failures are logged and reported the same way.
func (c *Client) Detail(ctx context.Context, id string) (*core.GameRecord, error) {
	params := url.Values{}
	params.Set("id", id)
	params.Set("stats", "1")

	body, err := c.get(ctx, c.thingURL()+"?"+params.Encode(), c.detailTimeout())
	if err != nil {
		c.logWarn("catalog detail fetch failed", zap.String("id", id), zap.Error(err))
		return nil, nil
	}

	var parsed thingItems
	if err := xml.Unmarshal(body, &parsed); err != nil {
		c.logWarn("catalog detail parse failed", zap.String("id", id), zap.Error(err))
		return nil, nil
	}
	if len(parsed.Items) == 0 {
		c.logDebug("catalog detail empty", zap.String("id", id))
		return nil, nil
	}

	item := parsed.Items[0]
	rec := &core.GameRecord{
		CatalogID:          id,
		Name:               primaryName(item),
		Year:               orSentinel(item.YearPublished.Value, "?"),
		Description:        html.UnescapeString(item.Description),
		ImageURL:           item.Image,
		MinPlayers:         orSentinel(item.MinPlayers.Value, "?"),
		MaxPlayers:         orSentinel(item.MaxPlayers.Value, "?"),
		MinTime:            orSentinel(item.MinPlayTime.Value, "?"),
		MaxTime:            orSentinel(item.MaxPlayTime.Value, "?"),
		MinAge:             orSentinel(item.MinAge.Value, "?"),
		UsersRated:         orSentinel(item.Statistics.Ratings.UsersRated.Value, "?"),
		AverageRating:      orSentinel(item.Statistics.Ratings.Average.Value, "?"),
		AvgWeight:          formatWeight(item.Statistics.Ratings.AverageWeight.Value),
		OverallRank:        "N/A",
		StrategyRank:       "N/A",
		CatalogURL:         c.baseURL() + "/boardgame/" + id,
		BestPlayerCount:    bestPlayerCount(item.Polls),
		LanguageDependence: languageDependence(item.Polls),
	}

	for _, link := range item.Links {
		switch link.Type {
		case "boardgamecategory":
			rec.Categories = append(rec.Categories, link.Value)
		case "boardgamemechanic":
			rec.Mechanics = append(rec.Mechanics, link.Value)
		}
	}

	for _, rank := range item.Statistics.Ratings.Ranks.Ranks {
		switch rank.Name {
		case "boardgame":
			rec.OverallRank = orSentinel(rank.Value, "N/A")
		case "strategygames":
			rec.StrategyRank = orSentinel(rank.Value, "N/A")
		}
	}

	return rec, nil
}

func primaryName(item thingItem) string {
	for _, n := range item.Names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(item.Names) > 0 {
		return item.Names[0].Value
	}
	return ""
}

func orSentinel(value, sentinel string) string {
	if value == "" || value == "Not Ranked" {
		return sentinel
	}
	return value
}

// formatWeight renders the average complexity weight with two decimals,
// or "N/A" when the value is not a number.
func formatWeight(value string) string {
	w, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", w)
}

// bestPlayerCount picks the player count whose "Best" vote total is highest
// in the suggested-player-count poll. Empty when the poll is absent or
// nothing has votes.
func bestPlayerCount(polls []thingPoll) string {
	best := ""
	bestVotes := 0
	for _, poll := range polls {
		if poll.Name != "suggested_numplayers" {
			continue
		}
		for _, results := range poll.Results {
			for _, result := range results.Result {
				if result.Value != "Best" {
					continue
				}
				votes, err := strconv.Atoi(result.NumVotes)
				if err != nil {
					continue
				}
				if votes > bestVotes {
					bestVotes = votes
					best = results.NumPlayers
				}
			}
		}
	}
	return best
}

// languageDependence renders the first language-dependence poll entry as
// "value（label）". The poll lists levels in ascending order and the first
// entry is the reported one. Empty when the poll is absent.
func languageDependence(polls []thingPoll) string {
	for _, poll := range polls {
		if poll.Name != "language_dependence" {
			continue
		}
		for _, results := range poll.Results {
			for _, result := range results.Result {
				if result.Value == "" {
					return ""
				}
				if label, ok := languageLevels[result.Level]; ok {
					return fmt.Sprintf("%s（%s）", result.Value, label)
				}
				return result.Value
			}
		}
		return ""
	}
	return ""
}
