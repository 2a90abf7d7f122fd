// Package core defines the domain types shared across the resolution pipeline.
package core

import "time"

// NameSource identifies how English-name candidates were obtained.
type NameSource string

const (
	// NameSourceDictionary means the candidates came from the alias dictionary.
	NameSourceDictionary NameSource = "dictionary"
	// NameSourceSearchAI means the candidates were extracted from web search
	// results by a language model.
	NameSourceSearchAI NameSource = "search_ai"
)

// DataSource identifies which acquisition strategy produced the game data.
type DataSource string

const (
	// DataSourceStructuredAPI means the structured catalog API produced the record.
	DataSourceStructuredAPI DataSource = "structured_api"
	// DataSourceScrapedPage means the record was scraped from an item page.
	DataSourceScrapedPage DataSource = "scraped_page"
	// DataSourceSearchHit means only a search hit was found; the item page
	// could not be turned into a record.
	DataSourceSearchHit DataSource = "search_hit"
	// DataSourceNone means no strategy produced data.
	DataSourceNone DataSource = "none"
)

// SearchSource identifies which structured search tier produced a candidate.
type SearchSource string

const (
	SearchSourcePrimary SearchSource = "primary_api"
	SearchSourceLegacy  SearchSource = "legacy_api"
)

// Candidate is a hypothesized English name for the queried game.
type Candidate struct {
	Name      string `json:"name"`
	FromAlias bool   `json:"from_alias"`
}

// ScoredCandidate is a structured search result ranked by title score.
type ScoredCandidate struct {
	ID     string
	Name   string
	Score  int
	Source SearchSource
}

// SearchHit is a scrape-search result: the catalog id, the display name
// recovered from the results page, and the absolute item page URL.
type SearchHit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Provenance records which pipeline path produced a resolution.
type Provenance struct {
	ResolutionID string     `json:"resolution_id"`
	NameSource   NameSource `json:"name_source"`
	DataSource   DataSource `json:"data_source"`
	FinalQuery   string     `json:"final_query,omitempty"`
	RequestedAt  time.Time  `json:"requested_at"`
	ResolvedAt   time.Time  `json:"resolved_at"`
}

// Label returns the composite source description, e.g. "dictionary→structured_api".
func (p Provenance) Label() string {
	return string(p.NameSource) + "→" + string(p.DataSource)
}

// GameRecord is a fully resolved game. String attributes keep their upstream
// textual form; absent values carry the sentinels "?" (attributes), "N/A"
// (ranks, weight) or "" (polls) rather than being omitted.
type GameRecord struct {
	CatalogID          string     `json:"catalog_id"`
	Name               string     `json:"name"`
	CNName             string     `json:"cn_name"`
	Year               string     `json:"year"`
	Description        string     `json:"description"`
	MinPlayers         string     `json:"min_players"`
	MaxPlayers         string     `json:"max_players"`
	MinTime            string     `json:"min_time"`
	MaxTime            string     `json:"max_time"`
	MinAge             string     `json:"min_age"`
	UsersRated         string     `json:"users_rated"`
	AverageRating      string     `json:"average_rating"`
	AvgWeight          string     `json:"avg_weight"`
	OverallRank        string     `json:"overall_rank"`
	StrategyRank       string     `json:"strategy_rank"`
	ImageURL           string     `json:"image_url"`
	CatalogURL         string     `json:"catalog_url"`
	Categories         []string   `json:"categories"`
	Mechanics          []string   `json:"mechanics"`
	BestPlayerCount    string     `json:"best_player_count"`
	LanguageDependence string     `json:"language_dependence"`
	Provenance         Provenance `json:"provenance"`
}

// FailureRecord is a partial result: a name was found but no usable record
// could be built from any data source.
type FailureRecord struct {
	Name       string     `json:"name"`
	CNName     string     `json:"cn_name"`
	CatalogID  string     `json:"catalog_id,omitempty"`
	CatalogURL string     `json:"catalog_url,omitempty"`
	BGGFailed  bool       `json:"bgg_failed"`
	Provenance Provenance `json:"provenance"`
}

// Outcome is the terminal state of a resolution.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeNone    Outcome = "none"
)

// Resolution is the result of running the full pipeline for one query.
// Exactly one of Game and Failure is set for success and failure outcomes;
// both are nil for the none outcome.
type Resolution struct {
	Query   string         `json:"query"`
	Outcome Outcome        `json:"outcome"`
	Game    *GameRecord    `json:"game,omitempty"`
	Failure *FailureRecord `json:"failure,omitempty"`
}
