package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/boardlens/boardlens/internal/core"
)

type stubExtractor struct {
	candidates []core.Candidate
	cnName     string
	err        error
}

func (s *stubExtractor) Extract(ctx context.Context, query string) ([]core.Candidate, string, error) {
	return s.candidates, s.cnName, s.err
}

// callTracker records the order of downstream calls so tests can assert
// the structured pass fully precedes any scraping.
type callTracker struct {
	calls []string
}

type stubCatalog struct {
	tracker *callTracker
	ids     map[string]string
	details map[string]*core.GameRecord
	err     error
}

func (s *stubCatalog) SearchByName(ctx context.Context, query string) (string, error) {
	if s.tracker != nil {
		s.tracker.calls = append(s.tracker.calls, "catalog.search:"+query)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.ids[query], nil
}

func (s *stubCatalog) Detail(ctx context.Context, id string) (*core.GameRecord, error) {
	if s.tracker != nil {
		s.tracker.calls = append(s.tracker.calls, "catalog.detail:"+id)
	}
	return s.details[id], nil
}

type stubScraper struct {
	tracker *callTracker
	hits    map[string]*core.SearchHit
	details map[string]*core.GameRecord
	err     error
}

func (s *stubScraper) Search(ctx context.Context, query string) (*core.SearchHit, error) {
	if s.tracker != nil {
		s.tracker.calls = append(s.tracker.calls, "scrape.search:"+query)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.hits[query], nil
}

func (s *stubScraper) Detail(ctx context.Context, pageURL, searchName string) (*core.GameRecord, error) {
	if s.tracker != nil {
		s.tracker.calls = append(s.tracker.calls, "scrape.detail:"+pageURL)
	}
	return s.details[pageURL], nil
}

var fixedTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newResolver(ex *stubExtractor, cat *stubCatalog, scr *stubScraper) *Resolver {
	return &Resolver{
		Extractor: ex,
		Catalog:   cat,
		Scraper:   scr,
		Clock:     func() time.Time { return fixedTime },
	}
}

func TestResolveStructuredSuccess(t *testing.T) {
	tracker := &callTracker{}
	res := newResolver(
		&stubExtractor{
			candidates: []core.Candidate{{Name: "Settlers"}, {Name: "Catan"}},
			cnName:     "卡坦岛",
		},
		&stubCatalog{
			tracker: tracker,
			ids:     map[string]string{"Catan": "13"},
			details: map[string]*core.GameRecord{"13": {CatalogID: "13", Name: "Catan"}},
		},
		&stubScraper{tracker: tracker},
	)

	out := res.Resolve(context.Background(), "卡坦岛")
	require.Equal(t, core.OutcomeSuccess, out.Outcome)
	require.NotNil(t, out.Game)
	require.Nil(t, out.Failure)

	require.Equal(t, "卡坦岛", out.Game.CNName)
	require.Equal(t, core.NameSourceSearchAI, out.Game.Provenance.NameSource)
	require.Equal(t, core.DataSourceStructuredAPI, out.Game.Provenance.DataSource)
	require.Equal(t, "Catan", out.Game.Provenance.FinalQuery)
	require.Equal(t, fixedTime, out.Game.Provenance.RequestedAt)
	require.Equal(t, fixedTime, out.Game.Provenance.ResolvedAt)
	require.NotEmpty(t, out.Game.Provenance.ResolutionID)

	// Both candidates were tried in order; no scraping happened.
	require.Equal(t, []string{"catalog.search:Settlers", "catalog.search:Catan", "catalog.detail:13"}, tracker.calls)
}

func TestResolveAliasCandidateMarksDictionary(t *testing.T) {
	res := newResolver(
		&stubExtractor{
			candidates: []core.Candidate{{Name: "Catan", FromAlias: true}},
			cnName:     "卡坦岛",
		},
		&stubCatalog{
			ids:     map[string]string{"Catan": "13"},
			details: map[string]*core.GameRecord{"13": {CatalogID: "13", Name: "Catan"}},
		},
		&stubScraper{},
	)

	out := res.Resolve(context.Background(), "卡坦岛")
	require.Equal(t, core.OutcomeSuccess, out.Outcome)
	require.Equal(t, core.NameSourceDictionary, out.Game.Provenance.NameSource)
	require.Equal(t, "dictionary→structured_api", out.Game.Provenance.Label())
}

func TestResolveScrapeFallbackAfterAllCandidates(t *testing.T) {
	tracker := &callTracker{}
	res := newResolver(
		&stubExtractor{
			candidates: []core.Candidate{{Name: "Settlers"}, {Name: "Catan"}},
			cnName:     "卡坦岛",
		},
		&stubCatalog{tracker: tracker},
		&stubScraper{
			tracker: tracker,
			hits: map[string]*core.SearchHit{
				"Catan": {ID: "13", Name: "Catan", URL: "https://example.test/boardgame/13/catan"},
			},
			details: map[string]*core.GameRecord{
				"https://example.test/boardgame/13/catan": {CatalogID: "13", Name: "Catan"},
			},
		},
	)

	out := res.Resolve(context.Background(), "卡坦岛")
	require.Equal(t, core.OutcomeSuccess, out.Outcome)
	require.Equal(t, core.DataSourceScrapedPage, out.Game.Provenance.DataSource)
	require.Equal(t, "Catan", out.Game.Provenance.FinalQuery)

	// Every candidate hits the structured API before any scrape call.
	require.Equal(t, []string{
		"catalog.search:Settlers",
		"catalog.search:Catan",
		"scrape.search:Settlers",
		"scrape.search:Catan",
		"scrape.detail:https://example.test/boardgame/13/catan",
	}, tracker.calls)
}

func TestResolveFailureWithoutAnyHit(t *testing.T) {
	res := newResolver(
		&stubExtractor{candidates: []core.Candidate{{Name: "Catan"}}, cnName: "卡坦岛"},
		&stubCatalog{},
		&stubScraper{},
	)

	out := res.Resolve(context.Background(), "卡坦岛")
	require.Equal(t, core.OutcomeFailure, out.Outcome)
	require.Nil(t, out.Game)
	require.NotNil(t, out.Failure)

	require.Equal(t, "Catan", out.Failure.Name)
	require.Equal(t, "卡坦岛", out.Failure.CNName)
	require.True(t, out.Failure.BGGFailed)
	require.Empty(t, out.Failure.CatalogID)
	require.Equal(t, core.DataSourceNone, out.Failure.Provenance.DataSource)
}

func TestResolveFailureWithSearchHitOnly(t *testing.T) {
	res := newResolver(
		&stubExtractor{candidates: []core.Candidate{{Name: "Catan"}}, cnName: "卡坦岛"},
		&stubCatalog{},
		&stubScraper{
			hits: map[string]*core.SearchHit{
				"Catan": {ID: "13", Name: "Catan", URL: "https://example.test/boardgame/13/catan"},
			},
			// No detail for the page: the hit is all we get.
		},
	)

	out := res.Resolve(context.Background(), "卡坦岛")
	require.Equal(t, core.OutcomeFailure, out.Outcome)
	require.Equal(t, "13", out.Failure.CatalogID)
	require.Equal(t, "https://example.test/boardgame/13/catan", out.Failure.CatalogURL)
	require.Equal(t, core.DataSourceSearchHit, out.Failure.Provenance.DataSource)
}

func TestResolveNoneOnExtractionFailure(t *testing.T) {
	res := newResolver(
		&stubExtractor{err: errors.New("search down")},
		&stubCatalog{},
		&stubScraper{},
	)

	out := res.Resolve(context.Background(), "卡坦岛")
	require.Equal(t, core.OutcomeNone, out.Outcome)
	require.Nil(t, out.Game)
	require.Nil(t, out.Failure)
	require.Equal(t, "卡坦岛", out.Query)
}

func TestResolveNoneOnZeroCandidates(t *testing.T) {
	res := newResolver(&stubExtractor{}, &stubCatalog{}, &stubScraper{})

	out := res.Resolve(context.Background(), "卡坦岛")
	require.Equal(t, core.OutcomeNone, out.Outcome)
}

func TestResolveStructuredErrorsDegradeToScrape(t *testing.T) {
	res := newResolver(
		&stubExtractor{candidates: []core.Candidate{{Name: "Catan"}}, cnName: "卡坦岛"},
		&stubCatalog{err: errors.New("api down")},
		&stubScraper{
			hits: map[string]*core.SearchHit{
				"Catan": {ID: "13", Name: "Catan", URL: "https://example.test/boardgame/13/catan"},
			},
			details: map[string]*core.GameRecord{
				"https://example.test/boardgame/13/catan": {CatalogID: "13", Name: "Catan"},
			},
		},
	)

	out := res.Resolve(context.Background(), "卡坦岛")
	require.Equal(t, core.OutcomeSuccess, out.Outcome)
	require.Equal(t, core.DataSourceScrapedPage, out.Game.Provenance.DataSource)
}

func TestResolveScrapeSearchErrorContinues(t *testing.T) {
	res := newResolver(
		&stubExtractor{candidates: []core.Candidate{{Name: "Settlers"}, {Name: "Catan"}}, cnName: "卡坦岛"},
		&stubCatalog{},
		&stubScraper{err: errors.New("blocked")},
	)

	out := res.Resolve(context.Background(), "卡坦岛")
	require.Equal(t, core.OutcomeFailure, out.Outcome)
	require.Equal(t, "Settlers", out.Failure.Name, "first candidate names the failure record")
}
