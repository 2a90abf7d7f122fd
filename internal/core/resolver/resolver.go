// Package resolver runs the full resolution pipeline: candidate extraction,
// the structured catalog pass, then the scraping fallback.
package resolver

import (
	"context"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boardlens/boardlens/internal/core"
)

// CandidateExtractor produces English-name candidates for a Chinese query.
type CandidateExtractor interface {
	Extract(ctx context.Context, query string) ([]core.Candidate, string, error)
}

// StructuredClient is the structured catalog API. Both methods report
// "nothing found" as zero values with a nil error.
type StructuredClient interface {
	SearchByName(ctx context.Context, query string) (string, error)
	Detail(ctx context.Context, id string) (*core.GameRecord, error)
}

// ScrapeClient is the HTML fallback.
type ScrapeClient interface {
	Search(ctx context.Context, query string) (*core.SearchHit, error)
	Detail(ctx context.Context, pageURL, searchName string) (*core.GameRecord, error)
}

// Resolver wires the pipeline stages together.
type Resolver struct {
	Extractor CandidateExtractor
	Catalog   StructuredClient
	Scraper   ScrapeClient

	// Clock returns the current time (tests override it).
	Clock func() time.Time

	Logger *logging.Logger
}

func (r *Resolver) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now().UTC()
}

// Resolve runs the pipeline for one query. It always returns a resolution;
// every stage failure degrades to the next stage or to a weaker outcome.
// Scraping never starts while any candidate has not been tried against the
// structured API.
func (r *Resolver) Resolve(ctx context.Context, query string) *core.Resolution {
	prov := core.Provenance{
		ResolutionID: uuid.NewString(),
		RequestedAt:  r.now(),
		NameSource:   core.NameSourceSearchAI,
		DataSource:   core.DataSourceNone,
	}

	candidates, cnName, err := r.Extractor.Extract(ctx, query)
	if err != nil {
		r.logWarn("candidate extraction failed", zap.String("query", query), zap.Error(err))
		return &core.Resolution{Query: query, Outcome: core.OutcomeNone}
	}
	if len(candidates) == 0 {
		return &core.Resolution{Query: query, Outcome: core.OutcomeNone}
	}
	if candidates[0].FromAlias {
		prov.NameSource = core.NameSourceDictionary
	}

	if res := r.resolveStructured(ctx, query, candidates, cnName, prov); res != nil {
		return res
	}
	return r.resolveScraped(ctx, query, candidates, cnName, prov)
}

// resolveStructured tries every candidate against the structured API in
// order and returns nil when none of them yields a record.
func (r *Resolver) resolveStructured(ctx context.Context, query string, candidates []core.Candidate, cnName string, prov core.Provenance) *core.Resolution {
	for _, cand := range candidates {
		id, err := r.Catalog.SearchByName(ctx, cand.Name)
		if err != nil {
			r.logWarn("structured search failed", zap.String("candidate", cand.Name), zap.Error(err))
			continue
		}
		if id == "" {
			continue
		}

		rec, err := r.Catalog.Detail(ctx, id)
		if err != nil {
			r.logWarn("structured detail failed", zap.String("id", id), zap.Error(err))
			continue
		}
		if rec == nil {
			continue
		}

		prov.NameSource = nameSource(cand)
		prov.DataSource = core.DataSourceStructuredAPI
		prov.FinalQuery = cand.Name
		prov.ResolvedAt = r.now()
		rec.CNName = cnName
		rec.Provenance = prov

		r.logDebug("resolved via structured api",
			zap.String("query", query),
			zap.String("candidate", cand.Name),
			zap.String("id", id))
		return &core.Resolution{Query: query, Outcome: core.OutcomeSuccess, Game: rec}
	}
	return nil
}

// resolveScraped runs the HTML fallback and produces the terminal outcome.
func (r *Resolver) resolveScraped(ctx context.Context, query string, candidates []core.Candidate, cnName string, prov core.Provenance) *core.Resolution {
	var hit *core.SearchHit
	for _, cand := range candidates {
		found, err := r.Scraper.Search(ctx, cand.Name)
		if err != nil {
			r.logWarn("scrape search failed", zap.String("candidate", cand.Name), zap.Error(err))
			continue
		}
		if found != nil {
			hit = found
			prov.NameSource = nameSource(cand)
			prov.FinalQuery = cand.Name
			break
		}
	}

	if hit == nil {
		prov.ResolvedAt = r.now()
		return &core.Resolution{
			Query:   query,
			Outcome: core.OutcomeFailure,
			Failure: &core.FailureRecord{
				Name:       candidates[0].Name,
				CNName:     cnName,
				BGGFailed:  true,
				Provenance: prov,
			},
		}
	}

	rec, err := r.Scraper.Detail(ctx, hit.URL, hit.Name)
	if err != nil {
		r.logWarn("scrape detail failed", zap.String("url", hit.URL), zap.Error(err))
	}
	if rec == nil {
		prov.DataSource = core.DataSourceSearchHit
		prov.ResolvedAt = r.now()
		return &core.Resolution{
			Query:   query,
			Outcome: core.OutcomeFailure,
			Failure: &core.FailureRecord{
				Name:       hit.Name,
				CNName:     cnName,
				CatalogID:  hit.ID,
				CatalogURL: hit.URL,
				BGGFailed:  true,
				Provenance: prov,
			},
		}
	}

	prov.DataSource = core.DataSourceScrapedPage
	prov.ResolvedAt = r.now()
	rec.CNName = cnName
	rec.Provenance = prov

	r.logDebug("resolved via scraping",
		zap.String("query", query),
		zap.String("url", hit.URL))
	return &core.Resolution{Query: query, Outcome: core.OutcomeSuccess, Game: rec}
}

func nameSource(cand core.Candidate) core.NameSource {
	if cand.FromAlias {
		return core.NameSourceDictionary
	}
	return core.NameSourceSearchAI
}

func (r *Resolver) logDebug(msg string, fields ...zap.Field) {
	if r.Logger != nil {
		r.Logger.Debug(msg, fields...)
	}
}

func (r *Resolver) logWarn(msg string, fields ...zap.Field) {
	if r.Logger != nil {
		r.Logger.Warn(msg, fields...)
	}
}
