// Package extract turns a Chinese game name into ordered English-name
// candidates, via the alias dictionary or via web search plus a language
// model.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/boardlens/boardlens/internal/ailink"
	"github.com/boardlens/boardlens/internal/core"
	"github.com/boardlens/boardlens/internal/websearch"
)

// ErrNoCandidates reports that extraction produced no usable English name.
var ErrNoCandidates = errors.New("no usable candidates extracted")

// DefaultModelKey is the preferred model registry key for extraction.
const DefaultModelKey = "utils"

const (
	defaultRegion     = "zh-cn"
	defaultMaxResults = 20
	snippetLimit      = 200
)

// stopwords are generic hobby terms a model tends to emit instead of a
// title. Matched case-insensitively against the whole candidate.
var stopwords = map[string]bool{
	"tabletop game": true,
	"board game":    true,
	"boardgame":     true,
	"card game":     true,
	"dice game":     true,
	"party game":    true,
	"strategy game": true,
	"family game":   true,
	"game":          true,
	"tabletop":      true,
}

// AliasLookup is the alias-dictionary dependency.
type AliasLookup interface {
	Lookup(name string) ([]string, error)
}

// Generator is the completion dependency.
type Generator interface {
	Generate(ctx context.Context, req ailink.GenerateRequest) (*ailink.GenerateResult, error)
}

// Extractor produces name candidates. Aliases short-circuit everything
// else; only when the dictionary has no entry do search and model run.
type Extractor struct {
	Aliases AliasLookup
	Search  websearch.Provider
	Models  Generator

	// ExtractPrompt is the prompt header the search results are appended to.
	ExtractPrompt string

	// ModelKey is the preferred registry key (defaults to "utils").
	ModelKey string

	// Region is the search region code (defaults to "zh-cn").
	Region string

	// MaxResults caps search results fed to the model (defaults to 20).
	MaxResults int

	Logger *logging.Logger
}

// Extract returns candidates in confidence order plus the canonical Chinese
// name. Alias hits come back marked FromAlias with the query as the Chinese
// name. Failures anywhere in the search-and-extract path are returned as
// errors; callers decide how to degrade.
func (e *Extractor) Extract(ctx context.Context, query string) ([]core.Candidate, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", errors.New("empty query")
	}

	if e.Aliases != nil {
		names, err := e.Aliases.Lookup(query)
		if err != nil {
			e.logWarn("alias lookup failed", zap.String("query", query), zap.Error(err))
		}
		if len(names) > 0 {
			candidates := make([]core.Candidate, 0, len(names))
			for _, name := range names {
				candidates = append(candidates, core.Candidate{Name: name, FromAlias: true})
			}
			return candidates, query, nil
		}
	}

	region := e.Region
	if region == "" {
		region = defaultRegion
	}
	maxResults := e.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	searchQuery := query + " 桌游的英文名是什么"
	results, err := e.Search.Search(ctx, searchQuery, region, maxResults)
	if err != nil {
		return nil, "", fmt.Errorf("web search: %w", err)
	}
	if len(results) == 0 {
		return nil, "", fmt.Errorf("web search for %q: %w", query, ErrNoCandidates)
	}

	res, err := e.Models.Generate(ctx, ailink.GenerateRequest{
		Prompt:   e.buildPrompt(results),
		ModelKey: e.modelKey(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("name extraction: %w", err)
	}

	candidates, cnName := parseCompletion(res.Text)
	if cnName == "" {
		cnName = query
	}
	if len(candidates) == 0 {
		return nil, "", fmt.Errorf("extraction for %q: %w", query, ErrNoCandidates)
	}

	e.logDebug("extracted candidates",
		zap.String("query", query),
		zap.String("cn_name", cnName),
		zap.Int("count", len(candidates)),
		zap.String("model", res.Key))
	return candidates, cnName, nil
}

func (e *Extractor) modelKey() string {
	if e.ModelKey != "" {
		return e.ModelKey
	}
	return DefaultModelKey
}

func (e *Extractor) buildPrompt(results []websearch.Result) string {
	var b strings.Builder
	b.WriteString(e.ExtractPrompt)
	for i, r := range results {
		body := r.Body
		if utf8.RuneCountInString(body) > snippetLimit {
			body = string([]rune(body)[:snippetLimit])
		}
		fmt.Fprintf(&b, "结果 %d:\n标题：%s\n摘要：%s\n\n", i+1, r.Title, body)
	}
	return b.String()
}

// parseCompletion reads only the 中文名/英文名 lines of the model output.
// English names are pipe-separated; unusable ones are filtered and the
// survivors deduplicated by exact name in order. Casing variants stay
// separate because the catalog search treats them as distinct queries.
func parseCompletion(text string) ([]core.Candidate, string) {
	var candidates []core.Candidate
	cnName := ""
	seen := map[string]bool{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "中文名："), strings.HasPrefix(line, "中文名:"):
			cnName = strings.TrimSpace(trimLabel(line, "中文名"))
		case strings.HasPrefix(line, "英文名："), strings.HasPrefix(line, "英文名:"):
			for _, part := range strings.Split(trimLabel(line, "英文名"), "|") {
				name := strings.TrimSpace(part)
				if !usableCandidate(name) {
					continue
				}
				if seen[name] {
					continue
				}
				seen[name] = true
				candidates = append(candidates, core.Candidate{Name: name})
			}
		}
	}
	return candidates, cnName
}

func trimLabel(line, label string) string {
	line = strings.TrimPrefix(line, label)
	line = strings.TrimPrefix(line, "：")
	return strings.TrimPrefix(line, ":")
}

func usableCandidate(name string) bool {
	if utf8.RuneCountInString(name) < 3 {
		return false
	}
	lower := strings.ToLower(name)
	if stopwords[lower] {
		return false
	}
	if strings.HasPrefix(lower, "http") {
		return false
	}
	return true
}

func (e *Extractor) logDebug(msg string, fields ...zap.Field) {
	if e.Logger != nil {
		e.Logger.Debug(msg, fields...)
	}
}

func (e *Extractor) logWarn(msg string, fields ...zap.Field) {
	if e.Logger != nil {
		e.Logger.Warn(msg, fields...)
	}
}
