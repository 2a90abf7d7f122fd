package cmd

import (
	"context"
	"fmt"

	"github.com/fulmenhq/gofulmen/logging"

	"github.com/boardlens/boardlens/internal/ailink"
	"github.com/boardlens/boardlens/internal/ailink/prompt"
	"github.com/boardlens/boardlens/internal/config"
	"github.com/boardlens/boardlens/internal/core/alias"
	"github.com/boardlens/boardlens/internal/core/catalog"
	"github.com/boardlens/boardlens/internal/core/extract"
	"github.com/boardlens/boardlens/internal/core/resolver"
	"github.com/boardlens/boardlens/internal/core/scrape"
	"github.com/boardlens/boardlens/internal/core/store"
	"github.com/boardlens/boardlens/internal/core/terms"
	"github.com/boardlens/boardlens/internal/core/translate"
	"github.com/boardlens/boardlens/internal/websearch"
)

// buildResolver wires the full pipeline from config.
func buildResolver(cfg *config.Config, logger *logging.Logger) (*resolver.Resolver, error) {
	prompts, err := prompt.Load(cfg.Prompts.Path)
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	models := ailink.NewService(cfg.AILink, logger)

	extractor := &extract.Extractor{
		Aliases:       &alias.Dictionary{Path: cfg.Alias.Path},
		Search:        &websearch.DuckDuckGo{},
		Models:        models,
		ExtractPrompt: prompts.Extract,
		Region:        cfg.Search.Region,
		MaxResults:    cfg.Search.MaxResults,
		Logger:        logger,
	}

	cat := &catalog.Client{
		Token:         cfg.Catalog.APIToken,
		UserAgent:     cfg.Catalog.UserAgent,
		SearchTimeout: cfg.Catalog.SearchTimeout,
		DetailTimeout: cfg.Catalog.DetailTimeout,
		Logger:        logger,
	}

	scraper := &scrape.Client{
		SearchTimeout: cfg.Catalog.SearchTimeout,
		DetailTimeout: cfg.Catalog.DetailTimeout,
		Logger:        logger,
	}

	return &resolver.Resolver{
		Extractor: extractor,
		Catalog:   cat,
		Scraper:   scraper,
		Logger:    logger,
	}, nil
}

// buildTranslator wires the display translator. With AI translation
// disabled the translator only applies the terms dictionary.
func buildTranslator(cfg *config.Config, logger *logging.Logger) (*translate.Translator, error) {
	prompts, err := prompt.Load(cfg.Prompts.Path)
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	termMap, err := terms.Load(cfg.Terms.Path)
	if err != nil {
		return nil, fmt.Errorf("load terms: %w", err)
	}

	t := &translate.Translator{
		Terms:    termMap,
		Template: prompts.Translate,
		ModelKey: cfg.Translate.ModelKey,
		Logger:   logger,
	}
	if cfg.Translate.Enabled {
		t.Models = ailink.NewService(cfg.AILink, logger)
	}
	return t, nil
}

// openStore opens and migrates the history store.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}
