// Package parser orchestrates one extraction: classify, resolve, select an
// extractor, fetch, extract. All failure is returned as typed result
// values; nothing escapes the public boundary as an error or panic.
package parser

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"recipeparser/internal/classifier"
	"recipeparser/internal/domain"
	"recipeparser/internal/extract"
	"recipeparser/internal/fetch"
	"recipeparser/internal/monitoring"
)

const (
	CodeUnsupportedSite = "UNSUPPORTED_SITE"
	CodeParsingError    = "PARSING_ERROR"
)

// Service dispatches URLs to site extractors.
type Service struct {
	fetcher  *fetch.Fetcher
	registry *extract.Registry
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

func NewService(fetcher *fetch.Fetcher, registry *extract.Registry, metrics *monitoring.Metrics, logger *zap.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// ValidateURL is a pure pre-check used by callers to short-circuit before
// any network I/O.
func (s *Service) ValidateURL(rawURL string) classifier.Classification {
	return classifier.Classify(rawURL)
}

// ParseURL extracts a recipe from the given URL. Redirects are resolved
// first (failures swallowed); the cleaned URL selects the extractor and is
// the one fetched.
func (s *Service) ParseURL(ctx context.Context, rawURL string) domain.ParseResult {
	start := time.Now()
	site := "unknown"
	result := s.parse(ctx, rawURL, &site)
	s.metrics.ObserveParse(site, result.Success, time.Since(start).Seconds())
	return result
}

func (s *Service) parse(ctx context.Context, rawURL string, site *string) domain.ParseResult {
	cleanURL := s.fetcher.ResolveURL(ctx, rawURL)

	extractor := s.registry.Find(cleanURL)
	if extractor == nil {
		s.logger.Info("no extractor for URL", zap.String("url", cleanURL))
		return domain.ParseResult{
			Success: false,
			Error: &domain.ParseError{
				Code:    CodeUnsupportedSite,
				Message: "This website is not currently supported",
			},
		}
	}
	*site = extractor.Name()

	html, err := s.fetcher.FetchHTML(ctx, cleanURL)
	if err != nil {
		s.logger.Warn("fetch failed", zap.String("url", cleanURL), zap.Error(err))
		return domain.ParseResult{
			Success: false,
			Error:   &domain.ParseError{Code: CodeParsingError, Message: err.Error()},
		}
	}

	recipe, err := s.extract(extractor, html, cleanURL)
	if err != nil {
		s.logger.Error("extraction failed",
			zap.String("url", cleanURL),
			zap.String("extractor", extractor.Name()),
			zap.Error(err))
		return domain.ParseResult{
			Success: false,
			Error:   &domain.ParseError{Code: CodeParsingError, Message: err.Error()},
		}
	}

	s.logger.Info("parsed recipe",
		zap.String("url", cleanURL),
		zap.String("extractor", extractor.Name()),
		zap.String("title", recipe.Title),
		zap.Int("ingredients", len(recipe.Ingredients)),
		zap.Int("steps", len(recipe.Steps)))

	return domain.ParseResult{Success: true, Recipe: recipe}
}

// extract invokes the extractor with panic recovery so that a broken DOM
// assumption in one site's heuristics becomes a typed failure.
func (s *Service) extract(e extract.Extractor, html, url string) (recipe *domain.Recipe, err error) {
	defer func() {
		if p := recover(); p != nil {
			recipe = nil
			err = fmt.Errorf("extractor panic: %v", p)
		}
	}()
	return e.Extract(html, url)
}
