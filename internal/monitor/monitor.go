// Package monitor records extraction attempts and maintains per-parser
// rolling statistics on top of an append-only store.
package monitor

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"recipeparser/internal/domain"
	"recipeparser/internal/monitoring"
)

const (
	maxCommonErrors = 10
	defaultLogLimit = 100
)

// Store is the append-only persistence behind the monitor. Rows are never
// updated in place; the latest ParserStats row per parser is authoritative.
type Store interface {
	AppendScrapingResult(ctx context.Context, r domain.ScrapingResult) error
	AppendParserStats(ctx context.Context, s domain.ParserStats) error
	// LatestParserStats returns (nil, nil) when the parser has no rows yet.
	LatestParserStats(ctx context.Context, parserName string) (*domain.ParserStats, error)
	// RecentScrapingResults returns up to limit rows, newest first,
	// optionally filtered by parser name ("" matches all).
	RecentScrapingResults(ctx context.Context, limit int, parserName string) ([]domain.ScrapingResult, error)
}

// StatsCache is an optional read-through cache for the latest stats row.
// A nil cache is valid; all methods are best-effort.
type StatsCache interface {
	GetLatest(ctx context.Context, parserName string) (*domain.ParserStats, error)
	SetLatest(ctx context.Context, s domain.ParserStats) error
}

// Monitor logs scraping outcomes and keeps rolling aggregates current.
type Monitor struct {
	store   Store
	cache   StatsCache
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

func NewMonitor(store Store, cache StatsCache, metrics *monitoring.Metrics, logger *zap.Logger) *Monitor {
	return &Monitor{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// LogScrapingResult records one attempt and rolls the parser's stats
// forward. The raw result is persisted even when the stats update fails.
func (m *Monitor) LogScrapingResult(ctx context.Context, r domain.ScrapingResult) error {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}

	if err := m.store.AppendScrapingResult(ctx, r); err != nil {
		return err
	}

	for _, e := range r.ValidationResult.Errors {
		m.metrics.IncValidationError(e.Code)
	}

	prev, err := m.store.LatestParserStats(ctx, r.ParserName)
	if err != nil {
		m.logger.Warn("reading previous stats failed",
			zap.String("parser", r.ParserName), zap.Error(err))
		return err
	}

	next := NextStats(prev, r)
	if err := m.store.AppendParserStats(ctx, next); err != nil {
		return err
	}

	if m.cache != nil {
		if err := m.cache.SetLatest(ctx, next); err != nil {
			m.logger.Warn("stats cache write failed",
				zap.String("parser", r.ParserName), zap.Error(err))
		}
	}

	m.logger.Info("scraping result logged",
		zap.String("parser", r.ParserName),
		zap.String("url", r.URL),
		zap.Bool("success", r.Success),
		zap.Int64("durationMs", r.Duration),
		zap.Int("totalAttempts", next.TotalAttempts),
		zap.Float64("successRate", next.SuccessRate))
	return nil
}

// GetParserStats returns the latest aggregate for a parser, or (nil, nil)
// when it has never run. The cache is consulted first.
func (m *Monitor) GetParserStats(ctx context.Context, parserName string) (*domain.ParserStats, error) {
	if m.cache != nil {
		if s, err := m.cache.GetLatest(ctx, parserName); err == nil && s != nil {
			return s, nil
		}
	}
	return m.store.LatestParserStats(ctx, parserName)
}

// GetRecentScrapingLogs returns the most recent attempts, newest first.
// A non-positive limit falls back to defaultLogLimit.
func (m *Monitor) GetRecentScrapingLogs(ctx context.Context, limit int, parserName string) ([]domain.ScrapingResult, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	return m.store.RecentScrapingResults(ctx, limit, parserName)
}

// NextStats rolls the aggregate forward by one result. Success rate and
// average duration are maintained incrementally from the previous row, so
// a stats update costs O(1) regardless of history length.
func NextStats(prev *domain.ParserStats, r domain.ScrapingResult) domain.ParserStats {
	if prev == nil {
		prev = &domain.ParserStats{ParserName: r.ParserName}
	}

	n := prev.TotalAttempts
	successes := prev.SuccessRate * float64(n) / 100
	if r.Success {
		successes++
	}

	next := domain.ParserStats{
		ParserName:      r.ParserName,
		TotalAttempts:   n + 1,
		SuccessRate:     successes / float64(n+1) * 100,
		AverageDuration: (prev.AverageDuration*float64(n) + float64(r.Duration)) / float64(n+1),
		CommonErrors:    prev.CommonErrors,
		LastRun:         r.Timestamp,
	}

	if !r.Success {
		next.CommonErrors = mergeCommonErrors(prev.CommonErrors, r.ValidationResult.Errors)
	}
	return next
}

// mergeCommonErrors bumps counts for the new result's error codes and keeps
// the ten most frequent. Sorting is stable so ties keep earlier codes first.
func mergeCommonErrors(prev []domain.ErrorCount, errs []domain.ValidationError) []domain.ErrorCount {
	merged := make([]domain.ErrorCount, len(prev))
	copy(merged, prev)

	for _, e := range errs {
		found := false
		for i := range merged {
			if merged[i].Code == e.Code {
				merged[i].Count++
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, domain.ErrorCount{Code: e.Code, Count: 1})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Count > merged[j].Count
	})
	if len(merged) > maxCommonErrors {
		merged = merged[:maxCommonErrors]
	}
	return merged
}

// MemoryStore is an in-process Store used by tests and as the CLI fallback
// when no database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	results []domain.ScrapingResult
	stats   map[string][]domain.ParserStats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{stats: make(map[string][]domain.ParserStats)}
}

func (s *MemoryStore) AppendScrapingResult(_ context.Context, r domain.ScrapingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

func (s *MemoryStore) AppendParserStats(_ context.Context, st domain.ParserStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[st.ParserName] = append(s.stats[st.ParserName], st)
	return nil
}

func (s *MemoryStore) LatestParserStats(_ context.Context, parserName string) (*domain.ParserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.stats[parserName]
	if len(rows) == 0 {
		return nil, nil
	}
	latest := rows[len(rows)-1]
	return &latest, nil
}

func (s *MemoryStore) RecentScrapingResults(_ context.Context, limit int, parserName string) ([]domain.ScrapingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ScrapingResult, 0, limit)
	for i := len(s.results) - 1; i >= 0 && len(out) < limit; i-- {
		if parserName != "" && s.results[i].ParserName != parserName {
			continue
		}
		out = append(out, s.results[i])
	}
	return out, nil
}
