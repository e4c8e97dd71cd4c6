// Package search orchestrates one restaurant search end to end:
// geocode the location text, fetch raw records from the configured
// sources, normalize, then dedup/filter/rank. Searches are serialized
// by a generation counter so a stale completion never overwrites the
// result of a newer request.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gosom/cheap-eats-nyc/cache"
	"github.com/gosom/cheap-eats-nyc/eats"
	"github.com/gosom/cheap-eats-nyc/fetchers"
	"github.com/gosom/cheap-eats-nyc/gazetteer"
	"github.com/gosom/cheap-eats-nyc/geo"
	"github.com/gosom/cheap-eats-nyc/models"
	"github.com/gosom/cheap-eats-nyc/pipeline"
)

const DefaultTimeout = 12 * time.Second

// ErrSuperseded is returned when a newer search was submitted while
// this one was in flight. The caller should drop the result.
var ErrSuperseded = errors.New("superseded by a newer search")

type State string

const (
	StateIdle       State = "idle"
	StateGeocoding  State = "geocoding"
	StateFetching   State = "fetching"
	StateProcessing State = "processing"
	StateSuccess    State = "success"
	StateFailure    State = "failure"
)

const (
	noticeDemoData    = "Using demo data. NYC Open Data is temporarily unavailable."
	noticeEmptyResult = "No restaurants found in this area. Try searching a different NYC location."
)

type Searcher struct {
	sources  []fetchers.Source
	fallback *fetchers.Mock
	cache    cache.Cache
	cacheTTL time.Duration
	norm     *eats.Normalizer
	logger   *zap.Logger
	timeout  time.Duration

	gen   atomic.Int64
	state atomic.Value
}

type Option func(*Searcher)

func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithCache enables caching of raw source responses keyed by source
// kind plus the query signature.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Searcher) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithNormalizer(n *eats.Normalizer) Option {
	return func(s *Searcher) {
		s.norm = n
	}
}

func WithFallback(m *fetchers.Mock) Option {
	return func(s *Searcher) {
		s.fallback = m
	}
}

func NewSearcher(sources []fetchers.Source, logger *zap.Logger, opts ...Option) *Searcher {
	ans := Searcher{
		sources:  sources,
		fallback: fetchers.NewMock(time.Now().UnixNano()),
		cacheTTL: cache.DefaultTTL,
		norm:     eats.NewNormalizer(),
		logger:   logger,
		timeout:  DefaultTimeout,
	}

	for _, opt := range opts {
		opt(&ans)
	}

	ans.state.Store(StateIdle)

	return &ans
}

// State reports the phase of the most recently submitted search.
func (s *Searcher) State() State {
	return s.state.Load().(State)
}

// Submit runs one search. A later Submit invalidates any in-flight one;
// the stale call returns ErrSuperseded instead of a response.
func (s *Searcher) Submit(ctx context.Context, q models.SearchQuery) (*models.SearchResponse, error) {
	gen := s.gen.Add(1)

	q.ApplyDefaults()

	if err := q.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.setState(gen, StateGeocoding)

	// Geocoding never fails: unrecognized text falls back to the
	// Manhattan center.
	origin := gazetteer.Resolve(q.Location)

	s.setState(gen, StateFetching)

	records, fetchErr := s.fetchAll(ctx, q, origin)

	if s.superseded(gen) {
		return nil, ErrSuperseded
	}

	if len(records) == 0 && fetchErr != nil {
		s.logger.Warn("all sources failed, serving demo data",
			zap.String("location", q.Location), zap.Error(fetchErr))

		return s.fallbackResponse(ctx, gen, q, origin)
	}

	s.setState(gen, StateProcessing)

	restaurants := s.process(records, origin, q)

	if s.superseded(gen) {
		return nil, ErrSuperseded
	}

	s.setState(gen, StateSuccess)

	if len(restaurants) == 0 {
		return &models.SearchResponse{
			Status:      models.StatusEmptyResult,
			Notice:      noticeEmptyResult,
			Origin:      origin,
			Restaurants: []eats.Restaurant{},
		}, nil
	}

	return &models.SearchResponse{
		Status:      models.StatusSuccess,
		Origin:      origin,
		Restaurants: restaurants,
	}, nil
}

func (s *Searcher) fetchAll(ctx context.Context, q models.SearchQuery, origin geo.Coordinate) ([]eats.RawRecord, error) {
	var (
		records []eats.RawRecord
		errs    error
	)

	for _, src := range s.sources {
		recs, err := s.fetchOne(ctx, src, q, origin)
		if err != nil {
			s.logger.Warn("source fetch failed",
				zap.String("source", string(src.Kind())), zap.Error(err))

			errs = multierr.Append(errs, err)

			continue
		}

		records = append(records, recs...)
	}

	return records, errs
}

func (s *Searcher) fetchOne(ctx context.Context, src fetchers.Source, q models.SearchQuery, origin geo.Coordinate) ([]eats.RawRecord, error) {
	if s.cache == nil {
		return src.Fetch(ctx, q, origin)
	}

	key := cacheKey(src.Kind(), q)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached []eats.RawRecord

		if err := json.Unmarshal(data, &cached); err == nil {
			s.logger.Debug("cache hit", zap.String("key", key))

			return cached, nil
		}
	}

	recs, err := src.Fetch(ctx, q, origin)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(recs); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.logger.Warn("cache set failed", zap.Error(err))
		}
	}

	return recs, nil
}

func cacheKey(kind eats.SourceKind, q models.SearchQuery) string {
	return fmt.Sprintf("src:%s:%s:%s:%s:%.0f:%.1f",
		kind,
		strings.ToLower(strings.TrimSpace(q.Location)),
		strings.ToLower(strings.TrimSpace(q.Cuisine)),
		q.PriceFilter,
		q.MaxPrice,
		q.RadiusMiles,
	)
}

func (s *Searcher) process(records []eats.RawRecord, origin geo.Coordinate, q models.SearchQuery) []eats.Restaurant {
	normalized := make([]eats.Restaurant, 0, len(records))

	for i := range records {
		r, err := s.norm.Normalize(records[i], &origin, q.RadiusMiles)
		if err != nil {
			continue
		}

		normalized = append(normalized, *r)
	}

	s.logger.Debug("records normalized",
		zap.Int("raw", len(records)), zap.Int("kept", len(normalized)))

	return pipeline.Process(normalized, &origin, pipeline.Options{
		RadiusMiles: q.RadiusMiles,
		MaxPrice:    q.MaxPrice,
		PriceLevel:  q.PriceFilter,
		Cuisine:     q.Cuisine,
		Cap:         q.Limit,
	})
}

func (s *Searcher) fallbackResponse(ctx context.Context, gen int64, q models.SearchQuery, origin geo.Coordinate) (*models.SearchResponse, error) {
	records, err := s.fallback.Fetch(ctx, q, origin)
	if err != nil {
		return nil, err
	}

	restaurants := s.process(records, origin, q)

	if s.superseded(gen) {
		return nil, ErrSuperseded
	}

	s.setState(gen, StateFailure)

	return &models.SearchResponse{
		Status:      models.StatusFallback,
		Notice:      noticeDemoData,
		Origin:      origin,
		Restaurants: restaurants,
	}, nil
}

func (s *Searcher) superseded(gen int64) bool {
	return gen != s.gen.Load()
}

func (s *Searcher) setState(gen int64, state State) {
	if s.superseded(gen) {
		return
	}

	s.state.Store(state)
}
