package runner

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gosom/cheap-eats-nyc/cache"
	"github.com/gosom/cheap-eats-nyc/fetchers"
	"github.com/gosom/cheap-eats-nyc/search"
)

func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func NewCache(cfg *Config) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case CacheRedis:
		return cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword), nil
	case CacheMemory:
		return cache.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.CacheBackend)
	}
}

func NewSources(cfg *Config, logger *zap.Logger) ([]fetchers.Source, error) {
	sources := make([]fetchers.Source, 0, len(cfg.Sources))

	for _, name := range cfg.Sources {
		switch name {
		case "opendata":
			sources = append(sources, fetchers.NewOpenData(logger))
		case "llm":
			sources = append(sources, fetchers.NewLLM(cfg.LLMAPIKey, logger))
		case "mock":
			sources = append(sources, fetchers.NewMock(time.Now().UnixNano()))
		default:
			return nil, fmt.Errorf("unknown source: %s", name)
		}
	}

	return sources, nil
}

func NewSearcher(cfg *Config, logger *zap.Logger, c cache.Cache) (*search.Searcher, error) {
	sources, err := NewSources(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := []search.Option{
		search.WithCache(c, cache.DefaultTTL),
	}

	if cfg.Timeout > 0 {
		opts = append(opts, search.WithTimeout(cfg.Timeout))
	}

	return search.NewSearcher(sources, logger, opts...), nil
}
