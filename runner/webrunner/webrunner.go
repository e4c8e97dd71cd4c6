// Package webrunner serves the search API over HTTP.
package webrunner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gosom/cheap-eats-nyc/cache"
	"github.com/gosom/cheap-eats-nyc/fetchers"
	"github.com/gosom/cheap-eats-nyc/runner"
	"github.com/gosom/cheap-eats-nyc/tlmt"
	"github.com/gosom/cheap-eats-nyc/web"
)

type webrunner struct {
	cfg    *runner.Config
	logger *zap.Logger
	cache  cache.Cache
	srv    *web.Server
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeWeb {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	logger, err := runner.NewLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}

	ans := webrunner{
		cfg:    cfg,
		logger: logger,
	}

	ans.cache, err = runner.NewCache(cfg)
	if err != nil {
		return nil, err
	}

	searcher, err := runner.NewSearcher(cfg, logger, ans.cache)
	if err != nil {
		return nil, err
	}

	pantries := fetchers.NewPantries(logger)

	ans.srv = web.NewServer(cfg.Addr, searcher, pantries, logger)

	return &ans, nil
}

func (w *webrunner) Run(ctx context.Context) error {
	t0 := time.Now().UTC()

	defer func() {
		params := map[string]any{
			"uptime": time.Now().UTC().Sub(t0).String(),
		}

		evt := tlmt.NewEvent("web_runner", params)

		_ = runner.Telemetry().Send(ctx, evt)
	}()

	egroup, ctx := errgroup.WithContext(ctx)

	egroup.Go(func() error {
		return w.srv.Start(ctx)
	})

	return egroup.Wait()
}

func (w *webrunner) Close(context.Context) error {
	var err error

	if w.cache != nil {
		err = multierr.Append(err, w.cache.Close())
	}

	return err
}
