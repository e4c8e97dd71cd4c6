// Package searchrunner runs a single search from the command line and
// writes the results as CSV or JSON.
package searchrunner

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gosom/cheap-eats-nyc/cache"
	"github.com/gosom/cheap-eats-nyc/models"
	"github.com/gosom/cheap-eats-nyc/runner"
	"github.com/gosom/cheap-eats-nyc/search"
	"github.com/gosom/cheap-eats-nyc/tlmt"
)

type searchRunner struct {
	cfg      *runner.Config
	logger   *zap.Logger
	cache    cache.Cache
	searcher *search.Searcher
	out      io.Writer
	outfile  *os.File
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeSearch {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	logger, err := runner.NewLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}

	ans := &searchRunner{
		cfg:    cfg,
		logger: logger,
	}

	ans.cache, err = runner.NewCache(cfg)
	if err != nil {
		return nil, err
	}

	ans.searcher, err = runner.NewSearcher(cfg, logger, ans.cache)
	if err != nil {
		return nil, err
	}

	if err := ans.setOutput(); err != nil {
		return nil, err
	}

	return ans, nil
}

func (r *searchRunner) Run(ctx context.Context) (err error) {
	t0 := time.Now().UTC()

	var resp *models.SearchResponse

	defer func() {
		params := map[string]any{
			"duration": time.Now().UTC().Sub(t0).String(),
		}

		if resp != nil {
			params["status"] = resp.Status
			params["result_count"] = len(resp.Restaurants)
		}

		if err != nil {
			params["error"] = err.Error()
		}

		evt := tlmt.NewEvent("search_runner", params)

		_ = runner.Telemetry().Send(ctx, evt)
	}()

	q := models.SearchQuery{
		Location:    r.cfg.Location,
		Cuisine:     r.cfg.Cuisine,
		MaxPrice:    r.cfg.MaxPrice,
		RadiusMiles: r.cfg.RadiusMiles,
		Limit:       r.cfg.Limit,
	}

	resp, err = r.searcher.Submit(ctx, q)
	if err != nil {
		return err
	}

	if resp.Notice != "" {
		r.logger.Warn(resp.Notice)
	}

	if r.cfg.JSON {
		return r.writeJSON(resp)
	}

	return r.writeCSV(resp)
}

func (r *searchRunner) Close(context.Context) error {
	var err error

	if r.cache != nil {
		err = multierr.Append(err, r.cache.Close())
	}

	if r.outfile != nil {
		err = multierr.Append(err, r.outfile.Close())
	}

	return err
}

func (r *searchRunner) setOutput() error {
	switch r.cfg.ResultsFile {
	case "stdout":
		r.out = os.Stdout
	default:
		f, err := os.Create(r.cfg.ResultsFile)
		if err != nil {
			return err
		}

		r.outfile = f
		r.out = f
	}

	return nil
}

func (r *searchRunner) writeJSON(resp *models.SearchResponse) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")

	return enc.Encode(resp)
}

func (r *searchRunner) writeCSV(resp *models.SearchResponse) error {
	w := csv.NewWriter(r.out)

	for i := range resp.Restaurants {
		row := &resp.Restaurants[i]

		if i == 0 {
			if err := w.Write(row.CsvHeaders()); err != nil {
				return err
			}
		}

		if err := w.Write(row.CsvRow()); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
