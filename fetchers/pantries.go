package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// NYC Open Data food assistance locations feed.
const defaultPantriesURL = "https://data.cityofnewyork.us/resource/yjpx-8qdf.json"

const defaultPantriesLimit = 50

// Pantries fetches nearby food assistance locations. The feed schema
// shifts over time, so rows pass through as raw objects.
type Pantries struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

type PantriesOption func(*Pantries)

func WithPantriesURL(u string) PantriesOption {
	return func(p *Pantries) {
		p.baseURL = u
	}
}

func WithPantriesClient(c *http.Client) PantriesOption {
	return func(p *Pantries) {
		p.client = c
	}
}

func NewPantries(logger *zap.Logger, opts ...PantriesOption) *Pantries {
	ans := Pantries{
		baseURL: defaultPantriesURL,
		client:  newHTTPClient(),
		logger:  logger,
	}

	for _, opt := range opts {
		opt(&ans)
	}

	return &ans
}

func (p *Pantries) Fetch(ctx context.Context) ([]map[string]any, error) {
	vals := url.Values{}
	vals.Set("$limit", fmt.Sprintf("%d", defaultPantriesLimit))

	reqURL := p.baseURL + "?" + vals.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var rows []map[string]any

	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}

	p.logger.Debug("pantry rows received", zap.Int("count", len(rows)))

	return rows, nil
}
