package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/gosom/cheap-eats-nyc/eats"
	"github.com/gosom/cheap-eats-nyc/geo"
	"github.com/gosom/cheap-eats-nyc/models"
)

// DOHMH New York City Restaurant Inspection Results.
const defaultOpenDataURL = "https://data.cityofnewyork.us/resource/43nn-pn8j.json"

// Degrees per mile around NYC's latitude, used to turn the search
// radius into a Socrata bounding box.
const (
	latDegreesPerMile = 0.015
	lonDegreesPerMile = 0.02
)

type OpenData struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

type OpenDataOption func(*OpenData)

func WithOpenDataURL(u string) OpenDataOption {
	return func(o *OpenData) {
		o.baseURL = u
	}
}

func WithOpenDataClient(c *http.Client) OpenDataOption {
	return func(o *OpenData) {
		o.client = c
	}
}

func NewOpenData(logger *zap.Logger, opts ...OpenDataOption) *OpenData {
	ans := OpenData{
		baseURL: defaultOpenDataURL,
		client:  newHTTPClient(),
		logger:  logger,
	}

	for _, opt := range opts {
		opt(&ans)
	}

	return &ans
}

func (o *OpenData) Kind() eats.SourceKind {
	return eats.KindOpenData
}

func (o *OpenData) Fetch(ctx context.Context, q models.SearchQuery, origin geo.Coordinate) ([]eats.RawRecord, error) {
	reqURL := o.buildURL(q, origin)

	o.logger.Debug("fetching open data", zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var rows []eats.OpenDataRow

	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}

	o.logger.Debug("open data rows received", zap.Int("count", len(rows)))

	ans := make([]eats.RawRecord, 0, len(rows))

	for i := range rows {
		ans = append(ans, eats.RawRecord{Kind: eats.KindOpenData, OpenData: &rows[i]})
	}

	return ans, nil
}

func (o *OpenData) buildURL(q models.SearchQuery, origin geo.Coordinate) string {
	radius := q.RadiusMiles
	if radius <= 0 {
		radius = models.DefaultRadiusMiles
	}

	latRange := latDegreesPerMile * radius
	lonRange := lonDegreesPerMile * radius

	where := fmt.Sprintf(
		"latitude>%f AND latitude<%f AND longitude>%f AND longitude<%f",
		origin.Latitude-latRange, origin.Latitude+latRange,
		origin.Longitude-lonRange, origin.Longitude+lonRange,
	)

	vals := url.Values{}
	vals.Set("$limit", "100")
	vals.Set("$where", where)
	vals.Set("$order", "dba")

	if q.Cuisine != "" {
		vals.Set("$q", q.Cuisine)
	}

	return o.baseURL + "?" + vals.Encode()
}
