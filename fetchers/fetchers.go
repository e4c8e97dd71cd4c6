// Package fetchers contains the upstream restaurant data sources. Every
// source speaks plain HTTP and returns tagged raw records; the search
// orchestrator treats them interchangeably.
package fetchers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gosom/cheap-eats-nyc/eats"
	"github.com/gosom/cheap-eats-nyc/geo"
	"github.com/gosom/cheap-eats-nyc/models"
)

var (
	ErrBadStatus        = errors.New("upstream returned a non success status")
	ErrExtractionFailed = errors.New("no usable objects in upstream payload")
)

type Source interface {
	Kind() eats.SourceKind
	Fetch(ctx context.Context, q models.SearchQuery, origin geo.Coordinate) ([]eats.RawRecord, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}
