// Package gazetteer resolves free text NYC locations to approximate
// coordinates using a fixed table of named areas and ZIP centroids.
// Resolution never fails: unknown input falls back to central Manhattan.
package gazetteer

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gosom/cheap-eats-nyc/geo"
)

//go:embed zip_centroids.csv
var zipCentroidsCSV []byte

// nycZipRe matches the 5-digit NYC ZIP prefixes (100xx-119xx).
var nycZipRe = regexp.MustCompile(`\b((?:10|11)\d{3})\b`)

type namedArea struct {
	name   string
	coords geo.Coordinate
}

// namedAreas is scanned in order and the first substring match wins, so
// the slice order encodes precedence. Do not reorder.
var namedAreas = []namedArea{
	{"manhattan", geo.Coordinate{Latitude: 40.7831, Longitude: -73.9712}},
	{"brooklyn", geo.Coordinate{Latitude: 40.6782, Longitude: -73.9442}},
	{"queens", geo.Coordinate{Latitude: 40.7282, Longitude: -73.7949}},
	{"bronx", geo.Coordinate{Latitude: 40.8448, Longitude: -73.8648}},
	{"staten island", geo.Coordinate{Latitude: 40.5795, Longitude: -74.1502}},
	{"times square", geo.Coordinate{Latitude: 40.7580, Longitude: -73.9855}},
	{"soho", geo.Coordinate{Latitude: 40.7230, Longitude: -74.0020}},
	{"chinatown", geo.Coordinate{Latitude: 40.7161, Longitude: -73.9961}},
	{"east village", geo.Coordinate{Latitude: 40.7281, Longitude: -73.9816}},
	{"west village", geo.Coordinate{Latitude: 40.7354, Longitude: -74.0032}},
	{"upper east side", geo.Coordinate{Latitude: 40.7736, Longitude: -73.9566}},
	{"upper west side", geo.Coordinate{Latitude: 40.7870, Longitude: -73.9754}},
	{"greenwich village", geo.Coordinate{Latitude: 40.7336, Longitude: -73.9960}},
	{"financial district", geo.Coordinate{Latitude: 40.7074, Longitude: -74.0113}},
	{"midtown", geo.Coordinate{Latitude: 40.7549, Longitude: -73.9840}},
	{"harlem", geo.Coordinate{Latitude: 40.8116, Longitude: -73.9465}},
	{"tribeca", geo.Coordinate{Latitude: 40.7195, Longitude: -74.0089}},
	{"nolita", geo.Coordinate{Latitude: 40.7220, Longitude: -73.9956}},
	{"lower east side", geo.Coordinate{Latitude: 40.7209, Longitude: -73.9898}},
	{"chelsea", geo.Coordinate{Latitude: 40.7465, Longitude: -73.9972}},
}

var (
	zipOnce      sync.Once
	zipCentroids map[string]geo.Coordinate
)

func loadZipCentroids() map[string]geo.Coordinate {
	zipOnce.Do(func() {
		data, err := parseZipCentroidsCSV(zipCentroidsCSV)
		if err != nil {
			data = map[string]geo.Coordinate{}
		}

		zipCentroids = data
	})

	return zipCentroids
}

func parseZipCentroidsCSV(raw []byte) (map[string]geo.Coordinate, error) {
	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("empty centroid dataset")
	}

	data := make(map[string]geo.Coordinate, len(rows)-1)

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 3 {
			continue
		}

		lat, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}

		lon, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			continue
		}

		data[row[0]] = geo.Coordinate{Latitude: lat, Longitude: lon}
	}

	return data, nil
}

// Resolve maps a free text location to a coordinate. Named areas take
// precedence over ZIP codes present in the same string because they are
// checked first. Unresolvable input returns the default center.
func Resolve(text string) geo.Coordinate {
	needle := strings.ToLower(text)

	for i := range namedAreas {
		if strings.Contains(needle, namedAreas[i].name) {
			return namedAreas[i].coords
		}
	}

	if m := nycZipRe.FindStringSubmatch(text); m != nil {
		if coords, ok := ResolveZIP(m[1]); ok {
			return coords
		}
	}

	return geo.DefaultCenter()
}

// ResolveZIP looks up a 5-digit ZIP in the centroid table.
func ResolveZIP(zip string) (geo.Coordinate, bool) {
	coords, ok := loadZipCentroids()[strings.TrimSpace(zip)]

	return coords, ok
}
