// Package geocode resolves addresses to coordinates and back through the
// Google Geocoding web service.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
)

var (
	ErrNotConfigured = errors.New("geocoding is not configured")
	ErrEmptyQuery    = errors.New("query is required")
)

const maxCandidates = 5

// Statuses the geocoder may clear up on a later attempt.
var retryableStatuses = []string{"OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT", "UNKNOWN_ERROR"}

type Candidate struct {
	FormattedAddress string  `json:"formatted_address"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
}

// Client fails every call with ErrNotConfigured when built without an API
// key.
type Client struct {
	maps *maps.Client
}

func NewClient(conf *config.GeocodeConfig) *Client {
	if conf.APIKey == "" {
		return &Client{}
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(conf.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
	}
	if conf.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(conf.BaseURL))
	}

	c, err := maps.NewClient(opts...)
	if err != nil {
		zap.L().Warn("geocoding disabled", zap.Error(err))
		return &Client{}
	}

	return &Client{maps: c}
}

// Search geocodes a free-text address, restricted to the US.
func (c *Client) Search(ctx context.Context, q string) ([]Candidate, error) {
	const op = "geocode.Search"

	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.ValidationFields(op, ErrEmptyQuery, map[string]string{"q": "cannot be blank"})
	}
	if c.maps == nil {
		return nil, apperr.Transient(op, ErrNotConfigured)
	}

	results, err := c.maps.Geocode(ctx, &maps.GeocodingRequest{
		Address:    q,
		Components: map[maps.Component]string{maps.ComponentCountry: "US"},
	})
	if err != nil {
		return nil, classify(op, fmt.Errorf("c.maps.Geocode -> %w", err))
	}

	return candidates(results), nil
}

func (c *Client) Reverse(ctx context.Context, p geo.Point) ([]Candidate, error) {
	const op = "geocode.Reverse"

	if err := p.Validate(); err != nil {
		return nil, apperr.ValidationFields(op, err, map[string]string{"lat": err.Error()})
	}
	if c.maps == nil {
		return nil, apperr.Transient(op, ErrNotConfigured)
	}

	results, err := c.maps.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: p.Lat, Lng: p.Lon},
	})
	if err != nil {
		return nil, classify(op, fmt.Errorf("c.maps.ReverseGeocode -> %w", err))
	}

	return candidates(results), nil
}

// classify maps a client error to an apperr kind. The client reports API
// statuses as "maps: STATUS - message"; transport and decoding failures
// carry no status and are treated as transient.
func classify(op string, err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "maps: ") {
		return apperr.Transient(op, err)
	}

	for _, status := range retryableStatuses {
		if strings.Contains(msg, status) {
			return apperr.Transient(op, err)
		}
	}

	zap.L().Warn("geocoder rejected request", zap.Error(err))
	return err
}

func candidates(results []maps.GeocodingResult) []Candidate {
	out := make([]Candidate, 0, min(len(results), maxCandidates))
	for _, r := range results {
		if len(out) == maxCandidates {
			break
		}
		out = append(out, Candidate{
			FormattedAddress: r.FormattedAddress,
			Lat:              r.Geometry.Location.Lat,
			Lon:              r.Geometry.Location.Lng,
		})
	}

	return out
}
