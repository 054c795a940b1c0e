package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.GeocodeConfig{BaseURL: srv.URL, APIKey: "test-key"})
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "123 Main St, Ann Arbor", r.URL.Query().Get("address"))
		assert.Equal(t, "country:US", r.URL.Query().Get("components"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{"status":"OK","results":[{"formatted_address":"123 Main St, Ann Arbor, MI 48104, USA","geometry":{"location":{"lat":42.28,"lng":-83.74}}}]}`)
	})

	got, err := c.Search(context.Background(), " 123 Main St, Ann Arbor ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Candidate{FormattedAddress: "123 Main St, Ann Arbor, MI 48104, USA", Lat: 42.28, Lon: -83.74}, got[0])
}

func TestSearchZeroResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	})

	got, err := c.Search(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestSearchBlankQuery(t *testing.T) {
	c := NewClient(&config.GeocodeConfig{APIKey: "k"})
	_, err := c.Search(context.Background(), "   ")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestReverse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "44.7631,-85.6206", r.URL.Query().Get("latlng"))
		fmt.Fprint(w, `{"status":"OK","results":[{"formatted_address":"Traverse City, MI, USA","geometry":{"location":{"lat":44.7631,"lng":-85.6206}}}]}`)
	})

	got, err := c.Reverse(context.Background(), geo.Point{Lat: 44.7631, Lon: -85.6206})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Traverse City, MI, USA", got[0].FormattedAddress)
}

func TestTransientFailures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.Search(context.Background(), "x")
	assert.Equal(t, apperr.KindTransient, apperr.KindOf(err))

	c = newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status":"OVER_QUERY_LIMIT","results":[]}`)
	})
	_, err = c.Search(context.Background(), "x")
	assert.Equal(t, apperr.KindTransient, apperr.KindOf(err))

	c = NewClient(&config.GeocodeConfig{BaseURL: "http://unused"})
	_, err = c.Search(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = c.Reverse(context.Background(), geo.Point{Lat: 1, Lon: 1})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRejectedRequestIsNotRetryable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`)
	})

	_, err := c.Search(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, apperr.IsRetryable(err))
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestSearchKeepsFirstFiveCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		var results []string
		for i := 0; i < 7; i++ {
			results = append(results, fmt.Sprintf(`{"formatted_address":"%d Main St","geometry":{"location":{"lat":42,"lng":-83}}}`, i))
		}
		fmt.Fprintf(w, `{"status":"OK","results":[%s]}`, strings.Join(results, ","))
	})

	got, err := c.Search(context.Background(), "Main St")
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "4 Main St", got[4].FormattedAddress)
}
