package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/modeadvisor/pkg/ctdf"
)

func newTestNominatim(url string) *NominatimProvider {
	return &NominatimProvider{
		Endpoint:  url,
		UserAgent: "modeadvisor-test",
		Timeout:   5 * time.Second,
		Client:    &http.Client{},
	}
}

func TestNominatimSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		assert.Equal(t, "modeadvisor-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "json", query.Get("format"))
		assert.Equal(t, "Majestic, Bengaluru, Karnataka, India", query.Get("q"))
		assert.Equal(t, "1", query.Get("limit"))
		assert.Equal(t, "1", query.Get("addressdetails"))
		assert.Equal(t, "77,13,78,12", query.Get("viewbox"))
		assert.Equal(t, "1", query.Get("bounded"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"lat": "12.9779", "lon": "77.5724", "display_name": "Majestic, Gandhi Nagar, Bengaluru, Karnataka, India", "address": {"state": "Karnataka"}},
			{"lat": "not-a-number", "lon": "77.0", "display_name": "Broken"}
		]`))
	}))
	defer server.Close()

	candidates, err := newTestNominatim(server.URL).Search(context.Background(), SearchQuery{
		Text:           "Majestic, Bengaluru, Karnataka, India",
		Limit:          1,
		AddressDetails: true,
		ViewBox:        &ctdf.Bounds{MinLatitude: 12, MaxLatitude: 13, MinLongitude: 77, MaxLongitude: 78},
	})
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, ctdf.Location{Latitude: 12.9779, Longitude: 77.5724}, candidates[0].Location)
	assert.Equal(t, "Karnataka", candidates[0].State)
}

func TestNominatimUnboundedQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("viewbox"))
		assert.Empty(t, r.URL.Query().Get("bounded"))

		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	candidates, err := newTestNominatim(server.URL).Search(context.Background(), SearchQuery{Text: "Nowhere", Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestNominatimRetriesUnavailable(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Write([]byte(`[{"lat": "15.35", "lon": "76.15", "display_name": "Koppal, Karnataka, India"}]`))
	}))
	defer server.Close()

	candidates, err := newTestNominatim(server.URL).Search(context.Background(), SearchQuery{Text: "Koppal", Limit: 1})
	require.NoError(t, err)

	assert.Len(t, candidates, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNominatimClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestNominatim(server.URL).Search(context.Background(), SearchQuery{Text: "Koppal", Limit: 1})
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
