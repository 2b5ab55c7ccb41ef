package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/util"
)

type NominatimProvider struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration

	Client *http.Client
}

func NewNominatimProvider(geocodingConfig config.GeocodingConfig) *NominatimProvider {
	return &NominatimProvider{
		Endpoint:  geocodingConfig.Endpoint,
		UserAgent: geocodingConfig.UserAgent,
		Timeout:   geocodingConfig.Timeout(),
		Client:    &http.Client{},
	}
}

type nominatimResult struct {
	Latitude    string `json:"lat"`
	Longitude   string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		State string `json:"state"`
	} `json:"address"`
}

func (n *NominatimProvider) Search(ctx context.Context, query SearchQuery) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, n.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query.Text)
	params.Set("limit", strconv.Itoa(query.Limit))
	if query.AddressDetails {
		params.Set("addressdetails", "1")
	}
	if query.ViewBox != nil {
		params.Set("viewbox", query.ViewBoxParameter())
		params.Set("bounded", "1")
	}

	requestURL := fmt.Sprintf("%s?%s", n.Endpoint, params.Encode())

	var results []nominatimResult

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", n.UserAgent)

		resp, err := n.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("nominatim returned status %d", resp.StatusCode)
			if util.IsRetryableStatus(resp.StatusCode) {
				return statusErr
			}

			return backoff.Permanent(statusErr)
		}

		results = nil
		if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding nominatim response: %w", err))
		}

		return nil
	}

	err := backoff.RetryNotify(operation, util.NewProviderBackOff(ctx, n.Timeout), func(err error, wait time.Duration) {
		log.Debug().Err(err).Str("provider", "nominatim").Str("query", query.Text).Dur("wait", wait).Msg("Retrying geocode")
	})
	if err != nil {
		return nil, err
	}

	candidates := []Candidate{}
	for _, result := range results {
		latitude, latErr := strconv.ParseFloat(result.Latitude, 64)
		longitude, lonErr := strconv.ParseFloat(result.Longitude, 64)
		if latErr != nil || lonErr != nil {
			log.Warn().Str("query", query.Text).Str("lat", result.Latitude).Str("lon", result.Longitude).Msg("Skipping unparseable geocode result")
			continue
		}

		candidates = append(candidates, Candidate{
			Location:    ctdf.Location{Latitude: latitude, Longitude: longitude},
			DisplayName: result.DisplayName,
			State:       result.Address.State,
		})
	}

	return candidates, nil
}
