package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/util"
)

type Router interface {
	Route(ctx context.Context, source ctdf.Location, destination ctdf.Location) (*ctdf.RouteResult, error)
}

type TomTomRouter struct {
	Endpoint   string
	APIKey     string
	Timeout    time.Duration
	TravelMode string
	RouteType  string
	Traffic    bool

	Client *http.Client
}

func NewTomTomRouter(routingConfig config.RoutingConfig) *TomTomRouter {
	return &TomTomRouter{
		Endpoint:   strings.TrimSuffix(routingConfig.Endpoint, "/"),
		APIKey:     routingConfig.APIKey,
		Timeout:    routingConfig.Timeout(),
		TravelMode: routingConfig.TravelMode,
		RouteType:  routingConfig.RouteType,
		Traffic:    routingConfig.Traffic,
		Client:     &http.Client{},
	}
}

type calculateRouteResponse struct {
	Routes []struct {
		Summary struct {
			LengthInMeters      float64 `json:"lengthInMeters"`
			TravelTimeInSeconds float64 `json:"travelTimeInSeconds"`
		} `json:"summary"`
		Legs []struct {
			Points []struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"points"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route returns a *RouteError for every failure, including a missing key
func (r *TomTomRouter) Route(ctx context.Context, source ctdf.Location, destination ctdf.Location) (*ctdf.RouteResult, error) {
	if r.APIKey == "" {
		return nil, &RouteError{Reason: MissingKeyReason, Err: ErrMissingKey}
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("key", r.APIKey)
	params.Set("traffic", strconv.FormatBool(r.Traffic))
	params.Set("routeType", r.RouteType)
	params.Set("travelMode", r.TravelMode)

	requestURL := fmt.Sprintf("%s/%s:%s/json?%s", r.Endpoint, source, destination, params.Encode())

	var response calculateRouteResponse

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := r.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("tomtom returned status %d", resp.StatusCode)
			if util.IsRetryableStatus(resp.StatusCode) {
				return statusErr
			}

			return backoff.Permanent(statusErr)
		}

		response = calculateRouteResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding tomtom response: %w", err))
		}

		return nil
	}

	err := backoff.RetryNotify(operation, util.NewProviderBackOff(ctx, r.Timeout), func(err error, wait time.Duration) {
		log.Debug().Err(err).Str("provider", "tomtom").Dur("wait", wait).Msg("Retrying route")
	})
	if err != nil {
		return nil, &RouteError{Reason: ProviderReason, Err: err}
	}

	if len(response.Routes) == 0 {
		return nil, &RouteError{Reason: NoRouteReason, Err: ErrNoRoute}
	}

	route := response.Routes[0]

	polyline := []ctdf.Location{}
	for _, leg := range route.Legs {
		for _, point := range leg.Points {
			polyline = append(polyline, ctdf.Location{Latitude: point.Latitude, Longitude: point.Longitude})
		}
	}

	return &ctdf.RouteResult{
		DistanceKm:  util.Round(route.Summary.LengthInMeters/1000, 2),
		DurationMin: util.Round(route.Summary.TravelTimeInSeconds/60, 1),
		Polyline:    polyline,
	}, nil
}
