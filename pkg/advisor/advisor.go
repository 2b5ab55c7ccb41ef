package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/modeadvisor/pkg/availability"
	"github.com/travigo/modeadvisor/pkg/conditions"
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/predictor"
	"github.com/travigo/modeadvisor/pkg/routing"
)

var (
	ErrMissingPlaces  = errors.New("Please enter both Source and Destination.")
	ErrUnknownFeature = errors.New("unknown feature")
)

// PlaceResolver turns the free text ends of a trip into coordinates
type PlaceResolver interface {
	ResolvePair(ctx context.Context, sourceText string, destinationText string) (ctdf.ResolvedPlace, ctdf.ResolvedPlace, error)
}

// Observer is told about every attempted trip, including geocode failures.
// advice is nil when err is set.
type Observer interface {
	Observe(ctx context.Context, query ctdf.TripQuery, advice *ctdf.TripAdvice, err error)
}

type Advisor struct {
	Config       *config.AdvisorConfig
	Places       PlaceResolver
	Router       routing.Router
	Availability *availability.Engine
	Conditions   conditions.ContextProvider
	Predictor    predictor.DelayPredictor

	Observers []Observer

	Now func() time.Time
}

func (a *Advisor) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}

	return a.Now()
}

// Advise runs the full pipeline for one query. A *geocoder.GeoError is the only
// failure once both places are given; provider outages degrade the advice instead.
func (a *Advisor) Advise(ctx context.Context, query ctdf.TripQuery) (*ctdf.TripAdvice, error) {
	query.Source = strings.TrimSpace(query.Source)
	query.Destination = strings.TrimSpace(query.Destination)

	if query.Source == "" || query.Destination == "" {
		return nil, ErrMissingPlaces
	}

	if query.Feature == "" {
		query.Feature = ctdf.FeaturePublic
	}
	if !query.Feature.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeature, query.Feature)
	}

	source, destination, err := a.Places.ResolvePair(ctx, query.Source, query.Destination)
	if err != nil {
		log.Info().Err(err).Str("source", query.Source).Str("destination", query.Destination).Msg("Could not resolve trip places")

		a.notify(ctx, query, nil, err)
		return nil, err
	}

	var advice *ctdf.TripAdvice

	switch query.Feature {
	case ctdf.FeatureCab:
		advice = a.adviseCab(ctx, query, source, destination)
	case ctdf.FeatureWalk:
		advice = a.adviseWalk(ctx, query, source, destination)
	default:
		advice = a.advisePublic(ctx, query, source, destination)
	}

	log.Debug().
		Str("feature", string(query.Feature)).
		Str("source", query.Source).
		Str("destination", query.Destination).
		Interface("modes", advice.Modes()).
		Msg("Trip advice ready")

	a.notify(ctx, query, advice, nil)

	return advice, nil
}

func (a *Advisor) notify(ctx context.Context, query ctdf.TripQuery, advice *ctdf.TripAdvice, err error) {
	for _, observer := range a.Observers {
		observer.Observe(ctx, query, advice, err)
	}
}

// route treats every router failure as the absence of a route
func (a *Advisor) route(ctx context.Context, source ctdf.ResolvedPlace, destination ctdf.ResolvedPlace) *ctdf.RouteResult {
	route, err := a.Router.Route(ctx, source.Location, destination.Location)
	if err != nil {
		log.Warn().Err(err).Str("provider", "tomtom").Msg("Road route unavailable")
		return nil
	}

	return route
}

func newAdvice(query ctdf.TripQuery, source ctdf.ResolvedPlace, destination ctdf.ResolvedPlace, route *ctdf.RouteResult, weather ctdf.Weather) *ctdf.TripAdvice {
	polyline := []ctdf.Location{}
	var roadKm *float64

	if route != nil {
		polyline = route.Polyline
		distance := route.DistanceKm
		roadKm = &distance
	}

	return &ctdf.TripAdvice{
		Feature:     query.Feature,
		Source:      query.Source,
		Destination: query.Destination,
		Rows:        []ctdf.ModeRow{},
		Suggestions: []ctdf.Suggestion{},
		RoadKm:      roadKm,
		Weather:     weather,
		Map: ctdf.MapData{
			Source:       ctdf.NewMapMarker(source.Location, "Source: "+query.Source),
			Destination:  ctdf.NewMapMarker(destination.Location, "Destination: "+query.Destination),
			RoadPolyline: polyline,
		},
	}
}
