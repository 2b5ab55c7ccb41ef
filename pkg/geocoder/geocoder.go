package geocoder

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/util"
	"golang.org/x/exp/slices"
)

type Geocoder struct {
	Provider Provider
	Region   config.RegionConfig
	Config   config.GeocodingConfig

	fallbackPlaces map[string]ctdf.ResolvedPlace
}

func NewGeocoder(provider Provider, region config.RegionConfig, geocodingConfig config.GeocodingConfig) *Geocoder {
	fallbackPlaces := map[string]ctdf.ResolvedPlace{}

	for _, place := range geocodingConfig.FallbackPlaces {
		for _, name := range place.Names {
			fallbackPlaces[util.NormaliseKey(name)] = ctdf.ResolvedPlace{
				Location: ctdf.Location{Latitude: place.Latitude, Longitude: place.Longitude},
				Label:    place.Label,
			}
		}
	}

	return &Geocoder{
		Provider:       provider,
		Region:         region,
		Config:         geocodingConfig,
		fallbackPlaces: fallbackPlaces,
	}
}

// Tiers expands text from most to least specific, skipping repeats
func (g *Geocoder) Tiers(text string) []string {
	return util.RemoveDuplicates([]string{
		joinPlace(text, g.Region.City, g.Region.State, g.Region.Country),
		joinPlace(text, g.Region.State, g.Region.Country),
		joinPlace(text, g.Region.Country),
		text,
	})
}

// Resolve tries every tier against the provider, then the fallback table.
// A non-nil bias restricts provider results to a box around that point.
func (g *Geocoder) Resolve(ctx context.Context, text string, bias *ctdf.Location) (ctdf.ResolvedPlace, error) {
	var viewBox *ctdf.Bounds
	if bias != nil {
		bounds := ctdf.BoundsAround(*bias, g.Config.BiasHalfWidth)
		viewBox = &bounds
	}

	for _, tier := range g.Tiers(text) {
		candidates, err := g.Provider.Search(ctx, SearchQuery{
			Text:           tier,
			Limit:          1,
			ViewBox:        viewBox,
			AddressDetails: true,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctdf.ResolvedPlace{}, ctx.Err()
			}

			log.Warn().Err(err).Str("query", tier).Msg("Geocode attempt failed")
			continue
		}

		if len(candidates) > 0 {
			return ctdf.ResolvedPlace{
				Location: candidates[0].Location,
				Label:    candidates[0].DisplayName,
			}, nil
		}
	}

	if place, exists := g.fallbackPlaces[util.NormaliseKey(text)]; exists {
		log.Debug().Str("query", text).Str("label", place.Label).Msg("Using fallback place")
		return place, nil
	}

	return ctdf.ResolvedPlace{}, ErrNotFound
}

// ResolvePair resolves both ends, re-resolving each towards the other when they land implausibly far apart.
// Unresolvable or still distant places produce a *GeoError.
func (g *Geocoder) ResolvePair(ctx context.Context, sourceText string, destinationText string) (ctdf.ResolvedPlace, ctdf.ResolvedPlace, error) {
	source, destination, err := g.resolveBoth(ctx,
		func(ctx context.Context) (ctdf.ResolvedPlace, error) { return g.Resolve(ctx, sourceText, nil) },
		func(ctx context.Context) (ctdf.ResolvedPlace, error) { return g.Resolve(ctx, destinationText, nil) },
	)
	if err != nil {
		if errors.Is(err, ErrNotFound) && ctx.Err() == nil {
			return ctdf.ResolvedPlace{}, ctdf.ResolvedPlace{}, &GeoError{Message: NotFoundMessage}
		}

		return ctdf.ResolvedPlace{}, ctdf.ResolvedPlace{}, err
	}

	if source.Location.DistanceKm(destination.Location) <= g.Config.RebiasDistanceKm {
		return source, destination, nil
	}

	log.Debug().
		Str("source", sourceText).
		Str("destination", destinationText).
		Msg("Places far apart, re-resolving towards each other")

	source, destination, err = g.resolveBoth(ctx,
		g.resolveTowards(sourceText, destination.Location, source),
		g.resolveTowards(destinationText, source.Location, destination),
	)
	if err != nil {
		return ctdf.ResolvedPlace{}, ctdf.ResolvedPlace{}, err
	}

	if source.Location.DistanceKm(destination.Location) > g.Config.MaxPairDistanceKm {
		return ctdf.ResolvedPlace{}, ctdf.ResolvedPlace{}, &GeoError{Message: TooFarMessage}
	}

	return source, destination, nil
}

// resolveTowards biases the lookup to a point, keeping current when the biased lookup finds nothing
func (g *Geocoder) resolveTowards(text string, bias ctdf.Location, current ctdf.ResolvedPlace) func(context.Context) (ctdf.ResolvedPlace, error) {
	return func(ctx context.Context) (ctdf.ResolvedPlace, error) {
		place, err := g.Resolve(ctx, text, &bias)
		if errors.Is(err, ErrNotFound) {
			return current, nil
		}

		return place, err
	}
}

func (g *Geocoder) resolveBoth(ctx context.Context, resolveSource func(context.Context) (ctdf.ResolvedPlace, error), resolveDestination func(context.Context) (ctdf.ResolvedPlace, error)) (ctdf.ResolvedPlace, ctdf.ResolvedPlace, error) {
	var source, destination ctdf.ResolvedPlace

	resolvePool := pool.New().WithContext(ctx)
	resolvePool.Go(func(ctx context.Context) error {
		var err error
		source, err = resolveSource(ctx)
		return err
	})
	resolvePool.Go(func(ctx context.Context) error {
		var err error
		destination, err = resolveDestination(ctx)
		return err
	})

	err := resolvePool.Wait()

	return source, destination, err
}

// Suggest returns short labels of places inside the region matching a partial query
func (g *Geocoder) Suggest(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < g.Config.SuggestMinQueryLength {
		return []string{}
	}

	ctx, cancel := context.WithTimeout(ctx, g.Config.SuggestTimeout())
	defer cancel()

	bounds := g.Region.Bounds
	candidates, err := g.Provider.Search(ctx, SearchQuery{
		Text:           joinPlace(query, g.Region.State, g.Region.Country),
		Limit:          g.Config.SuggestLimit,
		ViewBox:        &bounds,
		AddressDetails: true,
	})
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("Suggest lookup failed")
		return []string{}
	}

	util.InPlaceFilter(&candidates, func(candidate Candidate) bool {
		return candidate.DisplayName != "" && util.ContainsFold(candidate.State+" "+candidate.DisplayName, g.Region.State)
	})

	seen := map[string]bool{}
	labels := []string{}

	for _, candidate := range candidates {
		key := strings.ToLower(candidate.DisplayName)
		if seen[key] {
			continue
		}
		seen[key] = true

		if label := util.ShortLabel(candidate.DisplayName, 2); label != "" {
			labels = append(labels, label)
		}
	}

	slices.Sort(labels)

	if len(labels) > g.Config.SuggestMaxResults {
		labels = labels[:g.Config.SuggestMaxResults]
	}

	return labels
}

func joinPlace(parts ...string) string {
	kept := []string{}
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, ", ")
}
