package advisor

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/modeadvisor/pkg/availability"
	"github.com/travigo/modeadvisor/pkg/conditions"
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/geocoder"
	"github.com/travigo/modeadvisor/pkg/predictor"
	"github.com/travigo/modeadvisor/pkg/redis_client"
	"github.com/travigo/modeadvisor/pkg/routing"
	"github.com/travigo/modeadvisor/pkg/stations"
)

// NewFromConfig wires the production providers. Geocoding is cached in redis when a client is connected.
func NewFromConfig(advisorConfig *config.AdvisorConfig) (*Advisor, error) {
	catalogue, err := stations.Load(advisorConfig.Stations.File)
	if err != nil {
		return nil, err
	}

	var provider geocoder.Provider = geocoder.NewNominatimProvider(advisorConfig.Geocoding)

	if redis_client.Client != nil {
		expiry, err := advisorConfig.Geocoding.CacheExpiryDuration()
		if err != nil {
			return nil, err
		}

		provider = geocoder.NewCachedProvider(provider, redis_client.Client, expiry)
		log.Info().Dur("expiry", expiry).Msg("Geocode results cached in redis")
	}

	if advisorConfig.Routing.APIKey == "" {
		log.Warn().Msg("TomTom API key not set, trips will be advised without road routes")
	}

	return &Advisor{
		Config:       advisorConfig,
		Places:       geocoder.NewGeocoder(provider, advisorConfig.Region, advisorConfig.Geocoding),
		Router:       routing.NewTomTomRouter(advisorConfig.Routing),
		Availability: availability.NewEngine(advisorConfig, catalogue),
		Conditions:   conditions.NewStaticProvider(advisorConfig),
		Predictor:    predictor.Load(advisorConfig.Predictor),
	}, nil
}
