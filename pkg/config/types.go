package config

import (
	"time"
	_ "time/tzdata"

	"github.com/travigo/modeadvisor/pkg/ctdf"
)

// AdvisorConfig holds every threshold, factor and endpoint used by the advisory pipeline
type AdvisorConfig struct {
	Region       RegionConfig       `yaml:"region" validate:"required"`
	Geocoding    GeocodingConfig    `yaml:"geocoding" validate:"required"`
	Routing      RoutingConfig      `yaml:"routing" validate:"required"`
	Stations     StationsConfig     `yaml:"stations" validate:"required"`
	Availability AvailabilityConfig `yaml:"availability" validate:"required"`
	Traffic      TrafficConfig      `yaml:"traffic" validate:"required"`
	Weather      ctdf.Weather       `yaml:"weather"`
	Predictor    PredictorConfig    `yaml:"predictor" validate:"required"`
	Assembly     AssemblyConfig     `yaml:"assembly" validate:"required"`
	Fares        FaresConfig        `yaml:"fares" validate:"required"`
	Suggestions  SuggestionsConfig  `yaml:"suggestions" validate:"required"`
}

type RegionConfig struct {
	Name     string      `yaml:"name" validate:"required"`
	City     string      `yaml:"city"`
	State    string      `yaml:"state"`
	Country  string      `yaml:"country"`
	Timezone string      `yaml:"timezone" validate:"required,timezone"`
	Bounds   ctdf.Bounds `yaml:"bounds" validate:"required"`
}

// TimeLocation falls back to UTC when the timezone cannot be loaded
func (r RegionConfig) TimeLocation() *time.Location {
	location, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}

	return location
}

type FallbackPlace struct {
	Names     []string `yaml:"names" validate:"required,min=1,dive,required"`
	Latitude  float64  `yaml:"lat" validate:"latitude"`
	Longitude float64  `yaml:"lon" validate:"longitude"`
	Label     string   `yaml:"label" validate:"required"`
}

type GeocodingConfig struct {
	Endpoint              string          `yaml:"endpoint" validate:"required,url"`
	UserAgent             string          `yaml:"user_agent" validate:"required"`
	TimeoutSeconds        int             `yaml:"timeout_seconds" validate:"gt=0"`
	SuggestTimeoutSeconds int             `yaml:"suggest_timeout_seconds" validate:"gt=0"`
	BiasHalfWidth         float64         `yaml:"bias_half_width" validate:"gt=0"`
	RebiasDistanceKm      float64         `yaml:"rebias_distance_km" validate:"gt=0"`
	MaxPairDistanceKm     float64         `yaml:"max_pair_distance_km" validate:"gtefield=RebiasDistanceKm"`
	CacheExpiry           string          `yaml:"cache_expiry"`
	SuggestLimit          int             `yaml:"suggest_limit" validate:"gt=0"`
	SuggestMaxResults     int             `yaml:"suggest_max_results" validate:"gt=0"`
	SuggestMinQueryLength int             `yaml:"suggest_min_query_length" validate:"gte=0"`
	FallbackPlaces        []FallbackPlace `yaml:"fallback_places" validate:"dive"`
}

func (g GeocodingConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

func (g GeocodingConfig) SuggestTimeout() time.Duration {
	return time.Duration(g.SuggestTimeoutSeconds) * time.Second
}

type RoutingConfig struct {
	Endpoint       string `yaml:"endpoint" validate:"required,url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gt=0"`
	TravelMode     string `yaml:"travel_mode" validate:"required"`
	RouteType      string `yaml:"route_type" validate:"required"`
	Traffic        bool   `yaml:"traffic"`
}

func (r RoutingConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

type StationsConfig struct {
	File     string `yaml:"file"`
	MetroSet string `yaml:"metro_set" validate:"required"`
}

type AvailabilityConfig struct {
	BusMinKm      float64 `yaml:"bus_min_km" validate:"gte=0"`
	BusMaxKm      float64 `yaml:"bus_max_km" validate:"gtefield=BusMinKm"`
	MetroRadiusKm float64 `yaml:"metro_radius_km" validate:"gt=0"`
	MetroMaxKm    float64 `yaml:"metro_max_km" validate:"gt=0"`
	TrainMinKm    float64 `yaml:"train_min_km" validate:"gte=0"`
}

type HourWindow struct {
	StartHour int `yaml:"start_hour" validate:"gte=0,lte=23"`
	EndHour   int `yaml:"end_hour" validate:"gte=0,lte=23,gtefield=StartHour"`
}

// Contains is inclusive at both ends
func (w HourWindow) Contains(hour int) bool {
	return hour >= w.StartHour && hour <= w.EndHour
}

type TrafficConfig struct {
	PeakWindows    []HourWindow `yaml:"peak_windows" validate:"dive"`
	PeakIndex      float64      `yaml:"peak_index" validate:"gte=0"`
	OffPeakIndex   float64      `yaml:"off_peak_index" validate:"gte=0"`
	GuidewayFactor float64      `yaml:"guideway_factor" validate:"gte=0"`
	WalkFactor     float64      `yaml:"walk_factor" validate:"gte=0"`
}

type PredictorConfig struct {
	ModelPath         string                         `yaml:"model_path"`
	TrafficDivisor    float64                        `yaml:"traffic_divisor" validate:"gt=0"`
	RainCapMm         float64                        `yaml:"rain_cap_mm" validate:"gte=0"`
	RainDivisor       float64                        `yaml:"rain_divisor" validate:"gt=0"`
	UnknownModeFactor float64                        `yaml:"unknown_mode_factor" validate:"gte=0"`
	ModeFactors       map[ctdf.TransportType]float64 `yaml:"mode_factors" validate:"required,dive,gte=0"`
	ModeCodes         map[ctdf.TransportType]int     `yaml:"mode_codes" validate:"required"`
}

type GuidewayConfig struct {
	DistanceFactor float64 `yaml:"distance_factor" validate:"gt=0"`
	MinDistanceKm  float64 `yaml:"min_distance_km" validate:"gte=0"`
	SpeedKmh       float64 `yaml:"speed_kmh" validate:"gt=0"`
}

type AssemblyConfig struct {
	Metro                 GuidewayConfig `yaml:"metro"`
	Train                 GuidewayConfig `yaml:"train"`
	MinTotalTimeMin       float64        `yaml:"min_total_time_min" validate:"gte=0"`
	DelayNoteThresholdMin float64        `yaml:"delay_note_threshold_min" validate:"gte=0"`
}

type Fare struct {
	Flat        float64 `yaml:"flat" validate:"gte=0"`
	PerKm       float64 `yaml:"per_km" validate:"gte=0"`
	PerDelayMin float64 `yaml:"per_delay_min" validate:"gte=0"`
}

// Price is flat + perKm*distance + perDelayMin*delay
func (f Fare) Price(distanceKm float64, delayMin float64) float64 {
	return f.Flat + f.PerKm*distanceKm + f.PerDelayMin*delayMin
}

type FaresConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	Bus            Fare   `yaml:"bus"`
	Metro          Fare   `yaml:"metro"`
	Train          Fare   `yaml:"train"`
	Cab            Fare   `yaml:"cab"`
}

func (f FaresConfig) ForMode(mode ctdf.TransportType) Fare {
	switch mode {
	case ctdf.TransportTypeBus:
		return f.Bus
	case ctdf.TransportTypeMetro:
		return f.Metro
	case ctdf.TransportTypeTrain:
		return f.Train
	case ctdf.TransportTypeCab:
		return f.Cab
	default:
		return Fare{}
	}
}

type SuggestionsConfig struct {
	WalkPathFactor       float64 `yaml:"walk_path_factor" validate:"gte=1"`
	WalkSpeedKmh         float64 `yaml:"walk_speed_kmh" validate:"gt=0"`
	WalkMaxPathKm        float64 `yaml:"walk_max_path_km" validate:"gte=0"`
	WalkCompetitiveRatio float64 `yaml:"walk_competitive_ratio" validate:"gte=0"`
	WalkDelayScale       float64 `yaml:"walk_delay_scale" validate:"gte=0"`
	WalkFeatureMaxPathKm float64 `yaml:"walk_feature_max_path_km" validate:"gt=0"`
	CabFallbackSpeedKmh  float64 `yaml:"cab_fallback_speed_kmh" validate:"gt=0"`
	CabNearDistanceKm    float64 `yaml:"cab_near_distance_km" validate:"gte=0"`
	CabCompetitiveRatio  float64 `yaml:"cab_competitive_ratio" validate:"gte=0"`
}
