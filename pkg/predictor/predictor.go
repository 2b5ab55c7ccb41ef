package predictor

import (
	"errors"
	"fmt"

	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
)

// Features is the full input contract of a DelayPredictor
type Features struct {
	DistanceKm   float64            `json:"distance_km"`
	TrafficIndex float64            `json:"traffic_index"`
	RainMm       float64            `json:"rain_mm"`
	HumidityPct  float64            `json:"humidity_pct"`
	TemperatureC float64            `json:"temperature_c"`
	Mode         ctdf.TransportType `json:"mode"`
}

func NewFeatures(distanceKm float64, trafficIndex float64, weather ctdf.Weather, mode ctdf.TransportType) Features {
	return Features{
		DistanceKm:   distanceKm,
		TrafficIndex: trafficIndex,
		RainMm:       weather.RainMm,
		HumidityPct:  weather.HumidityPct,
		TemperatureC: weather.TemperatureC,
		Mode:         mode,
	}
}

// DelayPredictor estimates delay in minutes; the result is never negative
type DelayPredictor interface {
	PredictDelayMinutes(features Features) float64
	Name() string
}

var ErrMalformedOutput = errors.New("model output is not a finite number")

// PredictorFault is a failed trained prediction; it is logged and replaced by the heuristic
type PredictorFault struct {
	Model string
	Err   error
}

func (f *PredictorFault) Error() string {
	return fmt.Sprintf("predictor %s: %s", f.Model, f.Err)
}

func (f *PredictorFault) Unwrap() error {
	return f.Err
}

// ModeCode maps a mode onto the numeric code used in the feature vector, 0 when unknown
func ModeCode(predictorConfig config.PredictorConfig, mode ctdf.TransportType) int {
	return predictorConfig.ModeCodes[mode]
}
