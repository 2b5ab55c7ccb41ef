package conditions

import (
	"context"
	"time"

	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/util"
)

// ContextProvider supplies the live conditions a trip is predicted under
type ContextProvider interface {
	Weather(ctx context.Context, location ctdf.Location) ctdf.Weather
	TrafficIndex(location ctdf.Location, when time.Time) float64
}

// StaticProvider returns a fixed weather snapshot and a peak/off-peak traffic index
type StaticProvider struct {
	Snapshot ctdf.Weather
	Traffic  config.TrafficConfig
	Timezone *time.Location
}

func NewStaticProvider(advisorConfig *config.AdvisorConfig) *StaticProvider {
	return &StaticProvider{
		Snapshot: advisorConfig.Weather,
		Traffic:  advisorConfig.Traffic,
		Timezone: advisorConfig.Region.TimeLocation(),
	}
}

func (p *StaticProvider) Weather(ctx context.Context, location ctdf.Location) ctdf.Weather {
	return p.Snapshot
}

// TrafficIndex uses the hour in the region's timezone; peak windows are inclusive
func (p *StaticProvider) TrafficIndex(location ctdf.Location, when time.Time) float64 {
	hour := when.In(p.Timezone).Hour()

	for _, window := range p.Traffic.PeakWindows {
		if window.Contains(hour) {
			return p.Traffic.PeakIndex
		}
	}

	return p.Traffic.OffPeakIndex
}

// TrafficForMode scales the base index down for fixed-guideway modes and passes every other mode through
func TrafficForMode(traffic config.TrafficConfig, base float64, mode ctdf.TransportType) float64 {
	if mode.IsFixedGuideway() {
		return util.Round(base*traffic.GuidewayFactor, 1)
	}

	return base
}

// WalkTrafficIndex is the reduced index a pedestrian is exposed to
func WalkTrafficIndex(traffic config.TrafficConfig, base float64) float64 {
	return base * traffic.WalkFactor
}
