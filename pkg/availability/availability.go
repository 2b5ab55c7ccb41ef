package availability

import (
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/stations"
	"golang.org/x/exp/slices"
)

// Engine decides which public modes can plausibly serve a trip from geography alone
type Engine struct {
	Region ctdf.Bounds
	Config config.AvailabilityConfig
	Metro  []ctdf.Location
}

func NewEngine(advisorConfig *config.AdvisorConfig, catalogue *stations.Catalogue) *Engine {
	return &Engine{
		Region: advisorConfig.Region.Bounds,
		Config: advisorConfig.Availability,
		Metro:  catalogue.Locations(advisorConfig.Stations.MetroSet),
	}
}

// AvailableModes returns Bus, Metro and Train in that order where each rule holds.
// Nothing is available without a road distance.
func (e *Engine) AvailableModes(roadKm *float64, hasRoute bool, source ctdf.Location, destination ctdf.Location) []ctdf.TransportType {
	modes := []ctdf.TransportType{}

	if roadKm == nil {
		return modes
	}
	distance := *roadKm

	insideRegion := e.Region.Contains(source) && e.Region.Contains(destination)

	if hasRoute && insideRegion && distance >= e.Config.BusMinKm && distance <= e.Config.BusMaxKm {
		modes = appendUnique(modes, ctdf.TransportTypeBus)
	}

	if source.MinDistanceKm(e.Metro) <= e.Config.MetroRadiusKm &&
		destination.MinDistanceKm(e.Metro) <= e.Config.MetroRadiusKm &&
		distance <= e.Config.MetroMaxKm {
		modes = appendUnique(modes, ctdf.TransportTypeMetro)
	}

	if distance >= e.Config.TrainMinKm && insideRegion {
		modes = appendUnique(modes, ctdf.TransportTypeTrain)
	}

	return modes
}

func appendUnique(modes []ctdf.TransportType, mode ctdf.TransportType) []ctdf.TransportType {
	if slices.Contains(modes, mode) {
		return modes
	}

	return append(modes, mode)
}
