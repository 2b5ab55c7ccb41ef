package advisor

import (
	"context"

	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/util"
)

func (a *Advisor) advisePublic(ctx context.Context, query ctdf.TripQuery, source ctdf.ResolvedPlace, destination ctdf.ResolvedPlace) *ctdf.TripAdvice {
	route := a.route(ctx, source, destination)

	straightKm := util.Round(source.Location.DistanceKm(destination.Location), 2)

	weather := a.Conditions.Weather(ctx, source.Location)
	baseTraffic := a.Conditions.TrafficIndex(source.Location, a.now())

	advice := newAdvice(query, source, destination, route, weather)

	advice.DistanceKm = straightKm
	if advice.RoadKm != nil {
		advice.DistanceKm = *advice.RoadKm
	}

	modes := a.Availability.AvailableModes(advice.RoadKm, route != nil, source.Location, destination.Location)

	trip := tripContext{
		Route:       route,
		StraightKm:  straightKm,
		Weather:     weather,
		BaseTraffic: baseTraffic,
	}

	advice.Rows = a.AssembleRows(modes, trip)
	advice.Suggestions = a.Suggestions(advice.Rows, trip)

	if len(advice.Rows) == 0 {
		advice.NoModesMessage = noPublicModesMessage
	}

	return advice
}
