package advisor

import (
	"context"
	"math"

	"github.com/travigo/modeadvisor/pkg/conditions"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/predictor"
	"github.com/travigo/modeadvisor/pkg/util"
)

// adviseCab prices a single cab ride over the road route
func (a *Advisor) adviseCab(ctx context.Context, query ctdf.TripQuery, source ctdf.ResolvedPlace, destination ctdf.ResolvedPlace) *ctdf.TripAdvice {
	route := a.route(ctx, source, destination)

	weather := a.Conditions.Weather(ctx, source.Location)
	baseTraffic := a.Conditions.TrafficIndex(source.Location, a.now())

	advice := newAdvice(query, source, destination, route, weather)
	advice.DistanceKm = util.Round(source.Location.DistanceKm(destination.Location), 2)

	if route == nil {
		advice.NoModesMessage = noCabRouteMessage
		return advice
	}

	advice.DistanceKm = route.DistanceKm

	trip := tripContext{Route: route, Weather: weather, BaseTraffic: baseTraffic}
	delay, total, fare := a.cabEstimate(route.DistanceKm, route.DurationMin, trip)

	advice.Rows = append(advice.Rows, ctdf.ModeRow{
		Mode:              ctdf.TransportTypeCab,
		TrafficIndex:      baseTraffic,
		PredictedDelayMin: delay,
		TotalTimeMin:      total,
		Fare:              fare,
		DelayNote:         a.delayNote(delay),
	})

	return advice
}

// adviseWalk estimates a walk along the inflated straight line without calling the router
func (a *Advisor) adviseWalk(ctx context.Context, query ctdf.TripQuery, source ctdf.ResolvedPlace, destination ctdf.ResolvedPlace) *ctdf.TripAdvice {
	settings := a.Config.Suggestions

	straightKm := source.Location.DistanceKm(destination.Location)
	pathKm := math.Min(straightKm*settings.WalkPathFactor, settings.WalkFeatureMaxPathKm)
	walkTime := pathKm / settings.WalkSpeedKmh * 60

	weather := a.Conditions.Weather(ctx, source.Location)
	baseTraffic := a.Conditions.TrafficIndex(source.Location, a.now())
	trafficIndex := conditions.WalkTrafficIndex(a.Config.Traffic, baseTraffic)

	delay := util.Round(a.Predictor.PredictDelayMinutes(predictor.NewFeatures(pathKm, trafficIndex, weather, ctdf.TransportTypeWalk))*settings.WalkDelayScale, 2)

	advice := newAdvice(query, source, destination, nil, weather)
	advice.DistanceKm = util.Round(pathKm, 2)

	advice.Rows = append(advice.Rows, ctdf.ModeRow{
		Mode:              ctdf.TransportTypeWalk,
		TrafficIndex:      util.Round(trafficIndex, 2),
		PredictedDelayMin: delay,
		TotalTimeMin:      a.totalTime(walkTime, delay),
		Fare:              0,
		DelayNote:         walkDelayNote,
	})

	return advice
}
