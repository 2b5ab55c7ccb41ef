package advisor

import (
	"fmt"
	"math"

	"github.com/travigo/modeadvisor/pkg/conditions"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/predictor"
	"github.com/travigo/modeadvisor/pkg/util"
)

// Suggestions compares walking and a cab against the fastest public row
func (a *Advisor) Suggestions(rows []ctdf.ModeRow, trip tripContext) []ctdf.Suggestion {
	suggestions := []ctdf.Suggestion{}

	if walk, ok := a.walkSuggestion(rows, trip); ok {
		suggestions = append(suggestions, walk)
	}

	if cab, ok := a.cabSuggestion(rows, trip); ok {
		suggestions = append(suggestions, cab)
	}

	return suggestions
}

func (a *Advisor) walkSuggestion(rows []ctdf.ModeRow, trip tripContext) (ctdf.Suggestion, bool) {
	settings := a.Config.Suggestions

	pathKm := trip.StraightKm * settings.WalkPathFactor
	walkTime := pathKm / settings.WalkSpeedKmh * 60

	minPublic, hasPublic := minTotalTime(rows)

	walkable := pathKm <= settings.WalkMaxPathKm
	competitive := hasPublic && walkTime <= minPublic*settings.WalkCompetitiveRatio
	if !walkable && !competitive {
		return ctdf.Suggestion{}, false
	}

	trafficIndex := conditions.WalkTrafficIndex(a.Config.Traffic, trip.BaseTraffic)
	delay := util.Round(a.Predictor.PredictDelayMinutes(predictor.NewFeatures(pathKm, trafficIndex, trip.Weather, ctdf.TransportTypeWalk))*settings.WalkDelayScale, 2)
	total := a.totalTime(walkTime, delay)

	return ctdf.Suggestion{
		Type:   ctdf.SuggestionTypeWalk,
		Title:  walkSuggestionTitle,
		Detail: fmt.Sprintf("~%s km · ~%d min", util.FormatDecimal(util.Round(pathKm, 2)), int(math.Round(total))),
		Note:   walkSuggestionNote,
	}, true
}

// cabSuggestion needs a road route; it is always offered when no public row exists
func (a *Advisor) cabSuggestion(rows []ctdf.ModeRow, trip tripContext) (ctdf.Suggestion, bool) {
	if trip.Route == nil {
		return ctdf.Suggestion{}, false
	}

	settings := a.Config.Suggestions
	roadKm := trip.Route.DistanceKm

	cabTime := trip.Route.DurationMin
	if cabTime <= 0 {
		cabTime = roadKm / settings.CabFallbackSpeedKmh * 60
	}

	_, total, fare := a.cabEstimate(roadKm, cabTime, trip)

	minPublic, hasPublic := minTotalTime(rows)

	fasterNearby := hasPublic && roadKm <= settings.CabNearDistanceKm && total < minPublic*settings.CabCompetitiveRatio
	if !fasterNearby && hasPublic {
		return ctdf.Suggestion{}, false
	}

	return ctdf.Suggestion{
		Type:   ctdf.SuggestionTypeCab,
		Title:  cabSuggestionTitle,
		Detail: fmt.Sprintf("%s km · ETA ~%d min", util.FormatDecimal(roadKm), int(math.Round(total))),
		Note:   fmt.Sprintf("Est. fare %s%s", a.Config.Fares.CurrencySymbol, util.FormatDecimal(fare)),
	}, true
}

func (a *Advisor) cabEstimate(roadKm float64, cabTime float64, trip tripContext) (delay float64, total float64, fare float64) {
	delay = util.Round(a.Predictor.PredictDelayMinutes(predictor.NewFeatures(roadKm, trip.BaseTraffic, trip.Weather, ctdf.TransportTypeCab)), 2)
	total = a.totalTime(cabTime, delay)
	fare = util.Round(a.Config.Fares.Cab.Price(roadKm, delay), 2)

	return delay, total, fare
}
