package advisor

import (
	"fmt"
	"math"

	"github.com/travigo/modeadvisor/pkg/conditions"
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/predictor"
	"github.com/travigo/modeadvisor/pkg/util"
)

// tripContext is everything about a resolved trip that rows and suggestions are derived from
type tripContext struct {
	Route       *ctdf.RouteResult
	StraightKm  float64
	Weather     ctdf.Weather
	BaseTraffic float64
}

func (t tripContext) roadOrStraightKm() float64 {
	if t.Route != nil {
		return t.Route.DistanceKm
	}

	return t.StraightKm
}

// AssembleRows builds one row per available mode in the given order.
// Bus is skipped without a route since its time comes from the router.
func (a *Advisor) AssembleRows(modes []ctdf.TransportType, trip tripContext) []ctdf.ModeRow {
	rows := []ctdf.ModeRow{}

	for _, mode := range modes {
		var distance, baseTime float64

		switch mode {
		case ctdf.TransportTypeBus:
			if trip.Route == nil {
				continue
			}
			distance = trip.Route.DistanceKm
			baseTime = trip.Route.DurationMin
		case ctdf.TransportTypeMetro:
			distance, baseTime = guidewayLeg(a.Config.Assembly.Metro, trip.roadOrStraightKm())
		case ctdf.TransportTypeTrain:
			distance, baseTime = guidewayLeg(a.Config.Assembly.Train, trip.roadOrStraightKm())
		default:
			continue
		}

		trafficIndex := conditions.TrafficForMode(a.Config.Traffic, trip.BaseTraffic, mode)
		delay := util.Round(a.Predictor.PredictDelayMinutes(predictor.NewFeatures(distance, trafficIndex, trip.Weather, mode)), 2)

		rows = append(rows, ctdf.ModeRow{
			Mode:              mode,
			TrafficIndex:      trafficIndex,
			PredictedDelayMin: delay,
			TotalTimeMin:      a.totalTime(baseTime, delay),
			Fare:              util.Round(a.Config.Fares.ForMode(mode).Price(distance, 0), 2),
			DelayNote:         a.delayNote(delay),
		})
	}

	return rows
}

// guidewayLeg scales road distance to the track length and times it at line speed
func guidewayLeg(guideway config.GuidewayConfig, roadKm float64) (distance float64, baseTime float64) {
	distance = math.Max(roadKm*guideway.DistanceFactor, guideway.MinDistanceKm)
	baseTime = distance / guideway.SpeedKmh * 60

	return distance, baseTime
}

func (a *Advisor) totalTime(baseTime float64, delay float64) float64 {
	return util.Round(math.Max(baseTime+delay, a.Config.Assembly.MinTotalTimeMin), 2)
}

func (a *Advisor) delayNote(delay float64) string {
	if delay < a.Config.Assembly.DelayNoteThresholdMin {
		return noSignificantDelayNote
	}

	return fmt.Sprintf("~%s min delay", util.FormatDecimal(delay))
}

func minTotalTime(rows []ctdf.ModeRow) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}

	best := math.Inf(1)
	for _, row := range rows {
		best = math.Min(best, row.TotalTimeMin)
	}

	return best, true
}
