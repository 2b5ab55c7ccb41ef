package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/util"
	"golang.org/x/exp/slices"
)

const (
	DashboardAllFeatures = "both"
	noMode               = "-"
)

var ErrUnknownDashboardFilter = errors.New("unknown dashboard feature")

type ModeSummary struct {
	Mode         ctdf.TransportType `json:"mode"`
	Count        int                `json:"count"`
	MeanTimeMin  float64            `json:"mean_time_min"`
	MeanDelayMin float64            `json:"mean_delay_min"`
}

type Cards struct {
	TotalTrips      int     `json:"total_trips"`
	AvgRoadKm       float64 `json:"avg_road_km"`
	FastestMode     string  `json:"fastest_mode"`
	LowestDelayMode string  `json:"lowest_delay_mode"`
}

type DashboardRow struct {
	Timestamp   string             `json:"ts"`
	Source      string             `json:"source"`
	Destination string             `json:"destination"`
	Mode        ctdf.TransportType `json:"mode"`
	TotalTime   float64            `json:"total_time"`
	Delay       float64            `json:"delay"`
	Fare        float64            `json:"fare"`
	Feature     ctdf.Feature       `json:"feature"`
}

type Dashboard struct {
	Feature string         `json:"feature"`
	Modes   []ModeSummary  `json:"modes"`
	Cards   Cards          `json:"cards"`
	Rows    []DashboardRow `json:"rows"`
}

// ParseDashboardFilter maps the feature query value to a store filter; empty means public
func ParseDashboardFilter(value string) (string, ctdf.Feature, error) {
	switch value {
	case "":
		return string(ctdf.FeaturePublic), ctdf.FeaturePublic, nil
	case DashboardAllFeatures:
		return DashboardAllFeatures, "", nil
	}

	feature := ctdf.Feature(value)
	if !feature.Valid() {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownDashboardFilter, value)
	}

	return value, feature, nil
}

func LoadDashboard(ctx context.Context, store Store, filter string) (*Dashboard, error) {
	name, feature, err := ParseDashboardFilter(filter)
	if err != nil {
		return nil, err
	}

	records, err := store.List(ctx, feature, RecentLimit)
	if err != nil {
		return nil, err
	}

	dashboard := BuildDashboard(records)
	dashboard.Feature = name

	return dashboard, nil
}

type modeTotals struct {
	count  int
	times  []float64
	delays []float64
}

// BuildDashboard aggregates records per mode. Modes are reported in name order.
func BuildDashboard(records []Record) *Dashboard {
	totals := map[ctdf.TransportType]*modeTotals{}
	roadKms := []float64{}
	rows := []DashboardRow{}

	for _, record := range records {
		roadKms = append(roadKms, record.RoadKm)

		for _, mode := range record.Modes {
			if mode.Mode == "" {
				continue
			}

			if totals[mode.Mode] == nil {
				totals[mode.Mode] = &modeTotals{}
			}
			totals[mode.Mode].count++
			totals[mode.Mode].times = append(totals[mode.Mode].times, mode.TotalTimeMin)
			totals[mode.Mode].delays = append(totals[mode.Mode].delays, mode.PredictedDelayMin)

			rows = append(rows, DashboardRow{
				Timestamp:   record.Timestamp.Format("2006-01-02 15:04:05"),
				Source:      record.Source,
				Destination: record.Destination,
				Mode:        mode.Mode,
				TotalTime:   mode.TotalTimeMin,
				Delay:       mode.PredictedDelayMin,
				Fare:        mode.Fare,
				Feature:     record.Feature,
			})
		}
	}

	modes := make([]ctdf.TransportType, 0, len(totals))
	for mode := range totals {
		modes = append(modes, mode)
	}
	slices.Sort(modes)

	dashboard := &Dashboard{
		Modes: []ModeSummary{},
		Cards: Cards{
			TotalTrips:      len(records),
			FastestMode:     noMode,
			LowestDelayMode: noMode,
		},
		Rows: rows,
	}

	if len(roadKms) > 0 {
		dashboard.Cards.AvgRoadKm = util.Round(mean(roadKms), 1)
	}

	var fastestTime, lowestDelay float64

	for _, mode := range modes {
		meanTime := mean(totals[mode].times)
		meanDelay := mean(totals[mode].delays)

		dashboard.Modes = append(dashboard.Modes, ModeSummary{
			Mode:         mode,
			Count:        totals[mode].count,
			MeanTimeMin:  util.Round(meanTime, 1),
			MeanDelayMin: util.Round(meanDelay, 1),
		})

		if dashboard.Cards.FastestMode == noMode || meanTime < fastestTime {
			dashboard.Cards.FastestMode = string(mode)
			fastestTime = meanTime
		}
		if dashboard.Cards.LowestDelayMode == noMode || meanDelay < lowestDelay {
			dashboard.Cards.LowestDelayMode = string(mode)
			lowestDelay = meanDelay
		}
	}

	return dashboard
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	total := 0.0
	for _, value := range values {
		total += value
	}

	return total / float64(len(values))
}
