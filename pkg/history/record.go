package history

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/travigo/modeadvisor/pkg/ctdf"
)

// ModeRecord is the stored subset of a ModeRow
type ModeRecord struct {
	Mode              ctdf.TransportType `json:"mode" bson:"mode"`
	TrafficIndex      float64            `json:"traffic_index" bson:"trafficindex"`
	PredictedDelayMin float64            `json:"predicted_delay" bson:"predicteddelay"`
	TotalTimeMin      float64            `json:"total_time_min" bson:"totaltimemin"`
	Fare              float64            `json:"fare" bson:"fare"`
}

// Record is one attempted trip lookup. Failed lookups are stored with no modes.
type Record struct {
	ID          int64        `json:"id" bson:"id" gorm:"primaryKey;autoIncrement"`
	Timestamp   time.Time    `json:"ts" bson:"ts"`
	Source      string       `json:"source" bson:"source"`
	Destination string       `json:"destination" bson:"destination"`
	RoadKm      float64      `json:"road_km" bson:"roadkm"`
	Feature     ctdf.Feature `json:"feature" bson:"feature" gorm:"index"`
	Modes       []ModeRecord `json:"modes" bson:"modes" gorm:"serializer:json"`
}

func (Record) TableName() string {
	return "searches"
}

// NewRecord captures the outcome of a query; advice is nil when resolution failed
func NewRecord(query ctdf.TripQuery, advice *ctdf.TripAdvice, now time.Time) (*Record, error) {
	record := &Record{
		Timestamp:   now,
		Source:      query.Source,
		Destination: query.Destination,
		Feature:     query.Feature,
		Modes:       []ModeRecord{},
	}

	if record.Feature == "" {
		record.Feature = ctdf.FeaturePublic
	}

	if advice == nil {
		return record, nil
	}

	switch {
	case advice.Feature == ctdf.FeatureWalk:
		record.RoadKm = advice.DistanceKm
	case advice.RoadKm != nil:
		record.RoadKm = *advice.RoadKm
	}

	if err := copier.Copy(&record.Modes, advice.Rows); err != nil {
		return nil, err
	}

	return record, nil
}
