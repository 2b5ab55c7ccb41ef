package elastic_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/modeadvisor/pkg/ctdf"
)

type adviceEvent struct {
	Timestamp   time.Time            `json:"Timestamp"`
	Feature     ctdf.Feature         `json:"Feature"`
	Source      string               `json:"Source"`
	Destination string               `json:"Destination"`
	Resolved    bool                 `json:"Resolved"`
	Error       string               `json:"Error,omitempty"`
	DistanceKm  float64              `json:"DistanceKm"`
	RoadKm      *float64             `json:"RoadKm"`
	Modes       []ctdf.TransportType `json:"Modes"`
	Fastest     ctdf.TransportType   `json:"Fastest,omitempty"`
	Suggestions int                  `json:"Suggestions"`
}

// AdviceEvents indexes the outcome of every trip lookup into a monthly index
type AdviceEvents struct {
	Now   func() time.Time
	Index func(indexName string, document io.ReadSeeker)
}

func NewAdviceEvents() *AdviceEvents {
	return &AdviceEvents{
		Now:   time.Now,
		Index: IndexRequest,
	}
}

func AdviceIndexName(when time.Time) string {
	return fmt.Sprintf("trip-advice-%d-%d", when.Year(), when.Month())
}

func (e *AdviceEvents) Observe(ctx context.Context, query ctdf.TripQuery, advice *ctdf.TripAdvice, err error) {
	now := e.Now()

	event := adviceEvent{
		Timestamp:   now,
		Feature:     query.Feature,
		Source:      query.Source,
		Destination: query.Destination,
		Modes:       []ctdf.TransportType{},
	}

	if err != nil {
		event.Error = err.Error()
	}

	if advice != nil {
		event.Resolved = true
		event.Feature = advice.Feature
		event.DistanceKm = advice.DistanceKm
		event.RoadKm = advice.RoadKm
		event.Modes = advice.Modes()
		event.Suggestions = len(advice.Suggestions)

		var bestTime float64
		for _, row := range advice.Rows {
			if event.Fastest == "" || row.TotalTimeMin < bestTime {
				event.Fastest = row.Mode
				bestTime = row.TotalTimeMin
			}
		}
	}

	document, marshalErr := json.Marshal(event)
	if marshalErr != nil {
		log.Error().Err(marshalErr).Msg("Failed to encode advice event")
		return
	}

	e.Index(AdviceIndexName(now), bytes.NewReader(document))
}
