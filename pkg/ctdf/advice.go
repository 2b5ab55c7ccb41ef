package ctdf

type ModeRow struct {
	Mode              TransportType `json:"mode" groups:"basic"`
	TrafficIndex      float64       `json:"traffic_index" groups:"basic"`
	PredictedDelayMin float64       `json:"predicted_delay_min" groups:"basic"`
	TotalTimeMin      float64       `json:"total_time_min" groups:"basic"`
	Fare              float64       `json:"fare" groups:"basic"`
	DelayNote         string        `json:"delay_note" groups:"basic"`
}

type SuggestionType string

const (
	SuggestionTypeWalk SuggestionType = "Walk"
	SuggestionTypeCab  SuggestionType = "Cab"
)

type Suggestion struct {
	Type   SuggestionType `json:"type" groups:"basic"`
	Title  string         `json:"title" groups:"basic"`
	Detail string         `json:"detail" groups:"basic"`
	Note   string         `json:"note" groups:"basic"`
}

type MapMarker struct {
	Latitude  float64 `json:"lat" groups:"basic"`
	Longitude float64 `json:"lon" groups:"basic"`
	Label     string  `json:"label" groups:"basic"`
}

func NewMapMarker(location Location, label string) MapMarker {
	return MapMarker{Latitude: location.Latitude, Longitude: location.Longitude, Label: label}
}

type MapData struct {
	Source       MapMarker  `json:"src" groups:"basic"`
	Destination  MapMarker  `json:"dst" groups:"basic"`
	RoadPolyline []Location `json:"road_polyline" groups:"detailed"`
}

// TripAdvice is the complete answer for one TripQuery
type TripAdvice struct {
	Feature     Feature `json:"feature" groups:"basic"`
	Source      string  `json:"source" groups:"basic"`
	Destination string  `json:"destination" groups:"basic"`

	Rows        []ModeRow    `json:"rows" groups:"basic"`
	Suggestions []Suggestion `json:"suggestions" groups:"basic"`

	DistanceKm float64  `json:"distance_km" groups:"basic"`
	RoadKm     *float64 `json:"road_km" groups:"basic"`

	Weather Weather `json:"weather" groups:"basic"`
	Map     MapData `json:"map" groups:"basic"`

	NoModesMessage string `json:"no_modes_message,omitempty" groups:"basic"`
}

func (a *TripAdvice) Modes() []TransportType {
	modes := []TransportType{}
	for _, row := range a.Rows {
		modes = append(modes, row.Mode)
	}

	return modes
}
