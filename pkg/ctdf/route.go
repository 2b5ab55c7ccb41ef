package ctdf

type RouteResult struct {
	DistanceKm  float64    `json:"distance_km" groups:"basic"`
	DurationMin float64    `json:"duration_min" groups:"basic"`
	Polyline    []Location `json:"polyline" groups:"detailed"`
}
