package ctdf

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

type Location struct {
	Latitude  float64 `json:"lat" groups:"basic"`
	Longitude float64 `json:"lon" groups:"basic"`
}

func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

func (l Location) String() string {
	return fmt.Sprintf("%.6f,%.6f", l.Latitude, l.Longitude)
}

// DistanceKm is the great-circle (haversine) distance between two locations
func (l Location) DistanceKm(other Location) float64 {
	lat1 := l.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	deltaLat := (other.Latitude - l.Latitude) * math.Pi / 180
	deltaLon := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// MinDistanceKm returns the distance to the closest of the given locations, or +Inf when there are none
func (l Location) MinDistanceKm(locations []Location) float64 {
	best := math.Inf(1)

	for _, location := range locations {
		if distance := l.DistanceKm(location); distance < best {
			best = distance
		}
	}

	return best
}

type Bounds struct {
	MinLatitude  float64 `yaml:"min_lat" json:"min_lat" validate:"gte=-90,lte=90"`
	MaxLatitude  float64 `yaml:"max_lat" json:"max_lat" validate:"gte=-90,lte=90,gtefield=MinLatitude"`
	MinLongitude float64 `yaml:"min_lon" json:"min_lon" validate:"gte=-180,lte=180"`
	MaxLongitude float64 `yaml:"max_lon" json:"max_lon" validate:"gte=-180,lte=180,gtefield=MinLongitude"`
}

// BoundsAround builds a square box of halfWidth degrees centred on l
func BoundsAround(l Location, halfWidth float64) Bounds {
	return Bounds{
		MinLatitude:  l.Latitude - halfWidth,
		MaxLatitude:  l.Latitude + halfWidth,
		MinLongitude: l.Longitude - halfWidth,
		MaxLongitude: l.Longitude + halfWidth,
	}
}

func (b Bounds) Contains(l Location) bool {
	return l.Latitude >= b.MinLatitude && l.Latitude <= b.MaxLatitude &&
		l.Longitude >= b.MinLongitude && l.Longitude <= b.MaxLongitude
}
