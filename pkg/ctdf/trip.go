package ctdf

type Feature string

const (
	FeaturePublic Feature = "public"
	FeatureCab    Feature = "cab"
	FeatureWalk   Feature = "walk"
)

func (f Feature) Valid() bool {
	return f == FeaturePublic || f == FeatureCab || f == FeatureWalk
}

type TripQuery struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Feature     Feature `json:"feature"`
}
