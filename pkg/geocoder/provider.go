package geocoder

import (
	"context"
	"fmt"
	"strconv"

	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/util"
)

type SearchQuery struct {
	Text           string
	Limit          int
	ViewBox        *ctdf.Bounds
	AddressDetails bool
}

// ViewBoxParameter formats the box as left,top,right,bottom
func (q SearchQuery) ViewBoxParameter() string {
	if q.ViewBox == nil {
		return ""
	}

	return fmt.Sprintf("%s,%s,%s,%s",
		formatCoordinate(q.ViewBox.MinLongitude),
		formatCoordinate(q.ViewBox.MaxLatitude),
		formatCoordinate(q.ViewBox.MaxLongitude),
		formatCoordinate(q.ViewBox.MinLatitude),
	)
}

func (q SearchQuery) CacheKey() string {
	return fmt.Sprintf("GEOCODE:%s:%d:%t:%s", util.NormaliseKey(q.Text), q.Limit, q.AddressDetails, q.ViewBoxParameter())
}

type Candidate struct {
	Location    ctdf.Location `json:"location"`
	DisplayName string        `json:"display_name"`
	State       string        `json:"state"`
}

// Provider is an external geocoding service. An empty result is not an error.
type Provider interface {
	Search(ctx context.Context, query SearchQuery) ([]Candidate, error)
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
