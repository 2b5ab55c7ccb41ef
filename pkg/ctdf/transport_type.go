package ctdf

type TransportType string

const (
	TransportTypeBus   TransportType = "Bus"
	TransportTypeMetro TransportType = "Metro"
	TransportTypeTrain TransportType = "Train"
	TransportTypeCab   TransportType = "Cab"
	TransportTypeWalk  TransportType = "Walk"
)

// IsFixedGuideway reports modes running on dedicated infrastructure, which are largely traffic-insensitive
func (t TransportType) IsFixedGuideway() bool {
	return t == TransportTypeMetro || t == TransportTypeTrain
}
