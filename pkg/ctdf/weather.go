package ctdf

type Weather struct {
	TemperatureC float64 `json:"temperature_c" yaml:"temperature_c" groups:"basic"`
	HumidityPct  float64 `json:"humidity_pct" yaml:"humidity_pct" groups:"basic"`
	RainMm       float64 `json:"rain_mm" yaml:"rain_mm" groups:"basic"`
}
