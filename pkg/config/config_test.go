package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/modeadvisor/pkg/ctdf"
)

func TestDefault(t *testing.T) {
	config := Default()

	require.NoError(t, config.Validate())

	assert.Equal(t, "Asia/Kolkata", config.Region.Timezone)
	assert.Equal(t, 11.5, config.Region.Bounds.MinLatitude)
	assert.Equal(t, 78.7, config.Region.Bounds.MaxLongitude)

	assert.Equal(t, 3.5, config.Availability.MetroRadiusKm)
	assert.Equal(t, 120.0, config.Availability.TrainMinKm)

	assert.Equal(t, 6.0, config.Predictor.ModeFactors[ctdf.TransportTypeBus])
	assert.Equal(t, 2, config.Predictor.ModeCodes[ctdf.TransportTypeMetro])

	assert.Len(t, config.Traffic.PeakWindows, 2)
	assert.Len(t, config.Geocoding.FallbackPlaces, 3)
	assert.Equal(t, 12*time.Second, config.Geocoding.Timeout())
	assert.Equal(t, 15*time.Second, config.Routing.Timeout())
}

func TestHourWindow(t *testing.T) {
	window := HourWindow{StartHour: 8, EndHour: 11}

	assert.False(t, window.Contains(7))
	assert.True(t, window.Contains(8))
	assert.True(t, window.Contains(11))
	assert.False(t, window.Contains(12))
}

func TestFarePrice(t *testing.T) {
	fares := Default().Fares

	assert.Equal(t, 30.0, fares.ForMode(ctdf.TransportTypeBus).Price(10, 0))
	assert.Equal(t, 40.0, fares.ForMode(ctdf.TransportTypeMetro).Price(10, 0))
	assert.Equal(t, 28.0, fares.ForMode(ctdf.TransportTypeTrain).Price(10, 0))
	assert.Equal(t, 185.0, fares.ForMode(ctdf.TransportTypeCab).Price(10, 10))
	assert.Equal(t, 0.0, fares.ForMode(ctdf.TransportTypeWalk).Price(10, 10))
}

func TestParseISODuration(t *testing.T) {
	parsed, err := ParseISODuration("PT90M")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, parsed)

	parsed, err = ParseISODuration("P1D")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, parsed)

	_, err = ParseISODuration("ninety minutes")
	assert.Error(t, err)
}

func TestApplyEnvironment(t *testing.T) {
	config := Default()

	config.ApplyEnvironment(map[string]string{
		"TOMTOM_API_KEY":        "plain",
		"TRAVIGO_MODEL_PATH":    "/models/delay.yml",
		"TRAVIGO_NOMINATIM_URL": "http://localhost:8080/search",
	})

	assert.Equal(t, "plain", config.Routing.APIKey)
	assert.Equal(t, "/models/delay.yml", config.Predictor.ModelPath)
	assert.Equal(t, "http://localhost:8080/search", config.Geocoding.Endpoint)

	config.ApplyEnvironment(map[string]string{
		"TOMTOM_API_KEY":         "plain",
		"TRAVIGO_TOMTOM_API_KEY": "prefixed",
	})
	assert.Equal(t, "prefixed", config.Routing.APIKey)
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yml")
	require.NoError(t, os.WriteFile(path, []byte("availability:\n  metro_radius_km: 5\n"), 0o600))

	t.Setenv("TRAVIGO_CONFIG_FILE", path)
	t.Setenv("TRAVIGO_TOMTOM_API_KEY", "abc")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5.0, config.Availability.MetroRadiusKm)
	assert.Equal(t, 40.0, config.Availability.MetroMaxKm)
	assert.Equal(t, "abc", config.Routing.APIKey)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yml")
	require.NoError(t, os.WriteFile(path, []byte("availability:\n  metro_radius_km: -1\n"), 0o600))

	t.Setenv("TRAVIGO_CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yml")
	require.NoError(t, os.WriteFile(path, []byte("availability:\n  tram_radius_km: 2\n"), 0o600))

	t.Setenv("TRAVIGO_CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}
