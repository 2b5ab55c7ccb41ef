package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/senseyeio/duration"
	"github.com/travigo/modeadvisor/pkg/util"
	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYaml []byte

var validate = validator.New()

// Default returns the embedded configuration without any file or environment overrides
func Default() *AdvisorConfig {
	config, err := decode(defaultYaml, &AdvisorConfig{})
	if err != nil {
		log.Fatal().Err(err).Msg("Embedded default config is invalid")
	}

	return config
}

// Load builds the configuration from the embedded defaults, an optional override file
// (TRAVIGO_CONFIG_FILE) and environment variables, then validates the result
func Load() (*AdvisorConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	env := util.GetEnvironmentVariables()

	config := Default()

	if path := env["TRAVIGO_CONFIG_FILE"]; path != "" {
		log.Debug().Str("path", path).Msg("Loading config file")

		fileYaml, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		config, err = decode(fileYaml, config)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	config.ApplyEnvironment(env)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnvironment overrides credentials and endpoints from the environment
func (c *AdvisorConfig) ApplyEnvironment(env map[string]string) {
	if key := util.FirstEnvironmentVariable(env, "TRAVIGO_TOMTOM_API_KEY", "TOMTOM_API_KEY"); key != "" {
		c.Routing.APIKey = key
	}
	if endpoint := env["TRAVIGO_TOMTOM_URL"]; endpoint != "" {
		c.Routing.Endpoint = endpoint
	}
	if endpoint := env["TRAVIGO_NOMINATIM_URL"]; endpoint != "" {
		c.Geocoding.Endpoint = endpoint
	}
	if userAgent := env["TRAVIGO_NOMINATIM_USER_AGENT"]; userAgent != "" {
		c.Geocoding.UserAgent = userAgent
	}
	if modelPath := env["TRAVIGO_MODEL_PATH"]; modelPath != "" {
		c.Predictor.ModelPath = modelPath
	}
	if stationsFile := env["TRAVIGO_STATIONS_FILE"]; stationsFile != "" {
		c.Stations.File = stationsFile
	}
}

func (c *AdvisorConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if _, err := c.Geocoding.CacheExpiryDuration(); err != nil {
		return err
	}

	return nil
}

// CacheExpiryDuration parses the ISO-8601 cache expiry, defaulting to one hour when unset
func (g GeocodingConfig) CacheExpiryDuration() (time.Duration, error) {
	if g.CacheExpiry == "" {
		return time.Hour, nil
	}

	return ParseISODuration(g.CacheExpiry)
}

func ParseISODuration(value string) (time.Duration, error) {
	parsed, err := duration.ParseISO8601(value)
	if err != nil {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q: %w", value, err)
	}

	start := time.Unix(0, 0).UTC()

	return parsed.Shift(start).Sub(start), nil
}

func decode(data []byte, into *AdvisorConfig) (*AdvisorConfig, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(into); err != nil {
		return nil, err
	}

	return into, nil
}
