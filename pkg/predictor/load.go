package predictor

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
)

// Load probes the configured artifact and falls back to the heuristic when it is missing or unusable
func Load(predictorConfig config.PredictorConfig) DelayPredictor {
	heuristic := NewHeuristicPredictor(predictorConfig)

	if predictorConfig.ModelPath == "" {
		log.Info().Msg("No model configured, using heuristic predictor")
		return heuristic
	}

	artifact, err := LoadArtifact(predictorConfig.ModelPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", predictorConfig.ModelPath).Msg("Model not found, using heuristic predictor")
		return heuristic
	} else if err != nil {
		log.Warn().Err(err).Msg("Model load failed, using heuristic predictor")
		return heuristic
	}

	trained, err := NewTrainedPredictor(artifact, predictorConfig)
	if err != nil {
		log.Warn().Err(err).Msg("Model load failed, using heuristic predictor")
		return heuristic
	}

	probe := Features{DistanceKm: 10, TrafficIndex: 30, HumidityPct: 70, TemperatureC: 24, Mode: ctdf.TransportTypeBus}
	if _, err := trained.Predict(probe); err != nil {
		log.Warn().Err(err).Msg("Model probe failed, using heuristic predictor")
		return heuristic
	}

	log.Info().Str("model", artifact.Name).Str("version", artifact.Version).Msg("Loaded trained delay predictor")

	return trained
}
