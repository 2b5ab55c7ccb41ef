package predictor

import (
	"fmt"
	"math"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/modeadvisor/pkg/config"
	"gopkg.in/yaml.v3"
)

// Artifact is a serialised model: a single expression over the feature vector
type Artifact struct {
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	Expression string `yaml:"expression"`
}

// artifactEnv exposes the ordered vector as x alongside named features
type artifactEnv struct {
	X []float64 `expr:"x"`

	DistanceKm   float64 `expr:"distance_km"`
	TrafficIndex float64 `expr:"traffic_index"`
	RainMm       float64 `expr:"rain_mm"`
	HumidityPct  float64 `expr:"humidity_pct"`
	TemperatureC float64 `expr:"temperature_c"`
	ModeCode     float64 `expr:"mode_code"`
}

type TrainedPredictor struct {
	Artifact Artifact
	Config   config.PredictorConfig
	Fallback DelayPredictor

	program *vm.Program
}

func NewTrainedPredictor(artifact Artifact, predictorConfig config.PredictorConfig) (*TrainedPredictor, error) {
	if artifact.Expression == "" {
		return nil, fmt.Errorf("artifact %s has no expression", artifact.Name)
	}

	program, err := expr.Compile(artifact.Expression, expr.Env(artifactEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compiling artifact %s: %w", artifact.Name, err)
	}

	return &TrainedPredictor{
		Artifact: artifact,
		Config:   predictorConfig,
		Fallback: NewHeuristicPredictor(predictorConfig),
		program:  program,
	}, nil
}

func LoadArtifact(path string) (Artifact, error) {
	var artifact Artifact

	artifactYaml, err := os.ReadFile(path)
	if err != nil {
		return artifact, err
	}

	if err := yaml.Unmarshal(artifactYaml, &artifact); err != nil {
		return artifact, fmt.Errorf("parsing artifact %s: %w", path, err)
	}

	if artifact.Name == "" {
		artifact.Name = path
	}

	return artifact, nil
}

func (p *TrainedPredictor) Name() string {
	return p.Artifact.Name
}

func (p *TrainedPredictor) PredictDelayMinutes(features Features) float64 {
	delay, err := p.Predict(features)
	if err != nil {
		log.Warn().Err(err).Str("mode", string(features.Mode)).Msg("Trained predictor failed, using heuristic")

		return p.Fallback.PredictDelayMinutes(features)
	}

	return delay
}

// Predict runs the artifact, returning a *PredictorFault instead of falling back
func (p *TrainedPredictor) Predict(features Features) (float64, error) {
	env := artifactEnv{
		DistanceKm:   math.Max(features.DistanceKm, 0),
		TrafficIndex: math.Max(features.TrafficIndex, 0),
		RainMm:       math.Max(features.RainMm, 0),
		HumidityPct:  features.HumidityPct,
		TemperatureC: features.TemperatureC,
		ModeCode:     float64(ModeCode(p.Config, features.Mode)),
	}
	env.X = []float64{env.DistanceKm, env.TrafficIndex, env.RainMm, env.HumidityPct, env.TemperatureC, env.ModeCode}

	output, err := expr.Run(p.program, env)
	if err != nil {
		return 0, &PredictorFault{Model: p.Artifact.Name, Err: err}
	}

	value, ok := output.(float64)
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &PredictorFault{Model: p.Artifact.Name, Err: fmt.Errorf("%w: %v", ErrMalformedOutput, output)}
	}

	return math.Max(value, 0), nil
}
