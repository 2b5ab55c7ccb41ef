package predictor

import (
	"math"

	"github.com/travigo/modeadvisor/pkg/config"
)

// HeuristicPredictor is the closed form distance * congestion * rain * mode factor
type HeuristicPredictor struct {
	Config config.PredictorConfig
}

func NewHeuristicPredictor(predictorConfig config.PredictorConfig) *HeuristicPredictor {
	return &HeuristicPredictor{Config: predictorConfig}
}

func (h *HeuristicPredictor) Name() string {
	return "heuristic"
}

func (h *HeuristicPredictor) PredictDelayMinutes(features Features) float64 {
	distance := math.Max(features.DistanceKm, 0)
	traffic := math.Max(features.TrafficIndex, 0)
	rain := math.Max(features.RainMm, 0)

	modeFactor, exists := h.Config.ModeFactors[features.Mode]
	if !exists {
		modeFactor = h.Config.UnknownModeFactor
	}

	delay := distance * (traffic / h.Config.TrafficDivisor) * (1 + math.Min(rain, h.Config.RainCapMm)/h.Config.RainDivisor) * modeFactor

	return math.Max(delay, 0)
}
