package agent

import (
	"math"

	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

type trainingAgent[M game.Move, B game.Board[M, B]] struct {
	mcts        *searcher.MCTS[M, B]
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play. It samples root moves in
// proportion to visits^(1/temperature) instead of always playing the best one.
func NewTrainingAgent[M game.Move, B game.Board[M, B]](mcts *searcher.MCTS[M, B], temperature float64, seed uint64) Agent[M, B] {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return trainingAgent[M, B]{mcts: mcts, temperature: temperature, rng: searcher.NewRand(seed)}
}

func (a trainingAgent[M, B]) FindMove(state *game.State[M, B]) (M, metrics.SearchMetric, error) {
	stats, metric, err := a.mcts.Simulate(state)
	if err != nil {
		var none M
		return none, metric, err
	}
	policy := adjustTemperature(stats, a.temperature)
	return sample(stats, policy, a.rng.Float64()), metric, nil
}

// adjustTemperature returns the temperature-adjusted probability of each move.
func adjustTemperature[M game.Move](stats []searcher.MoveStat[M], temperature float64) []float64 {
	exponent := 1.0 / temperature
	weights := lo.Map(stats, func(s searcher.MoveStat[M], _ int) float64 {
		return math.Pow(float64(s.Visits), exponent)
	})
	sum := lo.Sum(weights)
	// Normalize
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

func sample[M game.Move](stats []searcher.MoveStat[M], policy []float64, sampled float64) M {
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return stats[i].Move
		}
	}
	return stats[len(stats)-1].Move // Fallback in case of rounding errors
}
