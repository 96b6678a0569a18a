package agent

import (
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"

	"github.com/samber/lo"
)

type randomAgent[M game.Move, B game.Board[M, B]] struct {
	rng searcher.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal moves.
func NewRandomAgent[M game.Move, B game.Board[M, B]](rng searcher.Rand) Agent[M, B] {
	return randomAgent[M, B]{rng: rng}
}

func (a randomAgent[M, B]) FindMove(state *game.State[M, B]) (M, metrics.SearchMetric, error) {
	moves := state.PossibleMoves()
	if len(moves) == 0 {
		var none M
		return none, metrics.SearchMetric{}, searcher.ErrNoMoves
	}
	return lo.SampleBy(moves, a.rng.Intn), metrics.SearchMetric{}, nil
}
