package agent

import (
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"
)

type evaluationAgent[M game.Move, B game.Board[M, B]] struct {
	mcts *searcher.MCTS[M, B]
}

// NewEvaluationAgent returns a new agent for actual game play: it always plays
// the move with the best win ratio.
func NewEvaluationAgent[M game.Move, B game.Board[M, B]](mcts *searcher.MCTS[M, B]) Agent[M, B] {
	return evaluationAgent[M, B]{mcts: mcts}
}

func (a evaluationAgent[M, B]) FindMove(state *game.State[M, B]) (M, metrics.SearchMetric, error) {
	return a.mcts.FindNextMove(state)
}
