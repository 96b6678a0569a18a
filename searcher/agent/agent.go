package agent

import (
	"mcts/experiments/metrics"
	"mcts/game"
)

type Agent[M game.Move, B game.Board[M, B]] interface {
	// FindMove returns a move for the current player of state and performance metrics (if collected) from the simulation process
	FindMove(state *game.State[M, B]) (M, metrics.SearchMetric, error)
}

// Observer is implemented by agents that need to hear about every move
// played, their own included, to keep track of the game.
type Observer[M game.Move] interface {
	Observe(player game.Player, move M)
}
