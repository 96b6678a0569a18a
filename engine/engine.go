package engine

import (
	"errors"

	"mcts/experiments/metrics"
)

const MaxMoves = 10000

var ErrMoveLimit = errors.New("move limit reached")

type Engine interface {
	// Run plays a game till the player to move has no legal move or the move limit is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
