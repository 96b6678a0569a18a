package searcher

import (
	"mcts/game"

	"golang.org/x/exp/rand"
)

// Rewards credited to the player who made the move leading to a node
const WIN = 1.0
const DRAW = 0.5
const LOSS = 0.0

// Rand is the single source of randomness of a search. Untried moves are
// shuffled and rollout moves are drawn from it, so a seeded source makes a
// search reproducible.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a deterministic source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// reward scores an outcome from the perspective of player.
func reward(winner game.Player, decided bool, player game.Player) float64 {
	if !decided {
		return DRAW
	}
	if winner == player {
		return WIN
	}
	return LOSS
}
