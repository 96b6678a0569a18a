package searcher

import (
	"mcts/experiments/metrics"
	"mcts/game"
)

// tree is what every node of one search shares.
type tree struct {
	rng     Rand
	bias    float64
	metrics metrics.Collector
}

type node[M game.Move, B game.Board[M, B]] struct {
	move     M           // Move leading to this node, zero for the root
	player   game.Player // Player who made move
	score    float64
	visits   int
	untried  []M
	children []*node[M, B]
}

func newNode[M game.Move, B game.Board[M, B]](move M, state *game.State[M, B], t *tree) *node[M, B] {
	untried := state.PossibleMoves()
	t.rng.Shuffle(len(untried), func(i, j int) {
		untried[i], untried[j] = untried[j], untried[i]
	})
	t.metrics.AddNode()

	return &node[M, B]{
		move:     move,
		player:   state.CurrentPlayer().Opponent(),
		untried:  untried,
		children: make([]*node[M, B], 0, len(untried)),
	}
}

// iterate runs one select, expand and rollout pass below n on state, a working
// copy positioned at n, and records the outcome on the way back up.
func (n *node[M, B]) iterate(state *game.State[M, B], t *tree) (winner game.Player, decided bool) {
	switch {
	case len(n.untried) == 0 && len(n.children) == 0: // Terminal node
		winner, decided = state.Board().Winner()
		t.metrics.AddTerminal()

	case len(n.untried) == 0: // Fully expanded node
		child := n.selectChild(t.bias)
		state.Play(child.move)
		winner, decided = child.iterate(state, t)

	default: // Expandable node
		last := len(n.untried) - 1
		move := n.untried[last]
		n.untried = n.untried[:last]

		state.Play(move)
		child := newNode(move, state, t)
		n.children = append(n.children, child)

		winner, decided = rollout(state, t.rng)
		t.metrics.AddRollout()
		child.update(winner, decided)
	}

	n.update(winner, decided)
	return winner, decided
}

// selectChild returns the child with the highest UCB1 score. Ties go to the
// earliest child.
func (n *node[M, B]) selectChild(bias float64) *node[M, B] {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	policy := newUCT(bias, n.visits)
	best := n.children[0]
	maxScore := policy.evaluate(best.score, best.visits)
	for _, child := range n.children[1:] {
		if score := policy.evaluate(child.score, child.visits); score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

func (n *node[M, B]) update(winner game.Player, decided bool) {
	n.visits++
	n.score += reward(winner, decided, n.player)
}

// rollout plays uniformly random moves on state until the side to move is
// stuck, then reports the board's winner.
func rollout[M game.Move, B game.Board[M, B]](state *game.State[M, B], rng Rand) (game.Player, bool) {
	moves := state.PossibleMoves()
	for len(moves) > 0 {
		state.Play(moves[rng.Intn(len(moves))]) // Random rollout policy
		moves = state.PossibleMovesInto(moves[:0])
	}
	return state.Board().Winner()
}
