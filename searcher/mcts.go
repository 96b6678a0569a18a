package searcher

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"mcts/experiments/metrics"
	"mcts/game"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

var ErrNoMoves = fmt.Errorf("%w: no legal moves to search", game.ErrPreconditionViolation)
var ErrNoIterations = fmt.Errorf("%w: search needs at least one iteration", game.ErrPreconditionViolation)

// MoveStat is the record of a root child after a search.
type MoveStat[M game.Move] struct {
	Move   M
	Score  float64
	Visits int
}

func (s MoveStat[M]) WinRatio() float64 {
	return s.Score / float64(s.Visits)
}

// Search runs iterations rounds of MCTS from state and returns the move of the
// root child with the best win ratio. state is not modified.
func Search[M game.Move, B game.Board[M, B]](state *game.State[M, B], rng Rand, iterations int, bias float64) (M, error) {
	stats, err := search(state, &tree{rng: rng, bias: bias, metrics: metrics.NewDummyCollector()}, iterations)
	if err != nil {
		var none M
		return none, err
	}
	return stats[0].Move, nil
}

func search[M game.Move, B game.Board[M, B]](state *game.State[M, B], t *tree, iterations int) ([]MoveStat[M], error) {
	if iterations <= 0 {
		return nil, ErrNoIterations
	}
	if state.IsOver() {
		return nil, ErrNoMoves
	}

	root := buildTree(state, t, iterations)
	stats := root.ranking()

	log.Debug().Int("visits", root.visits).Float64("score", root.score).Msg("search-root")
	for _, s := range stats {
		log.Debug().
			Str("move", fmt.Sprint(s.Move)).
			Float64("score", s.Score).
			Int("visits", s.Visits).
			Float64("ratio", s.WinRatio()).
			Msg("search-child")
	}
	return stats, nil
}

func buildTree[M game.Move, B game.Board[M, B]](state *game.State[M, B], t *tree, iterations int) *node[M, B] {
	var none M
	root := newNode(none, state.Clone(), t)
	for i := 0; i < iterations; i++ {
		root.iterate(state.Clone(), t)
		t.metrics.AddIteration()
	}
	return root
}

// ranking lists the children by win ratio, best first. Incomparable ratios
// keep their expansion order.
func (n *node[M, B]) ranking() []MoveStat[M] {
	stats := make([]MoveStat[M], len(n.children))
	for i, child := range n.children {
		stats[i] = MoveStat[M]{Move: child.move, Score: child.score, Visits: child.visits}
	}
	slices.SortStableFunc(stats, func(a, b MoveStat[M]) int {
		ra, rb := a.WinRatio(), b.WinRatio()
		if math.IsNaN(ra) || math.IsNaN(rb) {
			return 0
		}
		return cmp.Compare(rb, ra)
	})
	return stats
}

type config struct {
	iterations int
	bias       float64
	rng        Rand
	collect    bool
}

type Option func(c *config)

func WithIterations(iterations int) Option {
	return func(c *config) {
		if iterations > 0 {
			c.iterations = iterations
		}
	}
}

func WithBias(bias float64) Option {
	return func(c *config) {
		if bias >= 0 {
			c.bias = bias
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = NewRand(seed)
	}
}

func WithRand(rng Rand) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.collect = true
	}
}

// MCTS searches positions of one game type with a fixed budget and bias.
// It is not safe for concurrent use since searches share its random source.
type MCTS[M game.Move, B game.Board[M, B]] struct {
	config
	metrics metrics.Collector
}

func NewMCTS[M game.Move, B game.Board[M, B]](options ...Option) *MCTS[M, B] {
	c := config{bias: 1.0} // Default values
	for _, option := range options {
		option(&c)
	}
	if c.iterations <= 0 {
		panic("Must specify search iterations")
	}
	if c.rng == nil {
		seed := frand.Uint64n(math.MaxUint64)
		log.Debug().Uint64("seed", seed).Msg("seeding-search")
		c.rng = NewRand(seed)
	}

	m := &MCTS[M, B]{config: c, metrics: metrics.NewDummyCollector()}
	if c.collect {
		m.metrics = metrics.NewCollector()
	}
	return m
}

func (m *MCTS[M, B]) Iterations() int {
	return m.iterations
}

func (m *MCTS[M, B]) Bias() float64 {
	return m.bias
}

// Simulate searches state and returns the root children ranked best first
// along with the search metrics, if collected.
func (m *MCTS[M, B]) Simulate(state *game.State[M, B]) ([]MoveStat[M], metrics.SearchMetric, error) {
	m.metrics.Start(m.bias)
	stats, err := search(state, &tree{rng: m.rng, bias: m.bias, metrics: m.metrics}, m.iterations)
	metric := m.metrics.Complete()
	if err != nil {
		return nil, metric, err
	}
	return stats, metric, nil
}

func (m *MCTS[M, B]) FindNextMove(state *game.State[M, B]) (M, metrics.SearchMetric, error) {
	stats, metric, err := m.Simulate(state)
	if err != nil {
		var none M
		return none, metric, err
	}
	return stats[0].Move, metric, nil
}
