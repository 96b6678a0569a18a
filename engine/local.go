package engine

import (
	"fmt"
	"io"
	"time"

	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher/agent"

	"github.com/rs/zerolog/log"
)

type options struct {
	out      io.Writer
	maxMoves int
}

type Option func(o *options)

func (o options) print(a ...any) {
	if o.out != nil {
		fmt.Fprint(o.out, a...)
	}
}

func (o options) printf(format string, a ...any) {
	if o.out != nil {
		fmt.Fprintf(o.out, format, a...)
	}
}

// WithOutput prints the board before every move and announces turns and the
// result on w.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

func WithMaxMoves(moves int) Option {
	return func(o *options) {
		if moves > 0 {
			o.maxMoves = moves
		}
	}
}

// Local plays a game between two agents in process. Agents are indexed by
// player: White first.
type Local[M game.Move, B game.Board[M, B]] struct {
	State  *game.State[M, B]
	Agents [2]agent.Agent[M, B]
	options
}

func LocalEngine[M game.Move, B game.Board[M, B]](board B, white, black agent.Agent[M, B], opts ...Option) *Local[M, B] {
	o := options{maxMoves: MaxMoves} // Default values
	for _, opt := range opts {
		opt(&o)
	}

	return &Local[M, B]{
		State:   game.NewState[M](board),
		Agents:  [2]agent.Agent[M, B]{white, black},
		options: o,
	}
}

// Run executes the game loop until the player to move is stuck. Agents are not
// consulted when only one move is legal. Agents implementing agent.Observer
// are told about every move.
func (e *Local[M, B]) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.CurrentPlayer(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %s is starting", e.State.CurrentPlayer())

	for step := 1; ; step++ {
		e.print(e.State.Board())

		moves := e.State.PossibleMoves()
		if len(moves) == 0 {
			break
		}
		if step > e.maxMoves {
			return gameMetric, moveMetrics, fmt.Errorf("%w: %d moves played", ErrMoveLimit, e.maxMoves)
		}

		player := e.State.CurrentPlayer()
		e.printf("%s turn\n", player)

		record := metrics.MoveMetric{Step: step, Player: player}
		var move M
		if len(moves) == 1 {
			move = moves[0]
			record.Shortcut = true
		} else {
			m, searchMetric, err := e.Agents[player].FindMove(e.State)
			if err != nil {
				return gameMetric, moveMetrics, fmt.Errorf("failed to find move %d for %s: %w", step, player, err)
			}
			move = m
			record.SearchMetric = searchMetric
		}
		record.Move = fmt.Sprint(move)

		e.printf("%s player played %s\n", player, record.Move)
		log.Debug().Int("step", step).Str("player", player.String()).Str("move", record.Move).Msg("move-played")

		e.State.Play(move)
		moveMetrics = append(moveMetrics, record)
		for _, a := range e.Agents {
			if o, ok := a.(agent.Observer[M]); ok {
				o.Observe(player, move)
			}
		}
	}

	winner, decided, err := e.State.Winner()
	if err != nil {
		return gameMetric, moveMetrics, err
	}

	gameMetric.Winner = winner
	gameMetric.Draw = !decided
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if decided {
		e.printf("%s won\n", winner)
	} else {
		e.print("Draw\n")
	}
	log.Debug().Msgf("game over after %d moves: %s", gameMetric.TotalMoves, gameMetric.Result())

	return gameMetric, moveMetrics, nil
}
