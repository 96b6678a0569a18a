package agent

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mcts/experiments/metrics"
	"mcts/game"

	"github.com/samber/lo"
)

var ErrNoInput = errors.New("no more input")

// LineReader supplies one line of user input per call, as readline does.
type LineReader interface {
	Readline() (string, error)
}

type humanAgent[M game.Move, B game.Board[M, B]] struct {
	in  LineReader
	out io.Writer
}

// NewHumanAgent returns an agent that asks a person for each move. A move is
// chosen by its text or by its number in the printed list.
func NewHumanAgent[M game.Move, B game.Board[M, B]](in LineReader, out io.Writer) Agent[M, B] {
	return humanAgent[M, B]{in: in, out: out}
}

func (a humanAgent[M, B]) FindMove(state *game.State[M, B]) (M, metrics.SearchMetric, error) {
	moves := state.PossibleMoves()
	fmt.Fprintln(a.out, "Possible moves:")
	for i, m := range moves {
		fmt.Fprintf(a.out, "%3d) %v\n", i+1, m)
	}

	for {
		line, err := a.in.Readline()
		if err != nil {
			var none M
			if errors.Is(err, io.EOF) {
				err = ErrNoInput
			}
			return none, metrics.SearchMetric{}, fmt.Errorf("failed to read move: %w", err)
		}

		if m, ok := choose(moves, line); ok {
			return m, metrics.SearchMetric{}, nil
		}
		fmt.Fprintln(a.out, "Impossible move")
	}
}

// choose matches input against the text of moves first, then against their
// position in the list.
func choose[M game.Move](moves []M, input string) (M, bool) {
	input = strings.TrimSpace(input)
	if m, ok := lo.Find(moves, func(m M) bool {
		return strings.EqualFold(fmt.Sprint(m), input)
	}); ok {
		return m, true
	}

	if i, err := strconv.Atoi(input); err == nil && i >= 1 && i <= len(moves) {
		return moves[i-1], true
	}
	var none M
	return none, false
}
