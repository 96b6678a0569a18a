package agent

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"mcts/game"
	"mcts/game/connect4"
	"mcts/game/tictactoe"
	"mcts/searcher"

	"github.com/stretchr/testify/require"
)

type scriptedReader struct {
	lines []string
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func TestEvaluationAgent(t *testing.T) {
	t.Run("plays the searched move", func(t *testing.T) {
		state := tictactoe.NewGame()
		mcts := searcher.NewMCTS[tictactoe.Move, *tictactoe.Board](searcher.WithIterations(300), searcher.WithSeed(8), searcher.WithMetrics())
		agent := NewEvaluationAgent(mcts)

		m, metric, err := agent.FindMove(state)
		require.NoError(t, err)
		require.Contains(t, state.PossibleMoves(), m)
		require.Equal(t, 300, metric.Iterations, "Metrics should be collected")

		expected, err := searcher.Search(state, searcher.NewRand(8), 300, 1.0)
		require.NoError(t, err)
		require.Equal(t, expected, m)
	})
}

func TestTrainingAgent(t *testing.T) {
	stats := []searcher.MoveStat[int]{
		{Move: 1, Visits: 1},
		{Move: 2, Visits: 3},
	}

	t.Run("unit temperature follows visits", func(t *testing.T) {
		policy := adjustTemperature(stats, 1.0)

		require.InDeltaSlice(t, []float64{0.25, 0.75}, policy, 1e-9)
	})

	t.Run("low temperature sharpens", func(t *testing.T) {
		policy := adjustTemperature(stats, 0.5)

		require.InDeltaSlice(t, []float64{0.1, 0.9}, policy, 1e-9)
	})

	t.Run("sampling", func(t *testing.T) {
		policy := []float64{0.25, 0.75}

		require.Equal(t, 1, sample(stats, policy, 0.1))
		require.Equal(t, 2, sample(stats, policy, 0.3))
		require.Equal(t, 2, sample(stats, policy, 1.0), "Rounding errors should fall back to the last move")
	})

	t.Run("plays legal moves", func(t *testing.T) {
		state := connect4.NewGame()
		mcts := searcher.NewMCTS[connect4.Move, *connect4.Board](searcher.WithIterations(100), searcher.WithSeed(2))
		agent := NewTrainingAgent(mcts, 1.0, 3)

		m, _, err := agent.FindMove(state)
		require.NoError(t, err)
		require.Contains(t, state.PossibleMoves(), m)
	})

	t.Run("panics on zero temperature", func(t *testing.T) {
		mcts := searcher.NewMCTS[connect4.Move, *connect4.Board](searcher.WithIterations(1))

		require.Panics(t, func() {
			NewTrainingAgent(mcts, 0, 1)
		}, "Should panic on a non-positive temperature")
	})
}

func TestRandomAgent(t *testing.T) {
	t.Run("reproducible legal moves", func(t *testing.T) {
		state := connect4.NewGame()
		a := NewRandomAgent[connect4.Move, *connect4.Board](searcher.NewRand(4))
		b := NewRandomAgent[connect4.Move, *connect4.Board](searcher.NewRand(4))

		for i := 0; i < 10; i++ {
			ma, _, err := a.FindMove(state)
			require.NoError(t, err)
			mb, _, err := b.FindMove(state)
			require.NoError(t, err)
			require.Equal(t, ma, mb, "Same seed should give the same moves")
			require.Contains(t, state.PossibleMoves(), ma)
		}
	})

	t.Run("finished game", func(t *testing.T) {
		state := tictactoe.NewGame()
		for _, m := range []tictactoe.Move{1, 4, 2, 5, 3} {
			state.Play(m)
		}
		a := NewRandomAgent[tictactoe.Move, *tictactoe.Board](searcher.NewRand(4))

		_, _, err := a.FindMove(state)
		require.ErrorIs(t, err, game.ErrPreconditionViolation)
	})
}

func TestHumanAgent(t *testing.T) {
	t.Run("move by text", func(t *testing.T) {
		var out bytes.Buffer
		agent := NewHumanAgent[tictactoe.Move, *tictactoe.Board](&scriptedReader{lines: []string{" B2 "}}, &out)

		m, _, err := agent.FindMove(tictactoe.NewGame())
		require.NoError(t, err)
		require.Equal(t, tictactoe.NewMove(1, 1), m)
		require.Contains(t, out.String(), "  5) b2")
	})

	t.Run("move by number after a bad line", func(t *testing.T) {
		var out bytes.Buffer
		agent := NewHumanAgent[tictactoe.Move, *tictactoe.Board](&scriptedReader{lines: []string{"z9", "10", "3"}}, &out)

		m, _, err := agent.FindMove(tictactoe.NewGame())
		require.NoError(t, err)
		require.Equal(t, tictactoe.NewMove(2, 0), m)
		require.Equal(t, 2, bytes.Count(out.Bytes(), []byte("Impossible move")))
	})

	t.Run("move text wins over numbering", func(t *testing.T) {
		state := connect4.NewGame()
		for i := 0; i < connect4.Rows; i++ {
			state.Play(1)
		}
		agent := NewHumanAgent[connect4.Move, *connect4.Board](&scriptedReader{lines: []string{"2"}}, io.Discard)

		m, _, err := agent.FindMove(state)
		require.NoError(t, err)
		require.Equal(t, connect4.Move(2), m, "Column 2 should be chosen, not the second listed move")
	})

	t.Run("end of input", func(t *testing.T) {
		agent := NewHumanAgent[tictactoe.Move, *tictactoe.Board](&scriptedReader{}, io.Discard)

		_, _, err := agent.FindMove(tictactoe.NewGame())
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrNoInput))
	})
}
