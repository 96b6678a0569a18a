package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// pile is a take-away game: players remove 1 or 2 stones, whoever takes the
// last stone wins.
type pile struct {
	stones int
	last   Player
	played []int
}

func (p *pile) PossibleMovesInto(_ Player, moves []int) []int {
	for take := 1; take <= 2 && take <= p.stones; take++ {
		moves = append(moves, take)
	}
	return moves
}

func (p *pile) Play(player Player, take int) {
	p.stones -= take
	p.last = player
	p.played = append(p.played, take)
}

func (p *pile) Winner() (Player, bool) {
	return p.last, true
}

func (p *pile) Clone() *pile {
	clone := *p
	clone.played = append([]int(nil), p.played...)
	return &clone
}

func TestPlayer(t *testing.T) {
	t.Run("opponent is an involution", func(t *testing.T) {
		for _, p := range []Player{White, Black} {
			require.NotEqual(t, p, p.Opponent(), "Opponent should differ from the player")
			require.Equal(t, p, p.Opponent().Opponent(), "Opponent of opponent should be the player")
		}
	})

	t.Run("string", func(t *testing.T) {
		require.Equal(t, "White", White.String())
		require.Equal(t, "Black", Black.String())
	})
}

func TestState(t *testing.T) {
	t.Run("white moves first", func(t *testing.T) {
		state := NewState[int](&pile{stones: 3})

		require.Equal(t, White, state.CurrentPlayer(), "White should move first")
		require.Equal(t, []int{1, 2}, state.PossibleMoves())
	})

	t.Run("play passes the turn", func(t *testing.T) {
		state := NewState[int](&pile{stones: 3})

		state.Play(1)
		require.Equal(t, Black, state.CurrentPlayer(), "Turn should pass to Black")
		require.Equal(t, 2, state.Board().stones)

		state.Play(2)
		require.Equal(t, White, state.CurrentPlayer(), "Turn should pass even when no reply exists")
		require.True(t, state.IsOver(), "Game should be over without stones")
	})

	t.Run("possible moves into appends", func(t *testing.T) {
		state := NewState[int](&pile{stones: 1})

		moves := state.PossibleMovesInto([]int{7})
		require.Equal(t, []int{7, 1}, moves, "Moves should be appended to the buffer")
	})

	t.Run("winner before the end", func(t *testing.T) {
		state := NewState[int](&pile{stones: 3})

		_, _, err := state.Winner()
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrPreconditionViolation), "Error should be a precondition violation")
		require.ErrorIs(t, err, ErrGameNotOver)
	})

	t.Run("winner after the end", func(t *testing.T) {
		state := NewState[int](&pile{stones: 3})
		state.Play(2)
		state.Play(1)

		winner, ok, err := state.Winner()
		require.NoError(t, err)
		require.True(t, ok, "Game should have a winner")
		require.Equal(t, Black, winner, "Black took the last stone")
	})

	t.Run("clones are independent", func(t *testing.T) {
		state := NewState[int](&pile{stones: 5})
		state.Play(1)

		clone := state.Clone()
		clone.Play(2)

		require.Equal(t, 4, state.Board().stones, "Original board should not change")
		require.Equal(t, []int{1}, state.Board().played, "Original history should not change")
		require.Equal(t, Black, state.CurrentPlayer())
		require.Equal(t, 2, clone.Board().stones)
		require.Equal(t, White, clone.CurrentPlayer())
	})
}

func TestRenderGrid(t *testing.T) {
	t.Run("numbered grid", func(t *testing.T) {
		got := RenderGrid([][]string{{"X", ""}, {"", "O"}}, true, ColumnLetters(2))

		expected := "\n" +
			"   +---+---+\n" +
			" 2 |   | O | \n" +
			"   +---+---+\n" +
			" 1 | X |   | \n" +
			"   +---+---+\n" +
			"     a   b   \n"
		require.Equal(t, expected, got)
	})

	t.Run("plain grid", func(t *testing.T) {
		got := RenderGrid([][]string{{"X"}}, false, []string{"1"})

		expected := "\n" +
			" +---+\n" +
			" | X | \n" +
			" +---+\n" +
			"   1   \n"
		require.Equal(t, expected, got)
	})
}
