package game

// State tracks a board together with the side to move.
type State[M Move, B Board[M, B]] struct {
	board   B
	current Player
}

// NewState wraps board with White to move.
func NewState[M Move, B Board[M, B]](board B) *State[M, B] {
	return &State[M, B]{board: board, current: White}
}

// Play applies m for the current player and passes the turn, even when the
// opponent will have no legal reply.
func (s *State[M, B]) Play(m M) {
	s.board.Play(s.current, m)
	s.current = s.current.Opponent()
}

func (s *State[M, B]) PossibleMoves() []M {
	return s.board.PossibleMovesInto(s.current, nil)
}

// PossibleMovesInto appends the current player's legal moves to moves.
func (s *State[M, B]) PossibleMovesInto(moves []M) []M {
	return s.board.PossibleMovesInto(s.current, moves)
}

// IsOver reports whether the current player has no legal move.
func (s *State[M, B]) IsOver() bool {
	return len(s.PossibleMoves()) == 0
}

// Winner returns the outcome of a finished game: the winner and true, or false
// on a draw. It fails with ErrGameNotOver while moves remain.
func (s *State[M, B]) Winner() (Player, bool, error) {
	if !s.IsOver() {
		return White, false, ErrGameNotOver
	}
	winner, ok := s.board.Winner()
	return winner, ok, nil
}

func (s *State[M, B]) CurrentPlayer() Player {
	return s.current
}

// Board returns the underlying board. Callers must not play on it directly.
func (s *State[M, B]) Board() B {
	return s.board
}

func (s *State[M, B]) Clone() *State[M, B] {
	return &State[M, B]{board: s.board.Clone(), current: s.current}
}
