package game

// Move is any value a board accepts as a move. The zero value of a move type
// is reserved as the "no move" placeholder of a search root and is never
// produced by a board.
type Move interface {
	comparable
}

// Board is a two-player, perfect-information game position. B is the concrete
// board type so that Clone returns an independent value of the same type.
type Board[M Move, B any] interface {
	// PossibleMovesInto appends the legal moves of p to moves and returns the
	// extended slice. Nothing is appended when p cannot move.
	PossibleMovesInto(p Player, moves []M) []M
	// Play applies m as p. The move must be legal.
	Play(p Player, m M)
	// Winner reports the winning player, or false on a draw. Only meaningful
	// once the side to move has no legal moves.
	Winner() (Player, bool)
	// Clone returns a copy sharing no mutable memory with the receiver.
	Clone() B
}
