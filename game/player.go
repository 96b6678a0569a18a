package game

// Player is one of the two sides of a game. White always moves first.
type Player int8

const (
	White Player = iota
	Black
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == White {
		return Black
	}
	return White
}

func (p Player) String() string {
	if p == White {
		return "White"
	}
	return "Black"
}
