// Package checkers implements draughts on an 8x8 board with international
// capture rules: men capture in every direction, kings fly and the move
// capturing the most pieces is mandatory.
package checkers

import (
	"math/bits"
	"slices"
	"strings"

	"mcts/game"
)

const (
	Width = 8
	// MaxKingMoves is the number of consecutive king moves without capture
	// after which nobody may move and the game is drawn.
	MaxKingMoves = 25
)

type piece int8

const (
	none piece = iota
	whiteMan
	whiteKing
	blackMan
	blackKing
)

func (p piece) owner() game.Player {
	if p == whiteMan || p == whiteKing {
		return game.White
	}
	return game.Black
}

func (p piece) crowned() bool {
	return p == whiteKing || p == blackKing
}

func (p piece) String() string {
	switch p {
	case whiteMan:
		return "w"
	case whiteKing:
		return "W"
	case blackMan:
		return "b"
	case blackKing:
		return "B"
	}
	return ""
}

type Board struct {
	squares   [Width][Width]piece // [y][x]
	kingMoves int                 // consecutive king moves without capture
}

// NewBoard sets up three rows of men for each side on the dark squares.
func NewBoard() *Board {
	b := &Board{}
	for y := 0; y < Width/2-1; y++ {
		for x := y % 2; x < Width; x += 2 {
			b.squares[y][x] = whiteMan
		}
	}
	for y := Width/2 + 1; y < Width; y++ {
		for x := y % 2; x < Width; x += 2 {
			b.squares[y][x] = blackMan
		}
	}
	return b
}

// NewGame returns a fresh game with White to move.
func NewGame() *game.State[Move, *Board] {
	return game.NewState[Move](NewBoard())
}

func inside(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Width
}

func (b *Board) PossibleMovesInto(p game.Player, moves []Move) []Move {
	if b.kingMoves >= MaxKingMoves {
		return moves
	}

	start := len(moves)
	for y := 0; y < Width; y++ {
		for x := 0; x < Width; x++ {
			if t := b.squares[y][x]; t != none && t.owner() == p {
				moves = b.movesFrom(x, y, moves)
			}
		}
	}

	// Only the moves capturing the most pieces are legal
	most := 0
	for _, m := range moves[start:] {
		most = max(most, m.CaptureCount())
	}
	kept := moves[:start]
	for _, m := range moves[start:] {
		if m.CaptureCount() == most && !slices.Contains(kept[start:], m) {
			kept = append(kept, m)
		}
	}
	return kept
}

func (b *Board) movesFrom(x, y int, moves []Move) []Move {
	t := b.squares[y][x]
	from := NewSquare(x, y)

	dy := -1
	if t == whiteMan {
		dy = 1
	}
	for i := 0; i < 2; i++ {
		for _, dx := range [2]int{-1, 1} {
			for cx, cy := x+dx, y+dy; inside(cx, cy); cx, cy = cx+dx, cy+dy {
				if b.squares[cy][cx] != none {
					break
				}
				moves = append(moves, Move{From: from, To: NewSquare(cx, cy)})
				if !t.crowned() {
					break
				}
			}
		}
		if !t.crowned() {
			break
		}
		dy = -dy
	}

	return b.captures(from, t, x, y, 0, moves)
}

// captures appends every capture sequence of t starting at from that has
// reached x, y after taking the pieces in captured. Captured pieces stay on
// the board until the move is played, so they cannot be jumped twice.
func (b *Board) captures(from Square, t piece, x, y int, captured uint64, moves []Move) []Move {
	done := true
	for _, dy := range [2]int{-1, 1} {
		for _, dx := range [2]int{-1, 1} {
			target := -1
			for cx, cy := x+dx, y+dy; inside(cx, cy); cx, cy = cx+dx, cy+dy {
				c := b.squares[cy][cx]
				if target < 0 {
					if c == none {
						if !t.crowned() {
							break
						}
						continue
					}
					if c.owner() == t.owner() || captured&(1<<(cy*Width+cx)) != 0 {
						break
					}
					target = cy*Width + cx
					continue
				}

				if c != none {
					break
				}
				moves = b.captures(from, t, cx, cy, captured|1<<target, moves)
				done = false
				if !t.crowned() {
					break
				}
			}
		}
	}

	if done && NewSquare(x, y) != from {
		moves = append(moves, Move{From: from, To: NewSquare(x, y), Captured: captured})
	}
	return moves
}

func (b *Board) Play(p game.Player, m Move) {
	x, y := m.From.Coords()
	tx, ty := m.To.Coords()
	t := b.squares[y][x]

	if t.crowned() && m.Captured == 0 {
		b.kingMoves++
	} else {
		b.kingMoves = 0
	}

	b.squares[y][x] = none
	for _, s := range m.Captures() {
		cx, cy := s.Coords()
		b.squares[cy][cx] = none
	}

	if p == game.White && ty == Width-1 {
		t = whiteKing
	} else if p == game.Black && ty == 0 {
		t = blackKing
	}
	b.squares[ty][tx] = t
}

// Winner is the side that can still move. It panics when both sides can move
// since the game is then not over.
func (b *Board) Winner() (game.Player, bool) {
	whiteStuck := len(b.PossibleMovesInto(game.White, nil)) == 0
	blackStuck := len(b.PossibleMovesInto(game.Black, nil)) == 0
	switch {
	case whiteStuck && blackStuck:
		return game.White, false
	case whiteStuck:
		return game.Black, true
	case blackStuck:
		return game.White, true
	}
	panic("winner must be called on a finished game")
}

func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

func (b *Board) String() string {
	cells := make([][]string, Width)
	for y := range cells {
		cells[y] = make([]string, Width)
		for x := range cells[y] {
			cells[y][x] = b.squares[y][x].String()
		}
	}
	return game.RenderGrid(cells, true, game.ColumnLetters(Width))
}

// Square is a board square numbered 1..64 from a1 row by row. Zero is no square.
type Square int8

func NewSquare(x, y int) Square {
	return Square(y*Width + x + 1)
}

func (s Square) Coords() (x, y int) {
	i := int(s) - 1
	return i % Width, i / Width
}

func (s Square) String() string {
	x, y := s.Coords()
	return string(rune('a'+x)) + string(rune('1'+y))
}

// Move takes a piece from one square to another, removing the pieces on the
// squares set in Captured (bit i for square index i). The zero Move is the
// empty move.
type Move struct {
	From     Square
	To       Square
	Captured uint64
}

func (m Move) CaptureCount() int {
	return bits.OnesCount64(m.Captured)
}

// Captures lists the captured squares in board order.
func (m Move) Captures() []Square {
	squares := make([]Square, 0, m.CaptureCount())
	for rest := m.Captured; rest != 0; rest &= rest - 1 {
		squares = append(squares, Square(bits.TrailingZeros64(rest)+1))
	}
	return squares
}

func (m Move) String() string {
	if m.From == 0 {
		return "-"
	}
	var b strings.Builder
	b.WriteString(m.From.String())
	b.WriteString(" -> ")
	b.WriteString(m.To.String())
	for i, s := range m.Captures() {
		if i == 0 {
			b.WriteString(", with capture of ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	return b.String()
}
