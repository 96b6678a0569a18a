// Package tictactoe implements the 3x3 game of noughts and crosses.
package tictactoe

import (
	"fmt"

	"mcts/game"
)

const Width = 3

// Move is a square numbered 1..9 from a1 (bottom left) row by row. Zero is
// the empty move.
type Move int8

func NewMove(x, y int) Move {
	return Move(y*Width + x + 1)
}

func (m Move) Coords() (x, y int) {
	i := int(m) - 1
	return i % Width, i / Width
}

func (m Move) String() string {
	if m == 0 {
		return "-"
	}
	x, y := m.Coords()
	return fmt.Sprintf("%c%d", 'a'+x, y+1)
}

type cell int8

const (
	empty cell = iota
	white
	black
)

func token(p game.Player) cell {
	if p == game.White {
		return white
	}
	return black
}

// Rows, columns then diagonals
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {6, 4, 2},
}

type Board struct {
	cells [Width * Width]cell
}

func NewBoard() *Board {
	return &Board{}
}

// NewGame returns a fresh game with White to move.
func NewGame() *game.State[Move, *Board] {
	return game.NewState[Move](NewBoard())
}

// PossibleMovesInto appends every empty square, or nothing once a line is
// complete.
func (b *Board) PossibleMovesInto(_ game.Player, moves []Move) []Move {
	if _, ok := b.Winner(); ok {
		return moves
	}
	for i, c := range b.cells {
		if c == empty {
			moves = append(moves, Move(i+1))
		}
	}
	return moves
}

func (b *Board) Play(p game.Player, m Move) {
	b.cells[m-1] = token(p)
}

func (b *Board) Winner() (game.Player, bool) {
	for _, line := range lines {
		c := b.cells[line[0]]
		if c != empty && b.cells[line[1]] == c && b.cells[line[2]] == c {
			if c == white {
				return game.White, true
			}
			return game.Black, true
		}
	}
	return game.White, false
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
			switch b.cells[y*Width+x] {
			case white:
				cells[y][x] = "X"
			case black:
				cells[y][x] = "O"
			}
		}
	}
	return game.RenderGrid(cells, true, game.ColumnLetters(Width))
}
