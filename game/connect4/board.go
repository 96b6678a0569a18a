// Package connect4 implements connect-four on a 7x6 grid.
package connect4

import (
	"strconv"

	"mcts/game"
)

const (
	Columns = 7
	Rows    = 6
	Connect = 4
)

// Move is the column to drop a token into, numbered from 1. Zero is the
// empty move.
type Move int8

func (m Move) String() string {
	if m == 0 {
		return "-"
	}
	return strconv.Itoa(int(m))
}

type cell int8

const (
	empty cell = iota
	white
	black
)

// Board holds the grid indexed [column][row], row 0 at the bottom.
type Board struct {
	grid [Columns][Rows]cell
}

func NewBoard() *Board {
	return &Board{}
}

// NewGame returns a fresh game with White to move.
func NewGame() *game.State[Move, *Board] {
	return game.NewState[Move](NewBoard())
}

func (b *Board) PossibleMovesInto(_ game.Player, moves []Move) []Move {
	if _, ok := b.Winner(); ok {
		return moves
	}
	for col := 0; col < Columns; col++ {
		if b.grid[col][Rows-1] == empty {
			moves = append(moves, Move(col+1))
		}
	}
	return moves
}

func (b *Board) Play(p game.Player, m Move) {
	c := white
	if p == game.Black {
		c = black
	}
	column := &b.grid[m-1]
	for row := range column {
		if column[row] == empty {
			column[row] = c
			return
		}
	}
}

// Directions scanned from each starting token: right, up, up-right, down-right
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

func (b *Board) Winner() (game.Player, bool) {
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			c := b.grid[col][row]
			if c == empty {
				continue
			}
			for _, d := range directions {
				if b.connected(col, row, d[0], d[1], c) {
					if c == white {
						return game.White, true
					}
					return game.Black, true
				}
			}
		}
	}
	return game.White, false
}

func (b *Board) connected(col, row, dx, dy int, c cell) bool {
	for i := 1; i < Connect; i++ {
		x, y := col+i*dx, row+i*dy
		if x < 0 || x >= Columns || y < 0 || y >= Rows || b.grid[x][y] != c {
			return false
		}
	}
	return true
}

func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

func (b *Board) String() string {
	cells := make([][]string, Rows)
	for row := range cells {
		cells[row] = make([]string, Columns)
		for col := range cells[row] {
			switch b.grid[col][row] {
			case white:
				cells[row][col] = "X"
			case black:
				cells[row][col] = "O"
			}
		}
	}
	labels := make([]string, Columns)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return game.RenderGrid(cells, false, labels)
}
