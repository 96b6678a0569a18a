package game

import (
	"fmt"
	"strings"
)

// RenderGrid draws cells as a boxed text grid. cells is indexed [row][column]
// with row 0 at the bottom. Rows are numbered from 1 when numbered is set and
// columns are labelled with labels.
func RenderGrid(cells [][]string, numbered bool, labels []string) string {
	var b strings.Builder
	margin := " "
	if numbered {
		margin = "   "
	}

	line := func(width int) {
		b.WriteString(margin)
		for i := 0; i < width; i++ {
			b.WriteString("+---")
		}
		b.WriteString("+\n")
	}

	width := 0
	if len(cells) > 0 {
		width = len(cells[0])
	}

	b.WriteString("\n")
	line(width)
	for y := len(cells) - 1; y >= 0; y-- {
		if numbered {
			fmt.Fprintf(&b, "%2d | ", y+1)
		} else {
			b.WriteString(" | ")
		}
		for _, cell := range cells[y] {
			if cell == "" {
				cell = " "
			}
			b.WriteString(cell)
			b.WriteString(" | ")
		}
		b.WriteString("\n")
		line(width)
	}

	b.WriteString(margin)
	b.WriteString("  ")
	for _, label := range labels {
		b.WriteString(label)
		b.WriteString("   ")
	}
	b.WriteString("\n")
	return b.String()
}

// ColumnLetters returns the labels "a", "b", ... for n columns.
func ColumnLetters(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = string(rune('a' + i))
	}
	return labels
}
