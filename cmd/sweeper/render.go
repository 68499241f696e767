package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/vancomm/minesweeper-demo/internal/game"
)

const clearScreen = "\x1b[H\x1b[2J"

const help = "w/a/s/d or h/j/k/l move, f flag, r or space reveal, \"X Y\" reveal, \"f X Y\" flag, q quit"

// drawBoard redraws the whole screen: column and row numbers around the
// grid, the cursor in brackets, then a status line and message.
func drawBoard(w io.Writer, s *game.Session, message string) error {
	board := s.Board()
	grid := board.Grid()
	cursor := s.Cursor()

	var sb strings.Builder
	sb.WriteString(clearScreen)
	sb.WriteString("   ")
	for x := range board.Width {
		fmt.Fprintf(&sb, " %-2d", x)
	}
	sb.WriteString("\n")
	for y := range board.Height {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := range board.Width {
			cell := grid[y*board.Width+x].String()
			if cursor.X == x && cursor.Y == y {
				fmt.Fprintf(&sb, "[%s]", cell)
			} else {
				fmt.Fprintf(&sb, " %s ", cell)
			}
		}
		sb.WriteString("\n")
	}

	revealed, flagged := board.Counts()
	fmt.Fprintf(
		&sb, "\n%s | mines %d | flags %d | open %d/%d\n",
		s.Status(), board.MineCount, flagged, revealed, board.SafeTiles(),
	)
	if message != "" {
		sb.WriteString(message + "\n")
	}
	if !s.Status().Over() {
		sb.WriteString(help + "\n> ")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
