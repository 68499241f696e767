package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	RevealedMine     CellState = 67
	/*
	 * Each item in a Grid is one of the following values:
	 *
	 *  - 0 to 8 mean the tile is open and has a surrounding mine count.
	 *
	 *  - -1 means the tile is hidden and flagged.
	 *
	 *  - -2 means the tile is hidden.
	 *
	 *  - 64 means a flagged mine was revealed at the end of the game.
	 *
	 *  - 65 means the mine the player opened.
	 *
	 *  - 67 means an unflagged mine revealed at the end of the game.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "."
	case s == Flagged, s == CorrectlyFlagged:
		return "F"
	case s == ExplodedMine:
		return "X"
	case s == RevealedMine:
		return "M"
	case s == 0:
		return " "
	case 1 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is what a player can see of a board, row by row.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

func (b *Board) Grid() Grid {
	g := make(Grid, len(b.tiles))
	for i, t := range b.tiles {
		switch {
		case t.Hidden && t.Flagged:
			g[i] = Flagged
		case t.Hidden:
			g[i] = Unknown
		case t.Mine && i == b.exploded:
			g[i] = ExplodedMine
		case t.Mine && t.Flagged:
			g[i] = CorrectlyFlagged
		case t.Mine:
			g[i] = RevealedMine
		default:
			g[i] = CellState(t.NeighborMines)
		}
	}
	return g
}
