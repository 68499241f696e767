package mines

import (
	"fmt"

	"github.com/gammazero/deque"
)

// Reveal opens the tile at x, y and reports whether it was a mine. A zero
// tile floods outward through connected zero tiles, opening their border as
// well. The flood never opens a mine, but it does open flagged safe tiles and
// clears their flags.
func (b *Board) Reveal(x, y int) (exploded bool, err error) {
	t, err := b.tile(x, y)
	if err != nil {
		return false, err
	}
	if t.Flagged {
		return false, fmt.Errorf("%w: (%d, %d)", ErrTileFlagged, x, y)
	}
	if t.Mine && t.Hidden {
		b.exploded = y*b.Width + x
	}
	return b.reveal(t), nil
}

func (b *Board) reveal(t *Tile) bool {
	if !t.Hidden {
		return t.Mine
	}
	t.Hidden = false
	if t.Mine {
		return true
	}
	if t.NeighborMines != 0 {
		return false
	}

	// Tiles are opened when pushed, so each one is expanded at most once.
	var stack deque.Deque[*Tile]
	stack.PushBack(t)
	for stack.Len() > 0 {
		cur := stack.PopBack()
		for _, n := range b.neighbors(cur.X, cur.Y) {
			if n.Mine || !n.Hidden {
				continue
			}
			n.Hidden = false
			n.Flagged = false
			if n.NeighborMines == 0 {
				stack.PushBack(n)
			}
		}
	}
	return false
}

// ToggleFlag flips the flag on a hidden tile. Flag count is not limited.
func (b *Board) ToggleFlag(x, y int) error {
	t, err := b.tile(x, y)
	if err != nil {
		return err
	}
	if !t.Hidden {
		return fmt.Errorf("%w: (%d, %d)", ErrTileNotHidden, x, y)
	}
	t.Flagged = !t.Flagged
	return nil
}

// CheckWin holds when every mine is flagged or every safe tile is open.
// Flags on safe tiles do not block either path.
func (b *Board) CheckWin() bool {
	var correctFlags, correctTiles int
	for _, t := range b.tiles {
		if t.Mine && t.Flagged {
			correctFlags++
		} else if !t.Mine && !t.Hidden {
			correctTiles++
		}
	}
	return correctFlags == b.MineCount || correctTiles == b.SafeTiles()
}

// RevealAllMines opens every mine, flagged or not, for end-of-game display.
func (b *Board) RevealAllMines() {
	for i := range b.tiles {
		if b.tiles[i].Mine {
			b.reveal(&b.tiles[i])
		}
	}
}

// Counts returns the number of open tiles and flags placed.
func (b *Board) Counts() (revealed, flagged int) {
	for _, t := range b.tiles {
		if !t.Hidden {
			revealed++
		}
		if t.Flagged {
			flagged++
		}
	}
	return
}
