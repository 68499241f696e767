package mines

import (
	"fmt"
	"math/rand/v2"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Tile struct {
	X, Y    int
	Mine    bool
	Hidden  bool
	Flagged bool
	// Mined neighbors; fixed once the board is generated.
	NeighborMines int
}

// Board is a width×height grid of tiles stored row by row (y*width+x).
// Mine placement never changes after construction.
type Board struct {
	GameParams
	tiles    []Tile
	exploded int
}

// New places params.MineCount mines at distinct random tiles.
func New(params GameParams, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := newBoard(params)
	n := len(b.tiles)
	for placed := 0; placed < params.MineCount; {
		t := &b.tiles[r.IntN(n)]
		if t.Mine {
			continue
		}
		t.Mine = true
		placed++
	}
	b.countNeighborMines()
	return b, nil
}

// FromMines places mines exactly at the given coordinates. It is used to
// rebuild a recorded board, so the list must hold params.MineCount distinct
// in-bounds points.
func FromMines(params GameParams, mines []Point) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(mines) != params.MineCount {
		return nil, fmt.Errorf(
			"%w: expected %d mines, got %d",
			ErrInvalidConfiguration, params.MineCount, len(mines),
		)
	}
	b := newBoard(params)
	for _, p := range mines {
		if !params.PointInBounds(p.X, p.Y) {
			return nil, fmt.Errorf(
				"%w: mine (%d, %d) outside %dx%d board",
				ErrInvalidConfiguration, p.X, p.Y, params.Width, params.Height,
			)
		}
		t := &b.tiles[p.Y*params.Width+p.X]
		if t.Mine {
			return nil, fmt.Errorf(
				"%w: duplicate mine at (%d, %d)", ErrInvalidConfiguration, p.X, p.Y,
			)
		}
		t.Mine = true
	}
	b.countNeighborMines()
	return b, nil
}

func newBoard(params GameParams) *Board {
	b := &Board{
		GameParams: params,
		tiles:      make([]Tile, params.Width*params.Height),
		exploded:   -1,
	}
	for i := range b.tiles {
		b.tiles[i] = Tile{
			X:      i % params.Width,
			Y:      i / params.Width,
			Hidden: true,
		}
	}
	return b
}

func (b *Board) countNeighborMines() {
	for i := range b.tiles {
		t := &b.tiles[i]
		t.NeighborMines = 0
		for _, n := range b.neighbors(t.X, t.Y) {
			if n.Mine {
				t.NeighborMines++
			}
		}
	}
}

func (b *Board) tile(x, y int) (*Tile, error) {
	if !b.PointInBounds(x, y) {
		return nil, fmt.Errorf(
			"%w: (%d, %d) outside %dx%d board",
			ErrOutOfBounds, x, y, b.Width, b.Height,
		)
	}
	return &b.tiles[y*b.Width+x], nil
}

// TileAt returns a copy of the tile at x, y.
func (b *Board) TileAt(x, y int) (Tile, error) {
	t, err := b.tile(x, y)
	if err != nil {
		return Tile{}, err
	}
	return *t, nil
}

// neighbors returns the existing 8-directional neighbors of x, y. The
// coordinates must be in bounds.
func (b *Board) neighbors(x, y int) []*Tile {
	ns := make([]*Tile, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.PointInBounds(x+dx, y+dy) {
				ns = append(ns, &b.tiles[(y+dy)*b.Width+(x+dx)])
			}
		}
	}
	return ns
}

func (b *Board) NeighborsOf(x, y int) ([]Tile, error) {
	if _, err := b.tile(x, y); err != nil {
		return nil, err
	}
	ns := b.neighbors(x, y)
	tiles := make([]Tile, len(ns))
	for i, n := range ns {
		tiles[i] = *n
	}
	return tiles, nil
}

// Mines lists mine coordinates in column-major order: x ascending, then y
// ascending within a column.
func (b *Board) Mines() []Point {
	mines := make([]Point, 0, b.MineCount)
	for x := range b.Width {
		for y := range b.Height {
			if b.tiles[y*b.Width+x].Mine {
				mines = append(mines, Point{x, y})
			}
		}
	}
	return mines
}

// Exploded reports the mine revealed by the player, if any.
func (b *Board) Exploded() (Point, bool) {
	if b.exploded < 0 {
		return Point{}, false
	}
	return Point{b.exploded % b.Width, b.exploded / b.Width}, true
}
