package mines

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrOutOfBounds          = errors.New("coordinates out of bounds")
	ErrTileFlagged          = errors.New("tile is flagged")
	ErrTileNotHidden        = errors.New("tile is not hidden")
)
