// Package demo persists a finished or abandoned game as a compact binary
// recording and plays recordings back through the live action path.
//
// File layout, little-endian, fields packed with no padding:
//
//	header   int32 width, int32 height, int32 mine_count
//	mines    mine_count × {int32 x, int32 y}, column-major (x, then y)
//	count    int32 action_count
//	actions  action_count × {float64 delay_seconds, int32 type, int32 x, int32 y}
//
// The sentinel entry at the head of every action log is not written.
package demo

import (
	"errors"
	"fmt"
	"os"

	"github.com/vancomm/minesweeper-demo/internal/actionlog"
	"github.com/vancomm/minesweeper-demo/internal/mines"
)

var (
	ErrEmptyRecording = errors.New("recording has no actions")
	ErrCorruptDemo    = errors.New("corrupt demo")
)

type Demo struct {
	mines.GameParams
	// Mines may be in any order. Encode always writes them column-major, so
	// Decode returns them in that order regardless of how they were built.
	Mines []mines.Point
	Log   *actionlog.Log
}

// FromRecording captures the mine layout of board together with log.
func FromRecording(board *mines.Board, log *actionlog.Log) *Demo {
	return &Demo{
		GameParams: board.GameParams,
		Mines:      board.Mines(),
		Log:        log,
	}
}

// Board rebuilds the recorded board from the stored mine list.
func (d *Demo) Board() (*mines.Board, error) {
	return mines.FromMines(d.GameParams, d.Mines)
}

// Save writes the encoded demo to path. Nothing is written if encoding fails.
func Save(path string, d *Demo) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write demo %s: %w", path, err)
	}
	return nil
}

func Load(path string) (*Demo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read demo %s: %w", path, err)
	}
	return Decode(data)
}
