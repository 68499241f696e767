package demo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/vancomm/minesweeper-demo/internal/actionlog"
	"github.com/vancomm/minesweeper-demo/internal/mines"
)

type headerRecord struct {
	Width, Height, MineCount int32
}

type mineRecord struct {
	X, Y int32
}

type actionRecord struct {
	Delay float64
	Type  int32
	X, Y  int32
}

// MaxTiles bounds the board a decoded header may declare.
const MaxTiles = 1 << 20

const (
	headerSize = 12
	mineSize   = 8
	countSize  = 4
	actionSize = 20
)

func fitsInt32(vs ...int) bool {
	for _, v := range vs {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return false
		}
	}
	return true
}

// Encode serializes d. It fails with [ErrEmptyRecording] when the log holds
// nothing but its sentinel.
func Encode(d *Demo) ([]byte, error) {
	if d.Log == nil || d.Log.Empty() {
		return nil, ErrEmptyRecording
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	board, err := d.Board()
	if err != nil {
		return nil, err
	}
	if !fitsInt32(d.Width, d.Height, d.MineCount, d.Log.Len()) {
		return nil, fmt.Errorf("demo dimensions do not fit the file format")
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + d.MineCount*mineSize + countSize + d.Log.Len()*actionSize)

	// bytes.Buffer writes never fail
	binary.Write(&buf, binary.LittleEndian, headerRecord{
		Width:     int32(d.Width),
		Height:    int32(d.Height),
		MineCount: int32(d.MineCount),
	})
	for _, m := range board.Mines() {
		binary.Write(&buf, binary.LittleEndian, mineRecord{int32(m.X), int32(m.Y)})
	}
	binary.Write(&buf, binary.LittleEndian, int32(d.Log.Len()))
	for _, a := range d.Log.All() {
		binary.Write(&buf, binary.LittleEndian, actionRecord{
			Delay: a.Delay,
			Type:  int32(a.Type),
			X:     int32(a.X),
			Y:     int32(a.Y),
		})
	}
	return buf.Bytes(), nil
}

// Validate checks that d describes a board that can be rebuilt and a log
// whose every action lands on it.
func (d *Demo) Validate() error {
	if _, err := d.Board(); err != nil {
		return err
	}
	if d.Log == nil {
		return nil
	}
	for i, a := range d.Log.All() {
		if !d.PointInBounds(a.X, a.Y) {
			return fmt.Errorf(
				"action %d (%s): %w", i, a, mines.ErrOutOfBounds,
			)
		}
	}
	return nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptDemo, fmt.Sprintf(format, args...))
}

// Decode parses a demo and rebuilds its board from the stored mine list.
// Any structural problem is reported as [ErrCorruptDemo].
func Decode(data []byte) (*Demo, error) {
	r := bytes.NewReader(data)

	var header headerRecord
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, corrupt("truncated header: %v", err)
	}
	params := mines.GameParams{
		Width:     int(header.Width),
		Height:    int(header.Height),
		MineCount: int(header.MineCount),
	}
	if err := params.Validate(); err != nil {
		return nil, corrupt("%v", err)
	}
	if int64(params.Width)*int64(params.Height) > MaxTiles {
		return nil, corrupt("board %dx%d is too large", params.Width, params.Height)
	}
	if r.Len() < params.MineCount*mineSize {
		return nil, corrupt(
			"header declares %d mines, only %d bytes follow",
			params.MineCount, r.Len(),
		)
	}

	ms := make([]mines.Point, params.MineCount)
	for i := range ms {
		var rec mineRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, corrupt("mine %d: %v", i, err)
		}
		ms[i] = mines.Point{X: int(rec.X), Y: int(rec.Y)}
	}
	d := &Demo{GameParams: params, Mines: ms}
	if _, err := d.Board(); err != nil {
		return nil, corrupt("%v", err)
	}

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, corrupt("missing action count: %v", err)
	}
	if count < 0 || int64(count)*actionSize != int64(r.Len()) {
		return nil, corrupt(
			"declared %d actions, %d bytes of action records follow",
			count, r.Len(),
		)
	}

	d.Log = actionlog.New()
	for i := range int(count) {
		var rec actionRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return nil, corrupt("action %d truncated", i+1)
			}
			return nil, corrupt("action %d: %v", i+1, err)
		}
		a := actionlog.Action{
			Delay: rec.Delay,
			Type:  actionlog.Type(rec.Type),
			X:     int(rec.X),
			Y:     int(rec.Y),
		}
		if !params.PointInBounds(a.X, a.Y) {
			return nil, corrupt("action %d targets (%d, %d) outside the board", i+1, a.X, a.Y)
		}
		if err := d.Log.Append(a); err != nil {
			return nil, corrupt("action %d: %v", i+1, err)
		}
	}
	return d, nil
}

// Read decodes a demo from r.
func Read(r io.Reader) (*Demo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
