// Package game owns one running session. Live input and demo replay both go
// through [Session.Apply], so a recording replays into identical states.
package game

import (
	"errors"
	"fmt"

	"github.com/vancomm/minesweeper-demo/internal/actionlog"
	"github.com/vancomm/minesweeper-demo/internal/mines"
)

type Status int

const (
	InProgress Status = iota
	Won
	Lost
	Quit
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Status) Over() bool {
	return s != InProgress
}

var ErrSessionOver = errors.New("session is over")

type Session struct {
	board  *mines.Board
	cursor mines.Point
	status Status
}

func NewSession(board *mines.Board) *Session {
	s := &Session{board: board}
	// mine_count == 0 is won before the first move
	if board.CheckWin() {
		s.finish(Won)
	}
	return s
}

func (s *Session) Board() *mines.Board { return s.board }

func (s *Session) Cursor() mines.Point { return s.cursor }

func (s *Session) Status() Status { return s.status }

// Target is the action a live player produces for t at the current cursor.
func (s *Session) Target(t actionlog.Type) actionlog.Action {
	return actionlog.Action{Type: t, X: s.cursor.X, Y: s.cursor.Y}
}

// Apply performs one action and returns the resulting status. Rejected
// actions (bounds, flag preconditions, a finished session) leave the session
// unchanged and return an error; the session stays usable.
//
// Flag and Reveal act on the action's own coordinates, not the cursor, and
// move the cursor there. Moves step the cursor and stop at the board edge.
func (s *Session) Apply(a actionlog.Action) (Status, error) {
	if s.status.Over() {
		return s.status, fmt.Errorf("%w: %s", ErrSessionOver, s.status)
	}

	switch a.Type {
	case actionlog.None:
	case actionlog.MoveUp:
		s.move(0, -1)
	case actionlog.MoveDown:
		s.move(0, +1)
	case actionlog.MoveLeft:
		s.move(-1, 0)
	case actionlog.MoveRight:
		s.move(+1, 0)
	case actionlog.Flag:
		if err := s.board.ToggleFlag(a.X, a.Y); err != nil {
			return s.status, err
		}
		s.cursor = mines.Point{X: a.X, Y: a.Y}
	case actionlog.Reveal:
		exploded, err := s.board.Reveal(a.X, a.Y)
		if err != nil {
			return s.status, err
		}
		s.cursor = mines.Point{X: a.X, Y: a.Y}
		if exploded {
			s.finish(Lost)
			return s.status, nil
		}
	case actionlog.Quit:
		s.finish(Quit)
		return s.status, nil
	default:
		return s.status, fmt.Errorf("%w: %d", actionlog.ErrUnknownAction, int32(a.Type))
	}

	if s.board.CheckWin() {
		s.finish(Won)
	}
	return s.status, nil
}

func (s *Session) move(dx, dy int) {
	if s.board.PointInBounds(s.cursor.X+dx, s.cursor.Y+dy) {
		s.cursor.X += dx
		s.cursor.Y += dy
	}
}

func (s *Session) finish(status Status) {
	s.status = status
	s.board.RevealAllMines()
}
