package actionlog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type tags are part of the demo file format and must not be renumbered.
type Type int32

const (
	None Type = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Flag
	Reveal
	Quit
	lastType
)

var ErrUnknownAction = errors.New("unknown action type")

var typeNames = [...]string{
	None:      "none",
	MoveUp:    "up",
	MoveDown:  "down",
	MoveLeft:  "left",
	MoveRight: "right",
	Flag:      "flag",
	Reveal:    "reveal",
	Quit:      "quit",
}

func (t Type) Valid() bool {
	return None <= t && t < lastType
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int32(t))
	}
	return typeNames[t]
}

func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if strings.EqualFold(s, name) {
			return Type(t), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int32(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) (err error) {
	*t, err = ParseType(string(text))
	return err
}

// IsMove reports whether the action only moves the cursor.
func (t Type) IsMove() bool {
	return MoveUp <= t && t <= MoveRight
}

type Action struct {
	// Seconds elapsed since the previous action.
	Delay float64 `json:"delay"`
	Type  Type    `json:"type"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
}

func (a Action) Duration() time.Duration {
	return time.Duration(a.Delay * float64(time.Second))
}

func (a Action) String() string {
	return fmt.Sprintf("%s@%d,%d+%.3fs", a.Type, a.X, a.Y, a.Delay)
}
