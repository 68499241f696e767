package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-demo/internal/actionlog"
	"github.com/vancomm/minesweeper-demo/internal/mines"
)

// command is one parsed keystroke. at is set when the player typed explicit
// coordinates; otherwise the action targets the cursor.
type command struct {
	typ actionlog.Type
	at  *mines.Point
}

var keys = map[rune]actionlog.Type{
	'w': actionlog.MoveUp,
	'k': actionlog.MoveUp,
	's': actionlog.MoveDown,
	'j': actionlog.MoveDown,
	'a': actionlog.MoveLeft,
	'h': actionlog.MoveLeft,
	'd': actionlog.MoveRight,
	'l': actionlog.MoveRight,
	'f': actionlog.Flag,
	'r': actionlog.Reveal,
	' ': actionlog.Reveal,
	'q': actionlog.Quit,
}

func parsePoint(xs, ys string) (*mines.Point, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return nil, fmt.Errorf("invalid column %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return nil, fmt.Errorf("invalid row %q", ys)
	}
	return &mines.Point{X: x, Y: y}, nil
}

// parseLine reads one line of input. A run of keys such as "ddds" yields one
// command per key; "X Y" reveals and "f X Y" flags the given tile.
func parseLine(line string) ([]command, error) {
	if line != "" && strings.TrimSpace(line) == "" {
		return []command{{typ: actionlog.Reveal}}, nil
	}
	fields := strings.Fields(strings.ToLower(line))
	switch len(fields) {
	case 0:
		return nil, nil
	case 1:
		cmds := make([]command, 0, len(fields[0]))
		for _, key := range fields[0] {
			typ, ok := keys[key]
			if !ok {
				return nil, fmt.Errorf("unknown key %q", key)
			}
			cmds = append(cmds, command{typ: typ})
		}
		return cmds, nil
	case 2:
		at, err := parsePoint(fields[0], fields[1])
		if err != nil {
			return nil, err
		}
		return []command{{typ: actionlog.Reveal, at: at}}, nil
	case 3:
		if fields[0] != "f" {
			return nil, fmt.Errorf("unknown command %q", line)
		}
		at, err := parsePoint(fields[1], fields[2])
		if err != nil {
			return nil, err
		}
		return []command{{typ: actionlog.Flag, at: at}}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", line)
	}
}
