package actionlog

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

var ErrNegativeDelay = errors.New("action delay must be a non-negative number")

// Log is an append-only action history. Entry 0 is a sentinel standing for
// the initial board draw; it is never replayed or persisted.
type Log struct {
	entries []Action
}

func New() *Log {
	return &Log{entries: []Action{{Type: None}}}
}

// FromActions builds a log whose real entries are actions, in order.
func FromActions(actions []Action) (*Log, error) {
	l := &Log{entries: make([]Action, 1, len(actions)+1)}
	for _, a := range actions {
		if err := l.Append(a); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Log) Append(a Action) error {
	if !a.Type.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAction, int32(a.Type))
	}
	if a.Delay < 0 || math.IsNaN(a.Delay) || math.IsInf(a.Delay, 0) {
		return fmt.Errorf("%w: %v", ErrNegativeDelay, a.Delay)
	}
	l.entries = append(l.entries, a)
	return nil
}

// Len counts real actions, excluding the sentinel.
func (l *Log) Len() int {
	return len(l.entries) - 1
}

func (l *Log) Empty() bool {
	return l.Len() == 0
}

// At returns the i-th real action, counting from 1.
func (l *Log) At(i int) (Action, bool) {
	if i < 1 || i >= len(l.entries) {
		return Action{}, false
	}
	return l.entries[i], true
}

// All yields real actions with their 1-based index in recorded order. Each
// call starts over from the first action.
func (l *Log) All() iter.Seq2[int, Action] {
	return func(yield func(int, Action) bool) {
		for i := 1; i < len(l.entries); i++ {
			if !yield(i, l.entries[i]) {
				return
			}
		}
	}
}

// Actions copies the real actions out of the log.
func (l *Log) Actions() []Action {
	actions := make([]Action, l.Len())
	copy(actions, l.entries[1:])
	return actions
}

// Elapsed sums every delay in the log, in seconds.
func (l *Log) Elapsed() float64 {
	var total float64
	for _, a := range l.entries {
		total += a.Delay
	}
	return total
}
