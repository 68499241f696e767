package demo

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/vancomm/minesweeper-demo/internal/actionlog"
	"github.com/vancomm/minesweeper-demo/internal/game"
)

// ErrNoMoreActions is returned by [Replayer.Next] once the log is exhausted.
// It marks the end of a replay, not a failure.
var ErrNoMoreActions = errors.New("no more actions")

// Clock waits out the delay recorded before each action.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock sleeps for real. Speed scales playback; zero means 1.
type RealClock struct {
	Speed float64
}

func (c RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if c.Speed > 0 {
		d = time.Duration(float64(d) / c.Speed)
	}
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// LogicalClock never blocks; it only accumulates the requested delays.
type LogicalClock struct {
	Elapsed time.Duration
}

func (c *LogicalClock) Sleep(ctx context.Context, d time.Duration) error {
	c.Elapsed += d
	return ctx.Err()
}

type Step struct {
	Index  int              `json:"index"`
	Action actionlog.Action `json:"action"`
	Status game.Status      `json:"status"`
	// Err is the action's own rejection; the replay carries on.
	Err error `json:"-"`
}

type EndReason int

const (
	NoMoreActions EndReason = iota
	QuitAction
	GameOver
)

func (r EndReason) String() string {
	switch r {
	case NoMoreActions:
		return "no more actions"
	case QuitAction:
		return "quit"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("EndReason(%d)", int(r))
	}
}

func (r EndReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Replayer feeds a demo's actions, one per [Replayer.Next], into a fresh
// session built from the recorded mine layout. Close releases the iterator.
type Replayer struct {
	session *game.Session
	clock   Clock
	next    func() (int, actionlog.Action, bool)
	stop    func()
}

func NewReplayer(d *Demo, clock Clock) (*Replayer, error) {
	if d.Log == nil {
		return nil, ErrEmptyRecording
	}
	board, err := d.Board()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptDemo, err)
	}
	if clock == nil {
		clock = &LogicalClock{}
	}
	next, stop := iter.Pull2(d.Log.All())
	return &Replayer{
		session: game.NewSession(board),
		clock:   clock,
		next:    next,
		stop:    stop,
	}, nil
}

func (r *Replayer) Session() *game.Session { return r.session }

func (r *Replayer) Close() { r.stop() }

// Next waits out the next action's delay and applies it.
func (r *Replayer) Next(ctx context.Context) (Step, error) {
	if st := r.session.Status(); st.Over() {
		return Step{Status: st}, fmt.Errorf("%w: %s", game.ErrSessionOver, st)
	}
	i, a, ok := r.next()
	if !ok {
		return Step{Status: r.session.Status()}, ErrNoMoreActions
	}
	if err := r.clock.Sleep(ctx, a.Duration()); err != nil {
		return Step{}, err
	}
	status, err := r.session.Apply(a)
	return Step{Index: i, Action: a, Status: status, Err: err}, nil
}

// Run replays until a Quit action, the end of the game, or the end of the
// log, calling observe after every applied action. Only context
// cancellation and observe failures are returned as errors.
func (r *Replayer) Run(ctx context.Context, observe func(Step) error) (EndReason, error) {
	for {
		step, err := r.Next(ctx)
		if errors.Is(err, ErrNoMoreActions) {
			return NoMoreActions, nil
		}
		if errors.Is(err, game.ErrSessionOver) {
			return GameOver, nil
		}
		if err != nil {
			return NoMoreActions, err
		}
		if observe != nil {
			if err := observe(step); err != nil {
				return NoMoreActions, err
			}
		}
		switch {
		case step.Status == game.Quit:
			return QuitAction, nil
		case step.Status.Over():
			return GameOver, nil
		}
	}
}

type Summary struct {
	Status  game.Status
	End     EndReason
	Elapsed time.Duration
	Actions int
}

// Outcome replays d without waiting and reports how the game ended.
func Outcome(ctx context.Context, d *Demo) (Summary, error) {
	clock := &LogicalClock{}
	r, err := NewReplayer(d, clock)
	if err != nil {
		return Summary{}, err
	}
	defer r.Close()

	applied := 0
	end, err := r.Run(ctx, func(Step) error {
		applied++
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Status:  r.session.Status(),
		End:     end,
		Elapsed: clock.Elapsed,
		Actions: applied,
	}, nil
}
