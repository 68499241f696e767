package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-demo/internal/actionlog"
	"github.com/vancomm/minesweeper-demo/internal/demo"
	"github.com/vancomm/minesweeper-demo/internal/game"
	"github.com/vancomm/minesweeper-demo/internal/mines"
)

// readLines scans in on its own goroutine. Cancelling ctx stops delivery, but
// a Scan already blocked on stdin only returns at the next line or EOF; the
// process exits right after play returns, so that goroutine is left behind.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// play feeds input lines to rec until the game ends. Closed input counts as
// a quit.
func play(ctx context.Context, in io.Reader, out io.Writer, rec *game.Recorder) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := rec.Session()
	lines, errc := readLines(ctx, in)
	message := ""

	for !session.Status().Over() {
		if err := drawBoard(out, session, message); err != nil {
			return err
		}
		message = ""

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := <-errc; err != nil {
					return fmt.Errorf("unable to read input: %w", err)
				}
				line = "q"
			} else {
				line = l
			}
		}

		cmds, err := parseLine(line)
		if err != nil {
			message = err.Error()
			continue
		}
		for _, cmd := range cmds {
			a := session.Target(cmd.typ)
			if cmd.at != nil {
				a.X, a.Y = cmd.at.X, cmd.at.Y
			}
			status, err := rec.Apply(a)
			if err != nil {
				log.WithFields(logrus.Fields{
					"action": a.Type,
					"x":      a.X,
					"y":      a.Y,
				}).WithError(err).Debug("rejected action")
				message = err.Error()
				break
			}
			if status.Over() {
				break
			}
		}
	}

	return drawBoard(out, session, "")
}

func runGame(ctx context.Context, in io.Reader, out io.Writer, opts *options) error {
	board, err := mines.New(opts.params, newRand(opts.seed))
	if err != nil {
		return err
	}
	rec := game.NewRecorder(game.NewSession(board), nil)

	log.WithFields(logrus.Fields{
		"game": opts.params.Seed(),
		"seed": opts.seed,
	}).Info("new game")

	err = play(ctx, in, out, rec)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.WithFields(logrus.Fields{
		"status":  rec.Session().Status(),
		"actions": rec.Log().Len(),
		"elapsed": rec.Log().Elapsed(),
	}).Info("game finished")

	if opts.record == "" {
		return nil
	}
	return saveRecording(out, opts.record, board, rec.Log())
}

func saveRecording(out io.Writer, path string, board *mines.Board, actions *actionlog.Log) error {
	err := demo.Save(path, demo.FromRecording(board, actions))
	if errors.Is(err, demo.ErrEmptyRecording) {
		fmt.Fprintln(out, "nothing was played, no demo saved")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "demo saved to %s (%d actions)\n", path, actions.Len())
	return nil
}

func runReplay(ctx context.Context, out io.Writer, path string, speed float64) error {
	d, err := demo.Load(path)
	if err != nil {
		return err
	}
	r, err := demo.NewReplayer(d, demo.RealClock{Speed: speed})
	if err != nil {
		return err
	}
	defer r.Close()

	log.WithFields(logrus.Fields{
		"demo":    path,
		"game":    d.Seed(),
		"actions": d.Log.Len(),
		"speed":   speed,
	}).Info("replaying demo")

	session := r.Session()
	if err := drawBoard(out, session, "replaying "+path); err != nil {
		return err
	}
	end, err := r.Run(ctx, func(step demo.Step) error {
		message := fmt.Sprintf("#%d/%d %s", step.Index, d.Log.Len(), step.Action)
		if step.Err != nil {
			message += ": " + step.Err.Error()
		}
		return drawBoard(out, session, message)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"status": session.Status(),
		"end":    end,
	}).Info("replay finished")
	_, err = fmt.Fprintf(out, "replay ended: %s\n", end)
	return err
}
