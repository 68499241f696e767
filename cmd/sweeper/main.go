package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-demo/internal/config"
	"github.com/vancomm/minesweeper-demo/internal/mines"
)

var log = logrus.New()

type options struct {
	params mines.GameParams
	seed   uint64
	record string
	replay string
	speed  float64
}

func parseOptions(args []string, defaults mines.GameParams) (*options, error) {
	o := &options{}
	var preset string

	fs := flag.NewFlagSet("sweeper", flag.ContinueOnError)
	fs.IntVar(&o.params.Width, "width", defaults.Width, "board width")
	fs.IntVar(&o.params.Height, "height", defaults.Height, "board height")
	fs.IntVar(&o.params.MineCount, "mines", defaults.MineCount, "number of mines")
	fs.StringVar(&preset, "game", "", `board as "width:height:mines", overrides -width, -height and -mines`)
	fs.Uint64Var(&o.seed, "seed", 0, "mine layout seed, random when 0")
	fs.StringVar(&o.record, "record", "", "save the game as a demo at this path")
	fs.StringVar(&o.replay, "replay", "", "replay the demo at this path instead of playing")
	fs.Float64Var(&o.speed, "speed", 1, "replay speed multiplier")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if preset != "" {
		params, err := mines.ParseSeed(preset)
		if err != nil {
			return nil, err
		}
		o.params = *params
	}
	if o.record != "" && o.replay != "" {
		return nil, errors.New("-record and -replay are mutually exclusive")
	}
	if o.speed <= 0 {
		return nil, fmt.Errorf("speed must be positive, got %v", o.speed)
	}
	if o.replay == "" {
		if err := o.params.Validate(); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// setupLogging sends every entry to a rotating log file; the terminal is
// taken by the board.
func setupLogging(path string) error {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetOutput(io.Discard)

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logLevel,
		Formatter:  &logrus.TextFormatter{FullTimestamp: true, DisableColors: true},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file %s: %w", path, err)
	}
	log.AddHook(hook)
	return nil
}

func run() int {
	defaults, err := config.NewGameParams()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	opts, err := parseOptions(os.Args[1:], *defaults)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := setupLogging(config.LogFile()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if opts.replay != "" {
		err = runReplay(ctx, os.Stdout, opts.replay, opts.speed)
	} else {
		err = runGame(ctx, os.Stdin, os.Stdout, opts)
	}
	if err != nil {
		log.WithError(err).Error("sweeper stopped")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
