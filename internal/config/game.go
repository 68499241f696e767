package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vancomm/minesweeper-demo/internal/mines"
)

var DefaultGameParams = mines.GameParams{Width: 15, Height: 15, MineCount: 35}

func lookupInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return v, nil
}

// NewGameParams reads SWEEPER_WIDTH, SWEEPER_HEIGHT and SWEEPER_MINES over
// [DefaultGameParams].
func NewGameParams() (*mines.GameParams, error) {
	width, err := lookupInt("SWEEPER_WIDTH", DefaultGameParams.Width)
	if err != nil {
		return nil, err
	}
	height, err := lookupInt("SWEEPER_HEIGHT", DefaultGameParams.Height)
	if err != nil {
		return nil, err
	}
	mineCount, err := lookupInt("SWEEPER_MINES", DefaultGameParams.MineCount)
	if err != nil {
		return nil, err
	}
	return &mines.GameParams{Width: width, Height: height, MineCount: mineCount}, nil
}

func LogFile() string {
	path, ok := os.LookupEnv("SWEEPER_LOG_FILE")
	if !ok || path == "" {
		return "sweeper.log"
	}
	return path
}
