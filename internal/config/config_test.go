package config

import (
	"testing"
	"time"

	"github.com/vancomm/minesweeper-demo/internal/mines"
)

func TestDevelopment(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"yes", true},
		{"0", false},
		{"", false},
		{"FALSE", false},
	}
	for _, test := range tests {
		t.Setenv("DEVELOPMENT", test.value)
		if have := Development(); have != test.want {
			t.Errorf("DEVELOPMENT=%q: have %t, want %t", test.value, have, test.want)
		}
	}
}

func TestNewGameParams(t *testing.T) {
	t.Setenv("SWEEPER_WIDTH", "")
	t.Setenv("SWEEPER_HEIGHT", "")
	t.Setenv("SWEEPER_MINES", "")
	p, err := NewGameParams()
	if err != nil {
		t.Fatal(err)
	}
	if *p != DefaultGameParams {
		t.Fatalf("have %+v, want %+v", *p, DefaultGameParams)
	}

	t.Setenv("SWEEPER_WIDTH", "30")
	t.Setenv("SWEEPER_HEIGHT", "16")
	t.Setenv("SWEEPER_MINES", "99")
	p, err = NewGameParams()
	if err != nil {
		t.Fatal(err)
	}
	if want := (mines.GameParams{Width: 30, Height: 16, MineCount: 99}); *p != want {
		t.Fatalf("have %+v, want %+v", *p, want)
	}

	t.Setenv("SWEEPER_MINES", "many")
	if _, err := NewGameParams(); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv("POSTGRES_USER", "demo")
	t.Setenv("POSTGRES_PASSWORD", "p@ss word")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "archive")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_SSLMODE", "")

	cfg, err := NewDatabase()
	if err != nil {
		t.Fatal(err)
	}
	want := "postgresql://demo:p%40ss%20word@db:5432/archive?sslmode=disable"
	if have := cfg.URL(); have != want {
		t.Fatalf("have %s, want %s", have, want)
	}
}

func TestNewJWTBadKey(t *testing.T) {
	t.Setenv("JWT_PUBLIC_KEY", "not a pem block")
	if _, err := NewJWT(); err == nil {
		t.Fatal("expected an error for a malformed public key")
	}
}

func TestNewWebSocket(t *testing.T) {
	t.Setenv("WS_WRITE_WAIT_SECONDS", "")
	ws, err := NewWebSocket()
	if err != nil {
		t.Fatal(err)
	}
	if ws.WriteWait != 10*time.Second {
		t.Fatalf("have %v, want %v", ws.WriteWait, 10*time.Second)
	}

	t.Setenv("WS_WRITE_WAIT_SECONDS", "soon")
	if _, err := NewWebSocket(); err == nil {
		t.Fatal("expected a parse error")
	}
}
