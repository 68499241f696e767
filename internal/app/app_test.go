package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-demo/internal/config"
	"github.com/vancomm/minesweeper-demo/internal/handlers"
	"github.com/vancomm/minesweeper-demo/internal/repository"
)

type emptyStore struct{}

func (emptyStore) CreateDemo(context.Context, repository.CreateDemoParams) (*repository.DemoInfo, error) {
	return nil, pgx.ErrTxClosed
}

func (emptyStore) FetchDemo(context.Context, int64) (*repository.Demo, error) {
	return nil, pgx.ErrNoRows
}

func (emptyStore) ListDemos(context.Context, repository.DemoFilter) ([]repository.DemoInfo, error) {
	return nil, nil
}

func (emptyStore) DeleteDemo(context.Context, int64) (bool, error) {
	return false, nil
}

func TestReadOnlyRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(logger, nil)
	ws, err := config.NewWebSocket()
	if err != nil {
		t.Fatal(err)
	}
	a.mountDemoRoutes(handlers.NewDemoHandler(logger, emptyStore{}, ws))
	srv := httptest.NewServer(a.Handler("/api/"))
	defer srv.Close()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/demos", http.StatusOK},
		{http.MethodGet, "/api/demos/7", http.StatusNotFound},
		{http.MethodPost, "/api/demos?name=x", http.StatusForbidden},
		{http.MethodDelete, "/api/demos/7", http.StatusForbidden},
		{http.MethodGet, "/demos", http.StatusNotFound},
	}
	for _, test := range tests {
		t.Run(test.method+" "+test.path, func(t *testing.T) {
			req, err := http.NewRequest(test.method, srv.URL+test.path, strings.NewReader(""))
			if err != nil {
				t.Fatal(err)
			}
			res, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			res.Body.Close()
			if res.StatusCode != test.want {
				t.Fatalf("have status %d, want %d", res.StatusCode, test.want)
			}
		})
	}
}
