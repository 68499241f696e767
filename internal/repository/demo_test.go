package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-demo/internal/database"
)

func TestDemoFilterWhereClause(t *testing.T) {
	width, mineCount, status := 9, 10, "won"
	tests := []struct {
		filter DemoFilter
		clause string
		nargs  int
	}{
		{DemoFilter{}, "", 0},
		{DemoFilter{Width: &width}, "width = @width", 1},
		{
			DemoFilter{Width: &width, MineCount: &mineCount, Status: &status},
			"width = @width AND mine_count = @mine_count AND status = @status",
			3,
		},
	}
	for _, test := range tests {
		clause, args := test.filter.WhereClause()
		if clause != test.clause {
			t.Errorf("have %q, want %q", clause, test.clause)
		}
		if len(args) != test.nargs {
			t.Errorf("have %d args, want %d", len(args), test.nargs)
		}
	}
}

func setupTestQueries(t *testing.T) *Queries {
	t.Helper()
	if _, ok := os.LookupEnv("DATABASE_URL"); !ok {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, _, err := database.ConnectAndMigrate(ctx, database.Migrations)
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}
	t.Cleanup(pool.Close)
	return New(pool)
}

func TestDemoLifecycle(t *testing.T) {
	q := setupTestQueries(t)
	ctx := context.Background()
	name := fmt.Sprintf("lifecycle-%d", time.Now().UnixNano())

	params := CreateDemoParams{
		Name:        name,
		Uploader:    "tester",
		Width:       2,
		Height:      1,
		MineCount:   1,
		ActionCount: 1,
		Status:      "won",
		DurationMs:  500,
		Data:        []byte{1, 2, 3},
	}
	info, err := q.CreateDemo(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, name, info.Name)
	assert.Equal(t, "won", info.Status)
	assert.Equal(t, int64(500), info.DurationMs)

	_, err = q.CreateDemo(ctx, params)
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, pgerrcode.UniqueViolation, pgErr.Code)

	fetched, err := q.FetchDemo(ctx, info.DemoID)
	require.NoError(t, err)
	assert.Equal(t, params.Data, fetched.Data)

	width := 2
	list, err := q.ListDemos(ctx, DemoFilter{Width: &width, Limit: 100})
	require.NoError(t, err)
	ids := make([]int64, 0, len(list))
	for _, d := range list {
		ids = append(ids, d.DemoID)
	}
	assert.Contains(t, ids, info.DemoID)

	deleted, err := q.DeleteDemo(ctx, info.DemoID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = q.FetchDemo(ctx, info.DemoID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	deleted, err = q.DeleteDemo(ctx, info.DemoID)
	require.NoError(t, err)
	assert.False(t, deleted, "deleted a missing demo")
}
