package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type DemoInfo struct {
	DemoID      int64     `db:"demo_id" json:"demo_id"`
	Name        string    `db:"name" json:"name"`
	Uploader    string    `db:"uploader" json:"uploader"`
	Width       int32     `db:"width" json:"width"`
	Height      int32     `db:"height" json:"height"`
	MineCount   int32     `db:"mine_count" json:"mine_count"`
	ActionCount int32     `db:"action_count" json:"action_count"`
	Status      string    `db:"status" json:"status"`
	DurationMs  int64     `db:"duration_ms" json:"duration_ms"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Demo struct {
	DemoInfo
	Data []byte `db:"data" json:"-"`
}

const demoInfoColumns = `demo_id, name, uploader, width, height, mine_count,
	action_count, status, duration_ms, created_at`

type CreateDemoParams struct {
	Name        string
	Uploader    string
	Width       int32
	Height      int32
	MineCount   int32
	ActionCount int32
	Status      string
	DurationMs  int64
	Data        []byte
}

func (q Queries) CreateDemo(ctx context.Context, params CreateDemoParams) (*DemoInfo, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO demo (
			name, uploader, width, height, mine_count,
			action_count, status, duration_ms, data
		)
		VALUES (
			@name, @uploader, @width, @height, @mine_count,
			@action_count, @status, @duration_ms, @data
		)
		RETURNING `+demoInfoColumns+`;`,
		pgx.NamedArgs{
			"name":         params.Name,
			"uploader":     params.Uploader,
			"width":        params.Width,
			"height":       params.Height,
			"mine_count":   params.MineCount,
			"action_count": params.ActionCount,
			"status":       params.Status,
			"duration_ms":  params.DurationMs,
			"data":         params.Data,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[DemoInfo])
}

func (q Queries) FetchDemo(ctx context.Context, demoID int64) (*Demo, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT "+demoInfoColumns+", data FROM demo WHERE demo_id = $1",
		demoID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Demo])
}

type DemoFilter struct {
	Width     *int
	Height    *int
	MineCount *int
	Status    *string
	Limit     int
}

func (f DemoFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Width != nil {
		clauses = append(clauses, "width = @width")
		args["width"] = *f.Width
	}
	if f.Height != nil {
		clauses = append(clauses, "height = @height")
		args["height"] = *f.Height
	}
	if f.MineCount != nil {
		clauses = append(clauses, "mine_count = @mine_count")
		args["mine_count"] = *f.MineCount
	}
	if f.Status != nil {
		clauses = append(clauses, "status = @status")
		args["status"] = *f.Status
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) ListDemos(ctx context.Context, filter DemoFilter) ([]DemoInfo, error) {
	query := "SELECT " + demoInfoColumns + " FROM demo"

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY created_at DESC, demo_id DESC"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[DemoInfo])
}

// DeleteDemo reports whether a row was removed.
func (q Queries) DeleteDemo(ctx context.Context, demoID int64) (bool, error) {
	tag, err := q.db.Exec(ctx, "DELETE FROM demo WHERE demo_id = $1", demoID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
