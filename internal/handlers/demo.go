package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vancomm/minesweeper-demo/internal/actionlog"
	"github.com/vancomm/minesweeper-demo/internal/config"
	"github.com/vancomm/minesweeper-demo/internal/demo"
	"github.com/vancomm/minesweeper-demo/internal/middleware"
	"github.com/vancomm/minesweeper-demo/internal/mines"
	"github.com/vancomm/minesweeper-demo/internal/repository"
)

// MaxDemoBytes caps upload bodies.
const MaxDemoBytes = 16 << 20

type DemoStore interface {
	CreateDemo(ctx context.Context, params repository.CreateDemoParams) (*repository.DemoInfo, error)
	FetchDemo(ctx context.Context, demoID int64) (*repository.Demo, error)
	ListDemos(ctx context.Context, filter repository.DemoFilter) ([]repository.DemoInfo, error)
	DeleteDemo(ctx context.Context, demoID int64) (bool, error)
}

type DemoHandler struct {
	logger  *slog.Logger
	store   DemoStore
	ws      *config.WebSocket
	decoder *schema.Decoder
}

func NewDemoHandler(
	logger *slog.Logger,
	store DemoStore,
	ws *config.WebSocket,
) *DemoHandler {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	handler := &DemoHandler{
		logger:  logger,
		store:   store,
		ws:      ws,
		decoder: dec,
	}

	return handler
}

type UploadParams struct {
	Name string `schema:"name,required"`
}

type ListParams struct {
	Width     *int    `schema:"width"`
	Height    *int    `schema:"height"`
	MineCount *int    `schema:"mine_count"`
	Status    *string `schema:"status"`
	Limit     int     `schema:"limit"`
}

type ReplayParams struct {
	Speed float64 `schema:"speed"`
}

func parseDemoID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid demo id %q", r.PathValue("id"))
	}
	return id, nil
}

func (h DemoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UploaderClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var params UploadParams
	if err := h.decoder.Decode(&params, r.URL.Query()); err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if params.Name == "" {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, errors.New("name must not be empty"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDemoBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			SendErrorOrLog(w, h.logger, http.StatusRequestEntityTooLarge, err)
			return
		}
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}

	d, err := demo.Decode(body)
	if err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if d.Log.Empty() {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, demo.ErrEmptyRecording)
		return
	}

	summary, err := demo.Outcome(r.Context(), d)
	if err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}

	data, err := demo.Encode(d)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to re-encode uploaded demo", slog.Any("error", err))
		return
	}

	info, err := h.store.CreateDemo(r.Context(), repository.CreateDemoParams{
		Name:        params.Name,
		Uploader:    claims.Uploader,
		Width:       int32(d.Width),
		Height:      int32(d.Height),
		MineCount:   int32(d.MineCount),
		ActionCount: int32(d.Log.Len()),
		Status:      summary.Status.String(),
		DurationMs:  int64(summary.Elapsed / time.Millisecond),
		Data:        data,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		SendErrorOrLog(w, h.logger, http.StatusConflict,
			fmt.Errorf("demo %q already exists", params.Name))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to store demo", slog.Any("error", err))
		return
	}

	h.logger.Debug(
		"stored demo",
		slog.Int64("demo_id", info.DemoID),
		slog.String("uploader", info.Uploader),
		slog.String("status", info.Status),
	)

	w.Header().Set("Location", fmt.Sprintf("/demos/%d", info.DemoID))
	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, h.logger, info)
}

func (h DemoHandler) List(w http.ResponseWriter, r *http.Request) {
	var params ListParams
	if err := h.decoder.Decode(&params, r.URL.Query()); err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if params.Limit < 0 {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, errors.New("limit must not be negative"))
		return
	}

	demos, err := h.store.ListDemos(r.Context(), repository.DemoFilter(params))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to list demos", slog.Any("error", err))
		return
	}
	if demos == nil {
		demos = []repository.DemoInfo{}
	}

	sendJSONOrLog(w, h.logger, demos)
}

func (h DemoHandler) fetch(w http.ResponseWriter, r *http.Request) (*repository.Demo, bool) {
	demoID, err := parseDemoID(r)
	if err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}
	stored, err := h.store.FetchDemo(r.Context(), demoID)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch demo from db", slog.Any("error", err))
		return nil, false
	}
	return stored, true
}

func (h DemoHandler) Download(w http.ResponseWriter, r *http.Request) {
	stored, ok := h.fetch(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(stored.Data)))
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", stored.Name+".demo"),
	)
	if _, err := w.Write(stored.Data); err != nil {
		h.logger.Error("unable to send demo", slog.Any("error", err))
	}
}

func (h DemoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	demoID, err := parseDemoID(r)
	if err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}

	deleted, err := h.store.DeleteDemo(r.Context(), demoID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to delete demo", slog.Any("error", err))
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReplayFrame is sent over the websocket after every replayed action, and
// once more with End set when the replay stops.
type ReplayFrame struct {
	Index  int               `json:"index"`
	Action *actionlog.Action `json:"action,omitempty"`
	Status string            `json:"status"`
	Error  string            `json:"error,omitempty"`
	Cursor mines.Point       `json:"cursor"`
	Width  int               `json:"width"`
	Grid   mines.Grid        `json:"grid"`
	End    string            `json:"end,omitempty"`
}

func (h DemoHandler) Replay(w http.ResponseWriter, r *http.Request) {
	params := ReplayParams{Speed: 1}
	if err := h.decoder.Decode(&params, r.URL.Query()); err != nil {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if params.Speed <= 0 {
		SendErrorOrLog(w, h.logger, http.StatusBadRequest, errors.New("speed must be positive"))
		return
	}

	stored, ok := h.fetch(w, r)
	if !ok {
		return
	}
	d, err := demo.Decode(stored.Data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid demo.data", slog.Any("error", err))
		return
	}
	replayer, err := demo.NewReplayer(d, demo.RealClock{Speed: params.Speed})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to start replay", slog.Any("error", err))
		return
	}
	defer replayer.Close()

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// the client only ever closes; any read error ends the replay
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	session := replayer.Session()
	frame := func(step demo.Step) ReplayFrame {
		f := ReplayFrame{
			Index:  step.Index,
			Status: session.Status().String(),
			Cursor: session.Cursor(),
			Width:  session.Board().Width,
			Grid:   session.Board().Grid(),
		}
		if step.Index > 0 {
			f.Action = &step.Action
		}
		if step.Err != nil {
			f.Error = step.Err.Error()
		}
		return f
	}

	send := func(f ReplayFrame) error {
		conn.SetWriteDeadline(time.Now().Add(h.ws.WriteWait))
		return conn.WriteJSON(f)
	}

	end, err := replayer.Run(ctx, func(step demo.Step) error {
		return send(frame(step))
	})
	if err != nil {
		h.logger.Debug("replay interrupted", slog.Any("error", err))
		return
	}

	last := frame(demo.Step{})
	last.End = end.String()
	if err := send(last); err != nil {
		h.logger.Debug("unable to send final frame", slog.Any("error", err))
		return
	}
	conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, end.String()),
		time.Now().Add(h.ws.WriteWait),
	)
}
