package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket configures the replay stream. Frames carry the whole grid, so
// the write buffer is sized for a large board.
type WebSocket struct {
	Upgrader  websocket.Upgrader
	WriteWait time.Duration
}

func NewWebSocket() (*WebSocket, error) {
	writeWait, err := lookupInt("WS_WRITE_WAIT_SECONDS", 10)
	if err != nil {
		return nil, err
	}

	ws := &WebSocket{
		Upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   512,
			WriteBufferSize:  16 << 10,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		WriteWait: time.Duration(writeWait) * time.Second,
	}

	return ws, nil
}
