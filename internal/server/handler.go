package server

import (
	"net/http"

	"github.com/edaniels/golog"
	"github.com/gorilla/websocket"

	"github.com/molpad/molpad/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local use only
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, exec hub.Executor, logger golog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warnw("websocket upgrade failed", "error", err)
			return
		}

		client := hub.NewClient(h, conn, logger)
		h.Register(client)

		// Bring the new client up to date before the pumps start
		b.SendStatus(client)

		go client.WritePump()
		go client.ReadPump(exec)
	}
}
