package hub

import (
	"encoding/json"

	"github.com/edaniels/golog"
	"github.com/gorilla/websocket"
)

// Executor runs one command line from a client. Implemented by the command
// package; kept as a local interface so the hub stays decoupled from it.
type Executor interface {
	Execute(line string) (string, error)
}

// Client is one connected WebSocket client.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	logger golog.Logger
}

func NewClient(h *Hub, conn *websocket.Conn, logger golog.Logger) *Client {
	return &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		logger: logger,
	}
}

// Send queues a message for this client only, dropping it if the client is
// backed up.
func (c *Client) Send(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}

// WritePump moves messages from the send channel onto the connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump reads command lines from the client, executes them, and replies
// with a result or error message on this client's connection.
func (c *Client) ReadPump(exec Executor) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		line := string(raw)
		reply, err := exec.Execute(line)
		var msg *Message
		if err != nil {
			c.logger.Debugw("command rejected", "command", line, "error", err)
			msg = NewErrorMessage(err)
		} else {
			msg = NewResultMessage(reply)
		}

		data, merr := json.Marshal(msg)
		if merr != nil {
			c.logger.Errorw("encode reply", "error", merr)
			continue
		}
		c.Send(data)
	}
}
