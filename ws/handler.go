package ws

import (
	"net/http"

	"go.uber.org/zap"

	"intranet/common"
)

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := common.NewWSConn(w, r)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	select {
	case h.Register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go h.read(client)
	go h.write(client)
}

// read only drains control frames; browsers never send toasts.
func (h *Hub) read(c *Client) {
	defer func() {
		select {
		case h.Unregister <- c:
		case <-h.done:
		}
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			h.logger.Debug("websocket read ended", zap.Error(err))
			return
		}
	}
}

func (h *Hub) write(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(msg); err != nil {
			h.logger.Debug("websocket write failed", zap.Error(err))
			return
		}
	}
}
