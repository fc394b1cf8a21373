package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"intranet/common"
	"intranet/entity"
	"intranet/metrics"
)

var ErrHubClosed = errors.New("websocket hub closed")

type Client struct {
	Conn *common.WSConn
	Send chan []byte
}

// Hub fans document mutations out to every connected browser. It satisfies
// notification.Document, so toasts can be rendered remotely.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan common.WSMessage

	clients map[*Client]struct{}
	count   atomic.Int64
	done    chan struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan common.WSMessage, 256),
		clients:    make(map[*Client]struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	defer func() {
		for c := range h.clients {
			h.drop(c)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case client := <-h.Register:
			h.clients[client] = struct{}{}
			h.count.Add(1)
			metrics.WebSocketClients.Inc()
		case client := <-h.Unregister:
			h.drop(client)
		case msg := <-h.Broadcast:
			data, err := json.Marshal(msg)
			if err != nil {
				h.logger.Error("encode websocket message", zap.Error(err))
				continue
			}
			for client := range h.clients {
				select {
				case client.Send <- data:
				default:
					h.logger.Warn("dropping slow websocket client")
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.Send)
	h.count.Add(-1)
	metrics.WebSocketClients.Dec()
}

// ClientCount is the number of registered clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

func (h *Hub) publish(msg common.WSMessage) error {
	msg.Timestamp = time.Now().Format(time.RFC3339)
	select {
	case h.Broadcast <- msg:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

func (h *Hub) Append(n entity.Notification) error {
	el := n.Clone()
	return h.publish(common.WSMessage{Event: common.EventAppend, ID: el.ID, Element: &el})
}

func (h *Hub) AddClass(id, class string) error {
	return h.publish(common.WSMessage{Event: common.EventAddClass, ID: id, Class: class})
}

func (h *Hub) RemoveClass(id, class string) error {
	return h.publish(common.WSMessage{Event: common.EventRemoveClass, ID: id, Class: class})
}

func (h *Hub) Remove(id string) error {
	return h.publish(common.WSMessage{Event: common.EventRemove, ID: id})
}
