package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intranet/common"
	"intranet/entity"
)

func startHub(t *testing.T) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, srv, cancel
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) common.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg common.WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_BroadcastsMutations(t *testing.T) {
	hub, srv, _ := startHub(t)
	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Append(entity.Notification{
		ID:      "n1",
		Type:    "success",
		Message: "Guardado",
		Classes: []string{"notification", "notification-success"},
	}))
	require.NoError(t, hub.AddClass("n1", "show"))
	require.NoError(t, hub.RemoveClass("n1", "show"))
	require.NoError(t, hub.Remove("n1"))

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		assert.Equal(t, common.EventAppend, msg.Event)
		require.NotNil(t, msg.Element)
		assert.Equal(t, "Guardado", msg.Element.Message)

		msg = readMessage(t, conn)
		assert.Equal(t, common.EventAddClass, msg.Event)
		assert.Equal(t, "show", msg.Class)

		assert.Equal(t, common.EventRemoveClass, readMessage(t, conn).Event)
		assert.Equal(t, common.EventRemove, readMessage(t, conn).Event)
	}
}

func TestHub_UnregistersClosedClients(t *testing.T) {
	hub, srv, _ := startHub(t)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_PublishAfterStop(t *testing.T) {
	hub, _, cancel := startHub(t)
	cancel()

	require.Eventually(t, func() bool {
		// Buffered sends can still win the select until the buffer fills.
		return hub.Remove("n1") == ErrHubClosed
	}, time.Second, time.Millisecond)
}
