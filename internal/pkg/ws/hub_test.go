package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.NotNil(t, hub.clients)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_HasWatchers_NoConnections(t *testing.T) {
	hub := NewHub()

	assert.False(t, hub.HasWatchers("Jane Doe_Pune_1700000000"))
}

func TestHub_SendToSearch_NoWatchers(t *testing.T) {
	hub := NewHub()

	msg := &Message{
		Type: "search_progress",
		Data: map[string]string{"stage": "Searching..."},
	}

	// 没有连接时静默成功
	err := hub.SendToSearch("unknown", msg)
	assert.NoError(t, err)
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	c1 := &Client{SearchID: "search-a"}
	c2 := &Client{SearchID: "search-a"}
	c3 := &Client{SearchID: "search-b"}

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)

	assert.Equal(t, 3, hub.ConnectionCount())
	assert.True(t, hub.HasWatchers("search-a"))
	assert.True(t, hub.HasWatchers("search-b"))

	hub.Unregister(c1)
	assert.Equal(t, 2, hub.ConnectionCount())
	assert.True(t, hub.HasWatchers("search-a"))

	hub.Unregister(c2)
	assert.False(t, hub.HasWatchers("search-a"))
	assert.True(t, hub.HasWatchers("search-b"))
}

func TestHub_WithRealWebSocket(t *testing.T) {
	hub := NewHub()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}

		client := &Client{
			SearchID: "search-live",
			Conn:     conn,
		}
		hub.Register(client)

		time.Sleep(100 * time.Millisecond)

		hub.Unregister(client)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)

	assert.True(t, hub.HasWatchers("search-live"))
	assert.Equal(t, 1, hub.ConnectionCount())

	time.Sleep(100 * time.Millisecond)
}

func TestHub_SendToSearch_WithConnection(t *testing.T) {
	hub := NewHub()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := &Client{
			SearchID: "search-msg",
			Conn:     conn,
		}
		hub.Register(client)

		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)

	msg := &Message{
		Type: "search_progress",
		Data: map[string]interface{}{"percentage": 70, "stage": "Analyzing content with NLP..."},
	}
	err = hub.SendToSearch("search-msg", msg)
	assert.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, received, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(received), "search_progress")
	assert.Contains(t, string(received), "Analyzing content with NLP...")
}

func TestHub_MultipleSearches(t *testing.T) {
	hub := NewHub()

	searchIDs := make(chan string, 3)
	for _, id := range []string{"s1", "s2", "s3"} {
		searchIDs <- id
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := &Client{
			SearchID: <-searchIDs,
			Conn:     conn,
		}
		hub.Register(client)

		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	var conns []*websocket.Conn
	for i := 0; i < 3; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		conns = append(conns, conn)
	}

	defer func() {
		for _, conn := range conns {
			conn.Close()
		}
	}()

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 3, hub.ConnectionCount())
	assert.True(t, hub.HasWatchers("s1"))
	assert.True(t, hub.HasWatchers("s2"))
	assert.True(t, hub.HasWatchers("s3"))
	assert.False(t, hub.HasWatchers("s4"))
}
