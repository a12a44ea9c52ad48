package spectate

import (
	"encoding/json"
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Clients() = %d, want %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() failed: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("invalid message %q: %v", data, err)
	}
	return msg
}

func TestHubBroadcastsSnapshots(t *testing.T) {
	hub := NewHub(WithEvery(2))
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	waitClients(t, hub, 1)

	// Tick 1 carries a state change, tick 3 is skipped, tick 4 is on the interval.
	hub.Render(platformer.Snapshot{Tick: 1, State: platformer.StateRunning, Score: 1})
	hub.Render(platformer.Snapshot{Tick: 3, State: platformer.StateRunning, Score: 3})
	hub.Render(platformer.Snapshot{Tick: 4, State: platformer.StateRunning, Score: 4})
	hub.OnGameOver(4, true)

	first := readMessage(t, conn)
	if first.Type != TypeSnapshot || first.Snapshot == nil || first.Snapshot.Tick != 1 {
		t.Fatalf("first message = %+v", first)
	}
	if first.Snapshot.State != platformer.StateRunning {
		t.Errorf("state = %v, want running", first.Snapshot.State)
	}

	second := readMessage(t, conn)
	if second.Snapshot == nil || second.Snapshot.Tick != 4 {
		t.Fatalf("second message = %+v, want tick 4", second)
	}

	third := readMessage(t, conn)
	if third.Type != TypeGameOver || third.Score != 4 || !third.NewBest {
		t.Errorf("third message = %+v", third)
	}
}

func TestHubDrivenByEngine(t *testing.T) {
	hub := NewHub(WithEvery(1000))
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	waitClients(t, hub, 1)

	engine, err := platformer.NewEngine(
		config.DefaultPlatformerConfig(),
		rand.New(rand.NewSource(1)),
		platformer.WithAdapter(hub),
	)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	engine.Start()
	engine.Tick()

	msg := readMessage(t, conn)
	if msg.Type != TypeSnapshot || msg.Snapshot.State != platformer.StateRunning {
		t.Errorf("expected running snapshot on start, got %+v", msg)
	}
	if len(msg.Snapshot.Platforms) == 0 {
		t.Error("snapshot should carry visible platforms")
	}
}

func TestHubDisconnect(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitClients(t, hub, 1)

	conn.Close()
	waitClients(t, hub, 0)

	// Broadcasting with no clients is a no-op.
	hub.Render(platformer.Snapshot{Tick: 1, State: platformer.StateRunning})
	if hub.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", hub.Dropped())
	}
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitClients(t, hub, 1)

	hub.Close()
	if hub.Clients() != 0 {
		t.Errorf("Clients() = %d after Close", hub.Clients())
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("expected normal closure, got %v", err)
	}
}
