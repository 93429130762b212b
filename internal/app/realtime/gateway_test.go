package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// testEvent mirrors the wire envelope with a raw payload for per-test
// decoding.
type testEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// newGatewayServer starts a gateway and an httptest server that upgrades
// /ws?userId=X connections into gateway clients.
func newGatewayServer(t *testing.T) (*Gateway, *httptest.Server) {
	t.Helper()

	g := NewGateway(NewRegistry())

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := NewClient(g, conn, r.URL.Query().Get("userId"))
		go client.WritePump()
		g.Attach(client)
		client.ReadPump()
	}))

	t.Cleanup(srv.Close)
	t.Cleanup(g.Shutdown)

	return g, srv
}

func dialWS(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	if userID != "" {
		url += "?userId=" + userID
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed for %q: %v", userID, err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) testEvent {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var ev testEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("invalid event frame %q: %v", data, err)
	}

	return ev
}

// waitForRoster reads events until a roster matching want arrives. Other
// events and intermediate rosters are skipped.
func waitForRoster(t *testing.T, conn *websocket.Conn, want []string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ev := readEvent(t, conn)
		if ev.Event != EventOnlineUsers {
			continue
		}

		var roster []string
		if err := json.Unmarshal(ev.Payload, &roster); err != nil {
			t.Fatalf("invalid roster payload %q: %v", ev.Payload, err)
		}

		if reflect.DeepEqual(roster, want) || (len(roster) == 0 && len(want) == 0) {
			return
		}
	}

	t.Fatalf("roster %v never arrived", want)
}

func TestGatewayRosterOnConnect(t *testing.T) {
	_, srv := newGatewayServer(t)

	alice := dialWS(t, srv, "alice")
	waitForRoster(t, alice, []string{"alice"})

	bob := dialWS(t, srv, "bob")
	waitForRoster(t, bob, []string{"alice", "bob"})
	waitForRoster(t, alice, []string{"alice", "bob"})
}

func TestGatewayRosterOnDisconnect(t *testing.T) {
	_, srv := newGatewayServer(t)

	alice := dialWS(t, srv, "alice")
	bob := dialWS(t, srv, "bob")
	waitForRoster(t, alice, []string{"alice", "bob"})

	bob.Close()

	waitForRoster(t, alice, []string{"alice"})
}

func TestGatewayAnonymousReceivesRoster(t *testing.T) {
	_, srv := newGatewayServer(t)

	anon := dialWS(t, srv, "")
	waitForRoster(t, anon, []string{})

	dialWS(t, srv, "alice")

	// The anonymous connection observes presence changes without ever
	// appearing in the roster itself.
	waitForRoster(t, anon, []string{"alice"})
}

func TestGatewayNotifyDeliversToTarget(t *testing.T) {
	g, srv := newGatewayServer(t)

	alice := dialWS(t, srv, "alice")
	bob := dialWS(t, srv, "bob")
	waitForRoster(t, alice, []string{"alice", "bob"})
	waitForRoster(t, bob, []string{"alice", "bob"})

	g.Notify("alice", EventNewMessage, map[string]string{"message": "hi"})

	for {
		ev := readEvent(t, alice)
		if ev.Event != EventNewMessage {
			continue
		}

		var payload map[string]string
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload["message"] != "hi" {
			t.Errorf("payload = %v, want message hi", payload)
		}
		break
	}

	// The sender's connection must not receive the targeted event.
	g.Notify("alice", EventNewMessage, map[string]string{"message": "again"})
	bob.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	for {
		_, data, err := bob.ReadMessage()
		if err != nil {
			break
		}

		var ev testEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("invalid frame: %v", err)
		}
		if ev.Event == EventNewMessage {
			t.Fatal("event leaked to a non-target connection")
		}
	}
}

func TestGatewayNotifyOfflineIsNoop(t *testing.T) {
	g, srv := newGatewayServer(t)

	alice := dialWS(t, srv, "alice")
	waitForRoster(t, alice, []string{"alice"})

	// Nothing to deliver to, nothing to fail with.
	g.Notify("ghost", EventNotification, map[string]string{"type": "like"})

	alice.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	for {
		_, data, err := alice.ReadMessage()
		if err != nil {
			break
		}

		var ev testEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("invalid frame: %v", err)
		}
		if ev.Event == EventNotification {
			t.Fatal("offline notify must not reach other connections")
		}
	}
}

func TestGatewayLastConnectWinsAcrossTabs(t *testing.T) {
	g, srv := newGatewayServer(t)

	watcher := dialWS(t, srv, "watcher")
	waitForRoster(t, watcher, []string{"watcher"})

	tab1 := dialWS(t, srv, "bob")
	waitForRoster(t, watcher, []string{"bob", "watcher"})

	tab2 := dialWS(t, srv, "bob")
	waitForRoster(t, tab2, []string{"bob", "watcher"})

	// The first tab closing must not take bob offline: the registry entry
	// now belongs to the second connection.
	tab1.Close()
	time.Sleep(200 * time.Millisecond)

	g.Notify("bob", EventNewMessage, map[string]string{"message": "still there"})

	for {
		ev := readEvent(t, tab2)
		if ev.Event == EventNewMessage {
			break
		}
	}

	if online := g.OnlineUsers(); !reflect.DeepEqual(online, []string{"bob", "watcher"}) {
		t.Errorf("OnlineUsers() = %v, want [bob watcher]", online)
	}
}

func TestGatewayShutdownClosesConnections(t *testing.T) {
	g, srv := newGatewayServer(t)

	alice := dialWS(t, srv, "alice")
	waitForRoster(t, alice, []string{"alice"})

	g.Shutdown()

	alice.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := alice.ReadMessage(); err != nil {
			break
		}
	}

	// Nobody is online once the gateway has stopped.
	if online := g.OnlineUsers(); len(online) != 0 {
		t.Errorf("OnlineUsers() after shutdown = %v, want empty", online)
	}

	// Repeat shutdown must be safe.
	g.Shutdown()
}
