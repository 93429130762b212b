package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TaiefArnob/InstaVista/internal/app/realtime"
	"github.com/TaiefArnob/InstaVista/internal/configs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/auth/jwt"
	"github.com/TaiefArnob/InstaVista/internal/pkg/errs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/resp"
)

// newTestRouter wires a router with a live gateway but no store or object
// storage behind it, enough for routing, auth gating, and WebSocket tests.
func newTestRouter(t *testing.T) (*AppDeps, *httptest.Server) {
	t.Helper()

	deps := &AppDeps{
		Gateway: realtime.NewGateway(realtime.NewRegistry()),
		Config: &configs.AppConfig{
			Environment: "development",
			JWTSecret:   "test-secret",
		},
	}

	srv := httptest.NewServer(Router(deps))

	t.Cleanup(srv.Close)
	t.Cleanup(deps.Gateway.Shutdown)

	return deps, srv
}

func decodeResponse(t *testing.T, res *http.Response) resp.JSONResponse {
	t.Helper()

	defer res.Body.Close()

	var body resp.JSONResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	return body
}

func TestHealthEndpoint(t *testing.T) {
	_, srv := newTestRouter(t)

	res, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}

	body := decodeResponse(t, res)
	if !body.Success {
		t.Error("expected success response")
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	_, srv := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/post/all"},
		{http.MethodGet, "/api/user/suggested"},
		{http.MethodPost, "/api/message/send/64f1c0ffee64f1c0ffee64f1"},
		{http.MethodDelete, "/api/post/delete/64f1c0ffee64f1c0ffee64f1"},
	}

	for _, tc := range paths {
		req, err := http.NewRequest(tc.method, srv.URL+tc.path, nil)
		if err != nil {
			t.Fatalf("request build failed: %v", err)
		}

		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}

		if res.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tc.method, tc.path, res.StatusCode)
		}

		body := decodeResponse(t, res)
		if body.Code != errs.ErrUnauthorized {
			t.Errorf("%s %s: code = %d, want %d", tc.method, tc.path, body.Code, errs.ErrUnauthorized)
		}
	}
}

func TestExpiredSessionIsAnonymous(t *testing.T) {
	_, srv := newTestRouter(t)

	token, err := jwt.GenerateToken(&jwt.Payload{UserID: "64f1c0ffee64f1c0ffee64f1"}, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/user/suggested", nil)
	if err != nil {
		t.Fatalf("request build failed: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: jwt.SessionCookieName, Value: token})

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for expired session", res.StatusCode)
	}
}

func TestWebSocketMalformedUserIDDegradesToAnonymous(t *testing.T) {
	deps, srv := newTestRouter(t)

	// A handshake with a broken identity still gets a connection; it just
	// stays a roster-only listener.
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?userId=not-an-object-id"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("expected upgrade despite malformed userId, got: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var ev struct {
		Event   string   `json:"event"`
		Payload []string `json:"payload"`
	}
	if err := json.Unmarshal(frame, &ev); err != nil {
		t.Fatalf("invalid frame %q: %v", frame, err)
	}

	if ev.Event != realtime.EventOnlineUsers {
		t.Errorf("first event = %q, want %q", ev.Event, realtime.EventOnlineUsers)
	}
	if len(ev.Payload) != 0 {
		t.Errorf("roster = %v, want empty for an anonymous connection", ev.Payload)
	}

	if online := deps.Gateway.OnlineUsers(); len(online) != 0 {
		t.Errorf("OnlineUsers() = %v, want empty", online)
	}
}

func TestWebSocketHandshakeAndRoster(t *testing.T) {
	deps, srv := newTestRouter(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?userId=64f1c0ffee64f1c0ffee64f1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var ev struct {
		Event   string   `json:"event"`
		Payload []string `json:"payload"`
	}
	if err := json.Unmarshal(frame, &ev); err != nil {
		t.Fatalf("invalid frame %q: %v", frame, err)
	}

	if ev.Event != realtime.EventOnlineUsers {
		t.Errorf("first event = %q, want %q", ev.Event, realtime.EventOnlineUsers)
	}
	if len(ev.Payload) != 1 || ev.Payload[0] != "64f1c0ffee64f1c0ffee64f1" {
		t.Errorf("roster = %v, want the connected user", ev.Payload)
	}

	if online := deps.Gateway.OnlineUsers(); len(online) != 1 {
		t.Errorf("OnlineUsers() = %v, want one entry", online)
	}
}
