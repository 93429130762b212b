/*
Package handler provides the HTTP handler function for WebSocket connection
upgrading and initialization.

HandleWebSocket rate-limits the handshake, reads the optional identity from
the query string, upgrades the connection, and hands the client to the
gateway. A connection without a userId stays anonymous and receives roster
broadcasts only.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/TaiefArnob/InstaVista/internal/app/realtime"
	"github.com/TaiefArnob/InstaVista/internal/pkg/errs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/limiter"
	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
	"github.com/TaiefArnob/InstaVista/internal/pkg/randx"
	"github.com/TaiefArnob/InstaVista/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket
// connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		// Identity is taken from the handshake, not the session cookie:
		// the frontend opens the socket with the account it is showing.
		// A malformed userId degrades the connection to anonymous mode
		// instead of rejecting it.
		userID := r.URL.Query().Get("userId")
		if userID != "" && !randx.IsValidObjectIDHex(userID) {
			logx.Warn("Malformed userId in WebSocket handshake, continuing as anonymous", "user_id", userID)
			userID = ""
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := realtime.NewClient(deps.Gateway, conn, userID)

		go client.WritePump()

		logx.Info("WebSocket connection established", "user_id", client.UserID())

		deps.Gateway.Attach(client)

		client.ReadPump()
	}
}
