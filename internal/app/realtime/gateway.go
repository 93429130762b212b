package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
)

// Gateway owns the lifecycle of every real-time connection. Attach and
// detach requests are serialized through one run loop; each registry
// mutation rebroadcasts the full online roster to all open connections,
// anonymous listeners included.
//
// The gateway is also the event router: Notify delivers a named event to
// the one connection registered for a user, Broadcast to everyone.
type Gateway struct {
	// registry maps user IDs to their registered connection.
	registry *Registry

	// conns holds every open connection, including anonymous ones.
	conns map[*Client]struct{}

	// mu protects conns; Broadcast reads it from handler goroutines.
	mu sync.RWMutex

	// attach and detach queue lifecycle requests for the run loop.
	attach   chan *Client
	detach   chan *Client
	stopChan chan struct{}

	// wg waits for the run loop to finish during shutdown.
	wg sync.WaitGroup

	// structured logger with gateway context.
	logger zerolog.Logger
}

// NewGateway constructs a Gateway around the given registry and starts its
// run loop.
func NewGateway(registry *Registry) *Gateway {
	gatewayLogger := logx.Logger().With().Str("component", "Gateway").Logger()

	g := &Gateway{
		registry: registry,
		conns:    make(map[*Client]struct{}),
		attach:   make(chan *Client),
		detach:   make(chan *Client),
		stopChan: make(chan struct{}),
		logger:   gatewayLogger,
	}

	g.wg.Add(1)

	go g.run()

	return g
}

// run is the gateway's event loop. All connection lifecycle transitions
// happen here, which keeps attach-then-detach ordered per connection.
func (g *Gateway) run() {
	defer g.wg.Done()

	g.logger.Info().Msg("Gateway run loop started.")

	for {
		select {
		case client := <-g.attach:
			g.mu.Lock()
			g.conns[client] = struct{}{}
			total := len(g.conns)
			g.mu.Unlock()

			if client.userID != "" {
				g.registry.Register(client.userID, client)
			}

			g.logger.Info().
				Str("conn_id", client.connID).
				Str("user_id", client.userID).
				Int("total_conns", total).
				Msg("Connection attached.")

			g.broadcastRoster()

		case client := <-g.detach:
			g.mu.Lock()
			_, known := g.conns[client]
			if known {
				delete(g.conns, client)
			}
			total := len(g.conns)
			g.mu.Unlock()

			if !known {
				continue
			}

			if client.userID != "" {
				if removed := g.registry.Unregister(client.userID, client); !removed {
					g.logger.Info().
						Str("conn_id", client.connID).
						Str("user_id", client.userID).
						Msg("Ignoring registry removal for stale connection.")
				}
			}

			client.shutdown()

			g.logger.Info().
				Str("conn_id", client.connID).
				Str("user_id", client.userID).
				Int("total_conns", total).
				Msg("Connection detached.")

			g.broadcastRoster()

		case <-g.stopChan:
			g.mu.Lock()
			for client := range g.conns {
				client.shutdown()
				if client.userID != "" {
					g.registry.Unregister(client.userID, client)
				}
			}
			g.conns = make(map[*Client]struct{})
			g.mu.Unlock()

			g.logger.Info().Msg("Gateway run loop stopped.")
			return
		}
	}
}

// Attach hands a new connection to the run loop.
func (g *Gateway) Attach(client *Client) {
	select {
	case g.attach <- client:
	case <-g.stopChan:
		g.logger.Warn().Str("conn_id", client.connID).Msg("Attach after shutdown, closing connection.")
		client.shutdown()
	}
}

// Detach hands a closing connection to the run loop. Safe to call more
// than once for the same client.
func (g *Gateway) Detach(client *Client) {
	select {
	case g.detach <- client:
	case <-g.stopChan:
		client.shutdown()
	}
}

// Notify delivers a named event to the connection registered for
// targetUserID. An offline target is a silent no-op; a failed enqueue is
// logged and dropped. The caller never learns about either, which is the
// contract: notifications are a convenience layer, not a durable inbox.
func (g *Gateway) Notify(targetUserID string, event string, payload any) {
	client, ok := g.registry.Lookup(targetUserID)
	if !ok {
		g.logger.Debug().
			Str("target_user_id", targetUserID).
			Str("event", event).
			Msg("Notify target offline, dropping event.")
		return
	}

	frame, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		g.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal event.")
		return
	}

	_ = client.enqueue(frame)
}

// Broadcast delivers a named event to every open connection, registered
// or anonymous.
func (g *Gateway) Broadcast(event string, payload any) {
	frame, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		g.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal broadcast event.")
		return
	}

	g.mu.RLock()
	clients := make([]*Client, 0, len(g.conns))
	for client := range g.conns {
		clients = append(clients, client)
	}
	g.mu.RUnlock()

	for _, client := range clients {
		_ = client.enqueue(frame)
	}
}

// OnlineUsers returns the sorted user IDs currently online.
func (g *Gateway) OnlineUsers() []string {
	return g.registry.ListOnline()
}

// broadcastRoster pushes the current roster to every open connection.
func (g *Gateway) broadcastRoster() {
	g.Broadcast(EventOnlineUsers, g.registry.ListOnline())
}

// Shutdown stops the run loop and closes every connection. It blocks until
// the loop has exited.
func (g *Gateway) Shutdown() {
	g.logger.Info().Msg("Shutting down gateway...")

	select {
	case <-g.stopChan:
	default:
		close(g.stopChan)
	}

	g.wg.Wait()

	g.logger.Info().Msg("Gateway shutdown complete.")
}
