/*
Package realtime implements the presence and event-delivery subsystem.

It tracks which users currently hold an open WebSocket connection, pushes
the online roster to every client whenever that set changes, and routes
targeted events (new chat messages, like/dislike notifications) to the one
connection registered for the recipient. Delivery is best-effort: an
offline recipient is a silent no-op and a failed write is never surfaced
to the HTTP handler that triggered it.
*/
package realtime

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TaiefArnob/InstaVista/internal/app/model"
)

// Server-push event names. These are part of the wire contract with the
// frontend subscriber.
const (
	// EventOnlineUsers carries the full online roster (replace, not diff).
	EventOnlineUsers = "getOnlineUsers"

	// EventNewMessage carries a persisted direct message document.
	EventNewMessage = "newMessage"

	// EventNotification carries a like/dislike notification.
	EventNotification = "notification"
)

// Event is the envelope for every frame pushed to a client.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Notification is the payload of the notification event.
type Notification struct {
	// Type is "like" or "dislike".
	Type string `json:"type"`

	// UserID identifies the acting user.
	UserID primitive.ObjectID `json:"userId"`

	// UserDetails is the acting user's public summary.
	UserDetails model.UserSummary `json:"userDetails"`

	// PostID identifies the affected post.
	PostID primitive.ObjectID `json:"postId"`

	// Message is the display text for the notification.
	Message string `json:"message"`
}
