package session

import (
	"context"

	"github.com/peopleops/hrdesk/models"
)

// Store keeps per-session chat history as an ordered message list.
// Last write wins; isolation between sessions is key namespacing only.
type Store interface {
	// Append pushes a message onto the session's list and refreshes its TTL.
	Append(ctx context.Context, sessionID string, msg models.ChatMessage) error
	// Load returns the ordered message list, empty when the session is unknown.
	Load(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	// Clear deletes the session. Returns models.ErrSessionNotFound when
	// nothing was stored under the id.
	Clear(ctx context.Context, sessionID string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
