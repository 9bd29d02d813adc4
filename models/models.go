package models

import (
	"errors"
	"time"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ErrSessionNotFound is returned when a session id has no stored history.
var ErrSessionNotFound = errors.New("session not found")

// ChatMessage is a single turn in a conversation. Messages are held only as
// an ordered sequence under a session key; there is no other lifecycle.
type ChatMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// DocumentChunk is one window of a source document, produced once during
// ingestion and stored only in the external vector index.
type DocumentChunk struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Source     string `json:"source"`
	StartIndex int    `json:"start_index"`
	ChunkIndex int    `json:"chunk_index"`
}

// SearchHit is a chunk matched by a similarity query.
type SearchHit struct {
	Chunk DocumentChunk `json:"chunk"`
	Score float32       `json:"score"`
}
