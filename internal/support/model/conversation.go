package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ConversationRepository persists per-conversation message history.
type ConversationRepository interface {
	// AddMessage appends a message to the conversation history.
	AddMessage(ctx context.Context, conversationID string, message *schema.Message) error

	// LoadHistory retrieves the full stored history for a conversation.
	LoadHistory(ctx context.Context, conversationID string) (*ConversationHistory, error)

	// ClearHistory removes all history for a conversation.
	ClearHistory(ctx context.Context, conversationID string) error
}
