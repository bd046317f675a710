// Package conversations bounds and formats conversation history for the
// classifier and persists the turns of each exchange.
package conversations

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/telsupport/server/internal/support/model"
)

// Manager mediates between the routing graph and the conversation store.
type Manager struct {
	repo     model.ConversationRepository
	maxTurns int
}

func NewManager(repo model.ConversationRepository, cfg model.ConversationConfig) *Manager {
	maxTurns := cfg.MaxContextTurns
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &Manager{repo: repo, maxTurns: maxTurns}
}

// ClassifierContext records the user's turn and returns the bounded
// conversation context block for the classification request. Only the most
// recent maxTurns messages are replayed.
func (m *Manager) ClassifierContext(ctx context.Context, conversationID, query string) (string, error) {
	if err := m.repo.AddMessage(ctx, conversationID, schema.UserMessage(query)); err != nil {
		return "", err
	}

	history, err := m.repo.LoadHistory(ctx, conversationID)
	if err != nil {
		return "", err
	}

	return buildContext(trimTail(history.Messages, m.maxTurns)), nil
}

// SaveResponse records the assistant's final turn.
func (m *Manager) SaveResponse(ctx context.Context, conversationID, content string) error {
	return m.repo.AddMessage(ctx, conversationID, schema.AssistantMessage(content, nil))
}

func buildContext(messages []*schema.Message) string {
	var b strings.Builder
	b.WriteString("<conversation_context>\n")
	for _, msg := range messages {
		if msg == nil || msg.Content == "" {
			continue
		}
		switch msg.Role {
		case schema.User:
			b.WriteString("UserMessage(" + msg.Content + ")\n")
		case schema.Assistant:
			b.WriteString("AssistantMessage(" + msg.Content + ")\n")
		}
	}
	b.WriteString("</conversation_context>")
	return b.String()
}

func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if len(messages) <= maxTurns {
		return messages
	}
	return messages[len(messages)-maxTurns:]
}
