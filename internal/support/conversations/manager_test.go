package conversations

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telsupport/server/internal/support/model"
)

type memoryRepo struct {
	msgs   map[string][]*schema.Message
	addErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{msgs: map[string][]*schema.Message{}}
}

func (r *memoryRepo) AddMessage(ctx context.Context, conversationID string, message *schema.Message) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.msgs[conversationID] = append(r.msgs[conversationID], message)
	return nil
}

func (r *memoryRepo) LoadHistory(ctx context.Context, conversationID string) (*model.ConversationHistory, error) {
	return &model.ConversationHistory{ConversationID: conversationID, Messages: r.msgs[conversationID]}, nil
}

func (r *memoryRepo) ClearHistory(ctx context.Context, conversationID string) error {
	delete(r.msgs, conversationID)
	return nil
}

func TestClassifierContext_RecordsTurnAndFormatsHistory(t *testing.T) {
	repo := newMemoryRepo()
	m := NewManager(repo, model.ConversationConfig{MaxContextTurns: 10})
	ctx := context.Background()

	require.NoError(t, repo.AddMessage(ctx, "conv-1", schema.UserMessage("hello")))
	require.NoError(t, repo.AddMessage(ctx, "conv-1", schema.AssistantMessage("hi, how can I help?", nil)))

	out, err := m.ClassifierContext(ctx, "conv-1", "what's my bill")
	require.NoError(t, err)

	assert.Contains(t, out, "<conversation_context>")
	assert.Contains(t, out, "UserMessage(hello)")
	assert.Contains(t, out, "AssistantMessage(hi, how can I help?)")
	assert.Contains(t, out, "UserMessage(what's my bill)")
	assert.Contains(t, out, "</conversation_context>")

	// The incoming query was persisted as a user turn.
	require.Len(t, repo.msgs["conv-1"], 3)
	assert.Equal(t, "what's my bill", repo.msgs["conv-1"][2].Content)
}

func TestClassifierContext_BoundsContextWindow(t *testing.T) {
	repo := newMemoryRepo()
	m := NewManager(repo, model.ConversationConfig{MaxContextTurns: 4})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, repo.AddMessage(ctx, "conv-2", schema.UserMessage(fmt.Sprintf("turn %d", i))))
	}

	out, err := m.ClassifierContext(ctx, "conv-2", "latest question")
	require.NoError(t, err)

	// Only the 4 most recent messages survive; the new query is one of them.
	assert.Contains(t, out, "latest question")
	assert.Contains(t, out, "turn 9")
	assert.Contains(t, out, "turn 7")
	assert.NotContains(t, out, "turn 6")
	assert.NotContains(t, out, "turn 0")
}

func TestClassifierContext_RepoErrorPropagates(t *testing.T) {
	repo := newMemoryRepo()
	repo.addErr = errors.New("redis down")
	m := NewManager(repo, model.ConversationConfig{MaxContextTurns: 10})

	_, err := m.ClassifierContext(context.Background(), "conv-3", "hello")
	require.Error(t, err)
}

func TestSaveResponse(t *testing.T) {
	repo := newMemoryRepo()
	m := NewManager(repo, model.ConversationConfig{MaxContextTurns: 10})

	require.NoError(t, m.SaveResponse(context.Background(), "conv-4", "here is your bill"))

	require.Len(t, repo.msgs["conv-4"], 1)
	assert.Equal(t, schema.Assistant, repo.msgs["conv-4"][0].Role)
	assert.Equal(t, "here is your bill", repo.msgs["conv-4"][0].Content)
}

func TestNewManager_DefaultsContextWindow(t *testing.T) {
	repo := newMemoryRepo()
	m := NewManager(repo, model.ConversationConfig{})

	assert.Equal(t, 10, m.maxTurns)
}
