package repo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/telsupport/server/internal/core/error"
)

func TestAddMessage_PushesAndRefreshesTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisConversationRepository(db, 15*time.Minute)

	msg := schema.UserMessage("what's my bill")
	b, err := json.Marshal(msg)
	require.NoError(t, err)

	key := "support:conversation:conv-1:messages"
	mock.ExpectRPush(key, b).SetVal(1)
	mock.ExpectExpire(key, 15*time.Minute).SetVal(true)

	require.NoError(t, r.AddMessage(context.Background(), "conv-1", msg))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMessage_ZeroTTLSkipsExpire(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisConversationRepository(db, 0)

	msg := schema.UserMessage("hello")
	b, err := json.Marshal(msg)
	require.NoError(t, err)

	mock.ExpectRPush("support:conversation:conv-2:messages", b).SetVal(1)

	require.NoError(t, r.AddMessage(context.Background(), "conv-2", msg))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMessage_RedisErrorIsWrapped(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisConversationRepository(db, time.Minute)

	msg := schema.UserMessage("hello")
	b, err := json.Marshal(msg)
	require.NoError(t, err)

	mock.ExpectRPush("support:conversation:conv-3:messages", b).
		SetErr(errors.New("connection refused"))

	err = r.AddMessage(context.Background(), "conv-3", msg)

	var appErr *errx.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errx.RedisErrorMessage, appErr.Message)
}

func TestLoadHistory_RoundTripsMessages(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisConversationRepository(db, time.Minute)

	user, err := json.Marshal(schema.UserMessage("no signal"))
	require.NoError(t, err)
	assistant, err := json.Marshal(schema.AssistantMessage("restart your phone", nil))
	require.NoError(t, err)

	mock.ExpectLRange("support:conversation:conv-4:messages", 0, -1).
		SetVal([]string{string(user), string(assistant)})

	history, err := r.LoadHistory(context.Background(), "conv-4")
	require.NoError(t, err)

	require.Len(t, history.Messages, 2)
	assert.Equal(t, schema.User, history.Messages[0].Role)
	assert.Equal(t, "no signal", history.Messages[0].Content)
	assert.Equal(t, schema.Assistant, history.Messages[1].Role)
	assert.Equal(t, "restart your phone", history.Messages[1].Content)
}

func TestLoadHistory_EmptyConversation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisConversationRepository(db, time.Minute)

	mock.ExpectLRange("support:conversation:conv-5:messages", 0, -1).
		SetVal([]string{})

	history, err := r.LoadHistory(context.Background(), "conv-5")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)
	assert.Equal(t, "conv-5", history.ConversationID)
}

func TestLoadHistory_CorruptEntryErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisConversationRepository(db, time.Minute)

	mock.ExpectLRange("support:conversation:conv-6:messages", 0, -1).
		SetVal([]string{"{not json"})

	_, err := r.LoadHistory(context.Background(), "conv-6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 0")
}

func TestClearHistory(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := NewRedisConversationRepository(db, time.Minute)

	mock.ExpectDel("support:conversation:conv-7:messages").SetVal(1)

	require.NoError(t, r.ClearHistory(context.Background(), "conv-7"))
	require.NoError(t, mock.ExpectationsWereMet())
}
