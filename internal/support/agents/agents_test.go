package agents

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/telsupport/server/internal/store"
	"github.com/telsupport/server/internal/support/model"
)

// stubChatModel replays canned replies in order and records every request.
type stubChatModel struct {
	replies []string
	err     error
	calls   int
	history [][]*schema.Message
}

func (s *stubChatModel) Generate(ctx context.Context, msgs []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	s.history = append(s.history, msgs)
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	reply := ""
	if len(s.replies) > 0 {
		reply = s.replies[0]
		if len(s.replies) > 1 {
			s.replies = s.replies[1:]
		}
	}
	return schema.AssistantMessage(reply, nil), nil
}

func (s *stubChatModel) Stream(ctx context.Context, msgs []*schema.Message, _ ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (s *stubChatModel) lastRequest() []*schema.Message {
	if len(s.history) == 0 {
		return nil
	}
	return s.history[len(s.history)-1]
}

// stubRetriever returns a fixed passage and records lookups.
type stubRetriever struct {
	passage string
	calls   int
	lastCat model.Category
}

func (s *stubRetriever) Retrieve(ctx context.Context, category model.Category, query string) string {
	s.calls++
	s.lastCat = category
	return s.passage
}

// passRelevance is a relevance filter whose judge always answers YES.
func passRelevance() *RelevanceFilter {
	return NewRelevanceFilter(&stubChatModel{replies: []string{"YES"}}, "test-model")
}

// rejectRelevance is a relevance filter whose judge always answers NO.
func rejectRelevance() *RelevanceFilter {
	return NewRelevanceFilter(&stubChatModel{replies: []string{"NO"}}, "test-model")
}

// newTestStore opens a seeded single-connection in-memory database.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	st := newEmptyTestStore(t)
	require.NoError(t, st.Seed(context.Background()))
	return st
}

// newEmptyTestStore opens an in-memory database with the schema but no rows.
func newEmptyTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	st := store.NewWithDB(db)
	require.NoError(t, st.Init(context.Background()))
	return st
}
