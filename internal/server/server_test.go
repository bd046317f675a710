package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telsupport/server/internal/store"
	"github.com/telsupport/server/internal/support/model"
)

type stubRunner struct {
	result model.RouteResult
	err    error
	lastIn model.QueryInput
}

func (s *stubRunner) Invoke(ctx context.Context, in model.QueryInput) (model.RouteResult, error) {
	s.lastIn = in
	if s.err != nil {
		return model.RouteResult{}, s.err
	}
	return s.result, nil
}

func newTestServer(t *testing.T, runner *stubRunner) http.Handler {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	st := store.NewWithDB(db)
	ctx := context.Background()
	require.NoError(t, st.Init(ctx))
	require.NoError(t, st.Seed(ctx))

	return New(runner, st).Router()
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleChat_Success(t *testing.T) {
	runner := &stubRunner{result: model.RouteResult{
		Classification: model.Classification{Primary: model.CategoryBilling},
		Response:       "Your bill is ₹759.",
	}}
	h := newTestServer(t, runner)

	rec := postChat(t, h, `{"conversation_id":"conv-1","email":"arjun.mehta@example.com","query":"what's my bill"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		ConversationID string               `json:"conversation_id"`
		Classification model.Classification `json:"classification"`
		Response       string               `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Equal(t, model.CategoryBilling, resp.Classification.Primary)
	assert.Equal(t, "Your bill is ₹759.", resp.Response)

	assert.Equal(t, "what's my bill", runner.lastIn.Query)
	assert.Equal(t, "arjun.mehta@example.com", runner.lastIn.CustomerEmail)
}

func TestHandleChat_MintsConversationID(t *testing.T) {
	runner := &stubRunner{result: model.RouteResult{Response: "hi"}}
	h := newTestServer(t, runner)

	rec := postChat(t, h, `{"query":"hello"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		ConversationID string `json:"conversation_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, resp.ConversationID, runner.lastIn.ConversationID)
}

func TestHandleChat_EmptyQuery(t *testing.T) {
	h := newTestServer(t, &stubRunner{})

	rec := postChat(t, h, `{"query":"   "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChat_MalformedBody(t *testing.T) {
	h := newTestServer(t, &stubRunner{})

	rec := postChat(t, h, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChat_RunnerError(t *testing.T) {
	h := newTestServer(t, &stubRunner{err: errors.New("graph failed")})

	rec := postChat(t, h, `{"query":"what's my bill"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleAccount_Success(t *testing.T) {
	h := newTestServer(t, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/account?email=arjun.mehta@example.com", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Customer *store.Customer     `json:"customer"`
		Usage    []store.UsageRecord `json:"usage"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "CUST001", resp.Customer.CustomerID)
	assert.Len(t, resp.Usage, 2)
}

func TestHandleAccount_UnknownEmail(t *testing.T) {
	h := newTestServer(t, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/account?email=ghost@example.com", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAccount_MissingEmail(t *testing.T) {
	h := newTestServer(t, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/account", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t, &stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
