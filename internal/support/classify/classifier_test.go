package classify

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telsupport/server/internal/support/model"
)

type stubChatModel struct {
	reply string
	err   error
	calls int
	last  []*schema.Message
}

func (s *stubChatModel) Generate(ctx context.Context, msgs []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	s.calls++
	s.last = msgs
	if s.err != nil {
		return nil, s.err
	}
	return schema.AssistantMessage(s.reply, nil), nil
}

func (s *stubChatModel) Stream(ctx context.Context, msgs []*schema.Message, _ ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  model.Classification
	}{
		{
			name:  "single intent",
			reply: "billing",
			want:  model.Classification{Primary: model.CategoryBilling},
		},
		{
			name:  "multi intent",
			reply: "multi-intent: billing, network",
			want: model.Classification{
				Primary:     model.CategoryBilling,
				MultiIntent: true,
				AllIntents:  []model.Category{model.CategoryBilling, model.CategoryNetwork},
			},
		},
		{
			name:  "garbage falls back to knowledge",
			reply: "sorry, I cannot classify this",
			want:  Fallback(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := &stubChatModel{reply: tt.reply}
			c := New(cm)

			got := c.Classify(context.Background(), "what is my bill", "")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, cm.calls)
		})
	}
}

func TestClassifier_ModelErrorFallsBack(t *testing.T) {
	cm := &stubChatModel{err: errors.New("quota exceeded")}
	c := New(cm)

	got := c.Classify(context.Background(), "why is my bill high", "")

	assert.Equal(t, Fallback(), got)
}

func TestClassifier_RequestCarriesQueryAndContext(t *testing.T) {
	cm := &stubChatModel{reply: "plan"}
	c := New(cm)

	conversationCtx := "<conversation_context>\nUserMessage(hello)\n</conversation_context>"
	c.Classify(context.Background(), "recommend a plan", conversationCtx)

	require.Len(t, cm.last, 2)
	assert.Equal(t, schema.System, cm.last[0].Role)
	assert.Contains(t, cm.last[1].Content, "recommend a plan")
	assert.Contains(t, cm.last[1].Content, conversationCtx)
}
